package ast

import "strings"

// ExprString renders e back to Affe's surface syntax, for diagnostics.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

func patternString(sb *strings.Builder, p Pattern) {
	switch p := p.(type) {
	case *PVar:
		sb.WriteString(p.Name)
	case *PWildcard:
		sb.WriteByte('_')
	case *PTuple:
		sb.WriteByte('(')
		for i, el := range p.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, el)
		}
		sb.WriteByte(')')
	}
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch e := e.(type) {
	case *Const:
		sb.WriteString(e.Syntax)

	case *Var:
		sb.WriteString(e.Name)

	case *Borrow:
		if e.Mode == Write {
			sb.WriteString("&!")
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(e.Name)

	case *ReBorrow:
		if e.Mode == Write {
			sb.WriteString("&!*")
		} else {
			sb.WriteString("&*")
		}
		sb.WriteString(e.Name)

	case *Lambda:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("fun ")
		patternString(sb, e.Param)
		sb.WriteString(" -> ")
		exprString(sb, false, e.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *App:
		exprString(sb, true, e.Func)
		sb.WriteByte(' ')
		exprString(sb, true, e.Arg)

	case *TupleExpr:
		sb.WriteByte('(')
		for i, el := range e.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, el)
		}
		sb.WriteByte(')')

	case *ArrayExpr:
		sb.WriteByte('[')
		for i, el := range e.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, el)
		}
		sb.WriteByte(']')

	case *Let:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("let ")
		if e.Rec {
			sb.WriteString("rec ")
		}
		patternString(sb, e.Pattern)
		sb.WriteString(" = ")
		exprString(sb, false, e.Value)
		sb.WriteString(" in ")
		exprString(sb, false, e.Body)
		if simple {
			sb.WriteByte(')')
		}

	case *Match:
		sb.WriteString("match ")
		if e.Modifier.Borrowed {
			if e.Modifier.Mode == Write {
				sb.WriteString("&!")
			} else {
				sb.WriteByte('&')
			}
		}
		exprString(sb, false, e.Value)
		sb.WriteString(" { ")
		for i, arm := range e.Arms {
			if i > 0 {
				sb.WriteString(" | ")
			}
			patternString(sb, arm.Pattern)
			sb.WriteString(" -> ")
			exprString(sb, false, arm.Body)
		}
		sb.WriteString(" }")

	case *Region:
		sb.WriteString("region ")
		for i, v := range e.Vars {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(v)
		}
		sb.WriteString(" { ")
		exprString(sb, false, e.Body)
		sb.WriteString(" }")
	}
}
