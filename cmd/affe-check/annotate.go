package main

import (
	"strings"

	"github.com/affe-lang/affe/ast"
	"github.com/affe-lang/affe/types"
)

// annotateExpr renders e as an indented tree, each node tagged with its
// inferred type (meaningful only after a successful InferTop call).
func annotateExpr(e ast.Expr, depth int) string {
	pad := strings.Repeat("  ", depth)
	line := func(rest string) string {
		return pad + rest + "  : " + types.TypeString(e.Type())
	}

	switch e := e.(type) {
	case *ast.Const:
		return line(e.ExprName() + " " + e.Syntax)
	case *ast.Var:
		return line(e.ExprName() + " " + e.Name)
	case *ast.Borrow:
		return line(e.ExprName() + " " + borrowModeString(e.Mode) + e.Name)
	case *ast.ReBorrow:
		return line(e.ExprName() + " " + borrowModeString(e.Mode) + "*" + e.Name)
	case *ast.Lambda:
		return line(e.ExprName()+" "+patternString(e.Param)) + "\n" + annotateExpr(e.Body, depth+1)
	case *ast.App:
		return line(e.ExprName()) + "\n" + annotateExpr(e.Func, depth+1) + "\n" + annotateExpr(e.Arg, depth+1)
	case *ast.TupleExpr:
		return line(e.ExprName()) + "\n" + annotateAll(e.Elems, depth+1)
	case *ast.ArrayExpr:
		return line(e.ExprName()) + "\n" + annotateAll(e.Elems, depth+1)
	case *ast.Let:
		kw := "let"
		if e.Rec {
			kw = "let rec"
		}
		head := pad + kw + " " + patternString(e.Pattern)
		return head + "\n" + annotateExpr(e.Value, depth+1) + "\n" + annotateExpr(e.Body, depth+1)
	case *ast.Match:
		head := line(e.ExprName())
		var sb strings.Builder
		sb.WriteString(head)
		sb.WriteString("\n")
		sb.WriteString(annotateExpr(e.Value, depth+1))
		for _, arm := range e.Arms {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat("  ", depth+1) + "case " + patternString(arm.Pattern))
			sb.WriteString("\n")
			sb.WriteString(annotateExpr(arm.Body, depth+2))
		}
		return sb.String()
	case *ast.Region:
		return line(e.ExprName()+" "+strings.Join(e.Vars, " ")) + "\n" + annotateExpr(e.Body, depth+1)
	default:
		return pad + e.ExprName()
	}
}

func annotateAll(elems []ast.Expr, depth int) string {
	lines := make([]string, len(elems))
	for i, el := range elems {
		lines[i] = annotateExpr(el, depth)
	}
	return strings.Join(lines, "\n")
}

func borrowModeString(m ast.BorrowMode) string {
	if m == ast.Write {
		return "&!"
	}
	return "&"
}

func patternString(p ast.Pattern) string {
	switch p := p.(type) {
	case *ast.PVar:
		return p.Name
	case *ast.PWildcard:
		return "_"
	case *ast.PTuple:
		parts := make([]string, len(p.Elems))
		for i, e := range p.Elems {
			parts[i] = patternString(e)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return p.PatternName()
	}
}
