// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package ast

// CopyExpr produces a structural copy of e, discarding any types already
// assigned by a previous inference pass.
func CopyExpr(e Expr) Expr {
	switch e := e.(type) {
	case *Const:
		return &Const{Syntax: e.Syntax, Name: e.Name}

	case *Var:
		return &Var{Name: e.Name}

	case *Borrow:
		return &Borrow{Mode: e.Mode, Name: e.Name}

	case *ReBorrow:
		return &ReBorrow{Mode: e.Mode, Name: e.Name}

	case *Lambda:
		return &Lambda{Param: e.Param, Body: CopyExpr(e.Body)}

	case *App:
		return &App{Func: CopyExpr(e.Func), Arg: CopyExpr(e.Arg)}

	case *TupleExpr:
		elems := make([]Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = CopyExpr(el)
		}
		return &TupleExpr{Elems: elems}

	case *ArrayExpr:
		elems := make([]Expr, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = CopyExpr(el)
		}
		return &ArrayExpr{Elems: elems}

	case *Let:
		return &Let{Rec: e.Rec, Pattern: e.Pattern, Value: CopyExpr(e.Value), Body: CopyExpr(e.Body)}

	case *Match:
		arms := make([]MatchArm, len(e.Arms))
		for i, arm := range e.Arms {
			arms[i] = MatchArm{Pattern: arm.Pattern, Body: CopyExpr(arm.Body)}
		}
		return &Match{Modifier: e.Modifier, Value: CopyExpr(e.Value), Arms: arms}

	case *Region:
		vars := make([]string, len(e.Vars))
		copy(vars, e.Vars)
		return &Region{Vars: vars, Body: CopyExpr(e.Body)}
	}
	panic("ast: unknown expression type: " + e.ExprName())
}
