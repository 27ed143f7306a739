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

// WalkExpr visits e and every sub-expression, in evaluation order, calling
// f on each node before descending into its children.
func WalkExpr(e Expr, f func(Expr)) {
	switch e := e.(type) {
	case *Const, *Var:
		f(e)

	case *Borrow, *ReBorrow:
		f(e)

	case *Lambda:
		f(e)
		WalkExpr(e.Body, f)

	case *App:
		f(e)
		WalkExpr(e.Func, f)
		WalkExpr(e.Arg, f)

	case *TupleExpr:
		f(e)
		for _, el := range e.Elems {
			WalkExpr(el, f)
		}

	case *ArrayExpr:
		f(e)
		for _, el := range e.Elems {
			WalkExpr(el, f)
		}

	case *Let:
		f(e)
		WalkExpr(e.Value, f)
		WalkExpr(e.Body, f)

	case *Match:
		f(e)
		WalkExpr(e.Value, f)
		for _, arm := range e.Arms {
			WalkExpr(arm.Body, f)
		}

	case *Region:
		f(e)
		WalkExpr(e.Body, f)

	case nil:

	default:
		panic("ast: unknown expression type: " + e.ExprName())
	}
}
