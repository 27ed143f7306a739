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

package affe

import (
	"github.com/affe-lang/affe/ast"
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/types"
	"github.com/affe-lang/affe/variance"
)

// NonExpansive reports whether e is syntactically safe to generalise under
// the value restriction (spec.md §4.6): roughly, an expression that cannot
// perform an effect or allocate a fresh mutable identity when evaluated.
// Constants, variables, borrows, and lambdas are always non-expansive;
// application and non-empty array literals are always expansive; the
// remaining forms are non-expansive exactly when every sub-expression they
// produce a value from is.
func NonExpansive(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Const, *ast.Var, *ast.Borrow, *ast.ReBorrow, *ast.Lambda:
		return true
	case *ast.App:
		return false
	case *ast.TupleExpr:
		for _, el := range e.Elems {
			if !NonExpansive(el) {
				return false
			}
		}
		return true
	case *ast.ArrayExpr:
		return len(e.Elems) == 0
	case *ast.Let:
		return NonExpansive(e.Value) && NonExpansive(e.Body)
	case *ast.Match:
		if !NonExpansive(e.Value) {
			return false
		}
		for _, arm := range e.Arms {
			if !NonExpansive(arm.Body) {
				return false
			}
		}
		return true
	case *ast.Region:
		return NonExpansive(e.Body)
	default:
		return false
	}
}

// Generalize produces a type scheme for a let-bound declaration (spec.md
// §4.6). If rhs fails the value restriction, the binding stays
// monomorphic: t is returned wrapped as-is, and constraint is left
// untouched for an enclosing scope to resolve. Otherwise, every type- and
// kind-variable created no earlier than ctx.Level() is quantified, the
// constraint is simplified against the variance of the quantified
// variables, and split between what belongs inside the scheme (edges
// whose endpoints are each a quantified variable or a constant) and what
// must remain visible to the enclosing scope.
func Generalize(ctx *Context, rhs ast.Expr, t types.Type, constraint []kinds.Ineq) (*types.Scheme, []kinds.Ineq) {
	if !NonExpansive(rhs) {
		return types.Monomorphic(t), constraint
	}
	return generalizeType(ctx, t, constraint)
}

func generalizeType(ctx *Context, t types.Type, constraint []kinds.Ineq) (*types.Scheme, []kinds.Ineq) {
	level := ctx.Level()

	freeTy := map[int]*types.Var{}
	freeKind := map[int]*kinds.Var{}
	collectFreeVars(t, level, freeTy, freeKind)
	for _, c := range constraint {
		collectFreeKindVar(c.Lower, level, freeKind)
		collectFreeKindVar(c.Upper, level, freeKind)
	}

	if len(freeTy) == 0 && len(freeKind) == 0 {
		return types.Monomorphic(t), constraint
	}

	pols := variance.Collect(t)
	simplified := variance.Simplify(constraint, pols.Kinds)

	tyVars := make([]*types.GenericVar, 0, len(freeTy))
	kindGenerics := map[int]*kinds.GenericVar{}
	for id, kv := range freeKind {
		gv := kinds.NewGenericVar(id)
		kv.SetLink(gv)
		kindGenerics[id] = gv
	}
	for id, tv := range freeTy {
		k := tv.Kind()
		if realK, ok := kinds.RealKind(k).(*kinds.Var); ok {
			if gv, ok := kindGenerics[realK.Id()]; ok {
				k = gv
			}
		}
		gv := types.NewGenericVar(id, k)
		tv.SetLink(gv)
		tyVars = append(tyVars, gv)
	}

	var inner, outer []kinds.Ineq
	for _, c := range simplified {
		if kindEndpointClosed(c.Lower) && kindEndpointClosed(c.Upper) {
			inner = append(inner, kinds.Ineq{Lower: kinds.RealKind(c.Lower), Upper: kinds.RealKind(c.Upper)})
		} else {
			outer = append(outer, c)
		}
	}

	kvars := make([]*kinds.GenericVar, 0, len(kindGenerics))
	for _, gv := range kindGenerics {
		kvars = append(kvars, gv)
	}

	scheme := &types.Scheme{KVars: kvars, TyVars: tyVars, Constraint: inner, Body: t}
	return scheme, outer
}

// kindEndpointClosed reports whether a constraint endpoint can be carried
// inside the generalised scheme rather than left pending in outer: true for
// a concrete lattice constant (the scheme's own k:Un Never-style bound) or
// a kind-variable just quantified by this call, false for a kind-variable
// still free at an enclosing level.
func kindEndpointClosed(k kinds.Kind) bool {
	switch kinds.RealKind(k).(type) {
	case kinds.Const, *kinds.GenericVar:
		return true
	default:
		return false
	}
}

func collectFreeVars(t types.Type, level int, freeTy map[int]*types.Var, freeKind map[int]*kinds.Var) {
	t = types.RealType(t)
	switch t := t.(type) {
	case *types.Var:
		if t.Level() >= level {
			if _, ok := freeTy[t.Id()]; !ok {
				freeTy[t.Id()] = t
				collectFreeKindVar(t.Kind(), level, freeKind)
			}
		}
	case *types.App:
		for _, arg := range t.Args {
			collectFreeVars(arg, level, freeTy, freeKind)
		}
	case *types.Tuple:
		for _, el := range t.Elems {
			collectFreeVars(el, level, freeTy, freeKind)
		}
	case *types.Arrow:
		collectFreeKindVar(t.Kind, level, freeKind)
		collectFreeVars(t.Param, level, freeTy, freeKind)
		collectFreeVars(t.Result, level, freeTy, freeKind)
	case *types.Borrow:
		collectFreeKindVar(t.Kind, level, freeKind)
		collectFreeVars(t.Inner, level, freeTy, freeKind)
	}
}

func collectFreeKindVar(k kinds.Kind, level int, freeKind map[int]*kinds.Var) {
	if v, ok := kinds.RealKind(k).(*kinds.Var); ok && v.Level() >= level {
		freeKind[v.Id()] = v
	}
}
