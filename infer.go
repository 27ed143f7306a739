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
	"github.com/affe-lang/affe/multiplicity"
	"github.com/affe-lang/affe/types"
)

// infer is the syntax-directed inference driver (spec.md §4.7): one case
// per expression form, each returning the multiplicity-use accumulated by
// its free variables and the expression's type.
func infer(ctx *Context, env *Env, e ast.Expr) (multiplicity.Map, types.Type, error) {
	switch e := e.(type) {
	case *ast.Const:
		return inferConst(ctx, env, e)
	case *ast.Var:
		return inferVar(ctx, env, e)
	case *ast.Borrow:
		return inferBorrow(ctx, env, e)
	case *ast.ReBorrow:
		return inferReBorrow(ctx, env, e)
	case *ast.Lambda:
		return inferLambda(ctx, env, e)
	case *ast.App:
		return inferApp(ctx, env, e)
	case *ast.TupleExpr:
		return inferTuple(ctx, env, e)
	case *ast.ArrayExpr:
		return inferArray(ctx, env, e)
	case *ast.Let:
		return inferLet(ctx, env, e)
	case *ast.Match:
		return inferMatch(ctx, env, e)
	case *ast.Region:
		return inferRegion(ctx, env, e)
	default:
		panic("affe: infer: unexpected expression " + e.ExprName())
	}
}

func inferConst(ctx *Context, env *Env, e *ast.Const) (multiplicity.Map, types.Type, error) {
	scheme, err := env.LookupConstructor(e.Name)
	if err != nil {
		scheme, err = env.LookupValue(e.Name)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
	}
	t, constraint := scheme.Instantiate(ctx.Level(), ctx.NewKindVar, ctx.NewTypeVarWithKind)
	ctx.AddConstraint(constraint...)
	e.SetType(t)
	return multiplicity.Empty, t, nil
}

func inferVar(ctx *Context, env *Env, e *ast.Var) (multiplicity.Map, types.Type, error) {
	scheme, err := env.LookupValue(e.Name)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	t, constraint := scheme.Instantiate(ctx.Level(), ctx.NewKindVar, ctx.NewTypeVarWithKind)
	ctx.AddConstraint(constraint...)
	k, err := InferTypeKind(ctx, env, t)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	m := multiplicity.Empty.With(e.Name, multiplicity.NormalOf(k))
	e.SetType(t)
	return m, t, nil
}

func inferBorrow(ctx *Context, env *Env, e *ast.Borrow) (multiplicity.Map, types.Type, error) {
	scheme, err := env.LookupValue(e.Name)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	inner, constraint := scheme.Instantiate(ctx.Level(), ctx.NewKindVar, ctx.NewTypeVarWithKind)
	ctx.AddConstraint(constraint...)
	bk := ctx.NewKindVar()
	t := &types.Borrow{Mode: e.Mode, Kind: bk, Inner: inner}
	m := multiplicity.Empty.With(e.Name, multiplicity.BorrowOf(multiplicity.BorrowMode(e.Mode), bk))
	e.SetType(t)
	return m, t, nil
}

func inferReBorrow(ctx *Context, env *Env, e *ast.ReBorrow) (multiplicity.Map, types.Type, error) {
	scheme, err := env.LookupValue(e.Name)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	t0, constraint := scheme.Instantiate(ctx.Level(), ctx.NewKindVar, ctx.NewTypeVarWithKind)
	ctx.AddConstraint(constraint...)
	b0, ok := types.RealType(t0).(*types.Borrow)
	if !ok || b0.Mode != types.Write {
		return multiplicity.Empty, nil, &TypeMismatchError{A: t0, B: &types.Borrow{Mode: types.Write, Kind: kinds.UnGlobal, Inner: t0}}
	}
	bk := ctx.NewKindVar()
	// A re-borrow must not outlive the write-borrow it is derived from.
	ctx.AddConstraint(kinds.Ineq{Lower: bk, Upper: b0.Kind})
	t := &types.Borrow{Mode: e.Mode, Kind: bk, Inner: b0.Inner}
	m := multiplicity.Empty.With(e.Name, multiplicity.BorrowOf(multiplicity.BorrowMode(e.Mode), bk))
	e.SetType(t)
	return m, t, nil
}

// bindPattern extends env with the variables bound by p, each given a
// fresh type-variable wrapped by wrap (the identity for an owned binder, or
// a Borrow constructor for a pattern matched behind `match &`/`match &!`).
// It returns the pattern's own (unwrapped) structural type, for unifying
// against the type being destructured.
func bindPattern(ctx *Context, env *Env, p ast.Pattern, wrap func(*types.Var) types.Type) (types.Type, *Env, []string) {
	switch p := p.(type) {
	case *ast.PWildcard:
		return ctx.NewTypeVar(), env, nil
	case *ast.PVar:
		tv := ctx.NewTypeVar()
		env2 := NewEnv(env)
		env2.DeclareValue(p.Name, types.Monomorphic(wrap(tv)))
		return tv, env2, []string{p.Name}
	case *ast.PTuple:
		elems := make([]types.Type, len(p.Elems))
		var boundNames []string
		cur := env
		for i, sub := range p.Elems {
			t, env2, ns := bindPattern(ctx, cur, sub, wrap)
			elems[i] = t
			cur = env2
			boundNames = append(boundNames, ns...)
		}
		return &types.Tuple{Elems: elems}, cur, boundNames
	default:
		panic("affe: bindPattern: unexpected pattern " + p.PatternName())
	}
}

func identityWrap(tv *types.Var) types.Type { return tv }

func kindOfBoundName(ctx *Context, env *Env, name string) kinds.Kind {
	scheme, err := env.LookupValue(name)
	if err != nil {
		return kinds.UnGlobal
	}
	k, err := InferTypeKind(ctx, env, scheme.Body)
	if err != nil {
		return kinds.UnGlobal
	}
	return k
}

func inferLambda(ctx *Context, env *Env, e *ast.Lambda) (multiplicity.Map, types.Type, error) {
	paramType, env2, boundNames := bindPattern(ctx, env, e.Param, identityWrap)
	mBody, tBody, err := infer(ctx, env2, e.Body)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	for _, name := range boundNames {
		k := kindOfBoundName(ctx, env2, name)
		mBody = ctx.exitBinder(mBody, name, k)
	}
	arrowKind := ctx.NewKindVar()
	ctx.AddConstraint(multiplicity.ConstraintAll(mBody, arrowKind)...)
	t := &types.Arrow{Param: paramType, Kind: arrowKind, Result: tBody}
	e.SetType(t)
	return mBody, t, nil
}

func inferApp(ctx *Context, env *Env, e *ast.App) (multiplicity.Map, types.Type, error) {
	mFunc, tFunc, err := infer(ctx, env, e.Func)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	mArg, tArg, err := infer(ctx, env, e.Arg)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	resultVar := ctx.NewTypeVar()
	appKind := ctx.NewKindVar()
	expected := &types.Arrow{Param: tArg, Kind: appKind, Result: resultVar}
	if err := UnifyType(ctx, tFunc, expected); err != nil {
		return multiplicity.Empty, nil, err
	}
	merged, err := ctx.mergeSequential(mFunc, mArg)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	resolvedArrow, _ := types.RealType(tFunc).(*types.Arrow)
	if resolvedArrow == nil {
		resolvedArrow = expected
	}
	e.SetFuncType(resolvedArrow)
	e.SetType(resultVar)
	return merged, resultVar, nil
}

func inferTuple(ctx *Context, env *Env, e *ast.TupleExpr) (multiplicity.Map, types.Type, error) {
	elems := make([]types.Type, len(e.Elems))
	m := multiplicity.Empty
	for i, el := range e.Elems {
		mEl, tEl, err := infer(ctx, env, el)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
		elems[i] = tEl
		m, err = ctx.mergeSequential(m, mEl)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
	}
	t := &types.Tuple{Elems: elems}
	e.SetType(t)
	return m, t, nil
}

func inferArray(ctx *Context, env *Env, e *ast.ArrayExpr) (multiplicity.Map, types.Type, error) {
	elemVar := ctx.NewTypeVar()
	m := multiplicity.Empty
	var elemType types.Type = elemVar
	for i, el := range e.Elems {
		mEl, tEl, err := infer(ctx, env, el)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
		if i == 0 {
			elemType = tEl
		} else if err := UnifyType(ctx, elemType, tEl); err != nil {
			return multiplicity.Empty, nil, err
		}
		m, err = ctx.mergeSequential(m, mEl)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
	}
	arrType := &types.App{Const: ctx.TypeName("Array"), Args: []types.Type{elemType}}
	e.SetType(arrType)
	return m, arrType, nil
}

func inferLet(ctx *Context, env *Env, e *ast.Let) (multiplicity.Map, types.Type, error) {
	if e.Rec {
		return inferLetRec(ctx, env, e)
	}
	if pv, ok := e.Pattern.(*ast.PVar); ok {
		return inferLetVar(ctx, env, e, pv)
	}
	return inferLetPattern(ctx, env, e)
}

func inferLetVar(ctx *Context, env *Env, e *ast.Let, pv *ast.PVar) (multiplicity.Map, types.Type, error) {
	ctx.EnterScope()
	mValue, tValue, err := infer(ctx, env, e.Value)
	if err != nil {
		ctx.ExitScope()
		return multiplicity.Empty, nil, err
	}
	resid, err := ctx.Normalize()
	ctx.ExitScope()
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	scheme, outer := Generalize(ctx, e.Value, tValue, resid)
	ctx.AddConstraint(outer...)

	env2 := NewEnv(env)
	env2.DeclareValue(pv.Name, scheme)
	mBody, tBody, err := infer(ctx, env2, e.Body)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	k, err := InferTypeKind(ctx, env, tValue)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	mBody = ctx.exitBinder(mBody, pv.Name, k)
	merged, err := ctx.mergeSequential(mValue, mBody)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	return merged, tBody, nil
}

// inferLetPattern handles a non-recursive let whose left-hand side
// destructures a tuple (or discards with a wildcard): such a binding is
// always monomorphic, since splitting generalisation across the
// individually-projected names of a shared structure would require each
// name to re-instantiate an independent copy of the others' portions of
// that structure, which Affe does not support.
func inferLetPattern(ctx *Context, env *Env, e *ast.Let) (multiplicity.Map, types.Type, error) {
	mValue, tValue, err := infer(ctx, env, e.Value)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	patType, env2, boundNames := bindPattern(ctx, env, e.Pattern, identityWrap)
	if err := UnifyType(ctx, patType, tValue); err != nil {
		return multiplicity.Empty, nil, err
	}
	mBody, tBody, err := infer(ctx, env2, e.Body)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	for _, name := range boundNames {
		k := kindOfBoundName(ctx, env2, name)
		mBody = ctx.exitBinder(mBody, name, k)
	}
	merged, err := ctx.mergeSequential(mValue, mBody)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	return merged, tBody, nil
}

func inferLetRec(ctx *Context, env *Env, e *ast.Let) (multiplicity.Map, types.Type, error) {
	pv, ok := e.Pattern.(*ast.PVar)
	if !ok {
		return multiplicity.Empty, nil, &IllegalRecLHSError{Pattern: e.Pattern}
	}
	ctx.EnterScope()
	selfVar := ctx.NewTypeVar()
	envSelf := NewEnv(env)
	envSelf.DeclareValue(pv.Name, types.Monomorphic(selfVar))

	mValue, tValue, err := infer(ctx, envSelf, e.Value)
	if err != nil {
		ctx.ExitScope()
		return multiplicity.Empty, nil, err
	}
	if err := UnifyType(ctx, selfVar, tValue); err != nil {
		ctx.ExitScope()
		return multiplicity.Empty, nil, err
	}
	resid, err := ctx.Normalize()
	ctx.ExitScope()
	if err != nil {
		return multiplicity.Empty, nil, err
	}

	scheme, outer := Generalize(ctx, e.Value, tValue, resid)
	ctx.AddConstraint(outer...)

	k, err := InferTypeKind(ctx, env, tValue)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	mValue = ctx.exitBinder(mValue, pv.Name, k)

	env2 := NewEnv(env)
	env2.DeclareValue(pv.Name, scheme)
	mBody, tBody, err := infer(ctx, env2, e.Body)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	mBody = ctx.exitBinder(mBody, pv.Name, k)

	merged, err := ctx.mergeSequential(mValue, mBody)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	return merged, tBody, nil
}

func borrowWrap(mode ast.BorrowMode, k kinds.Kind) func(*types.Var) types.Type {
	return func(tv *types.Var) types.Type {
		return &types.Borrow{Mode: mode, Kind: k, Inner: tv}
	}
}

func inferMatch(ctx *Context, env *Env, e *ast.Match) (multiplicity.Map, types.Type, error) {
	var mScrut multiplicity.Map
	var scrutType types.Type
	wrap := identityWrap

	if e.Modifier.Borrowed {
		v, ok := e.Value.(*ast.Var)
		if !ok {
			return multiplicity.Empty, nil, &TypeMismatchError{A: nil, B: nil}
		}
		scheme, err := env.LookupValue(v.Name)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
		inner, constraint := scheme.Instantiate(ctx.Level(), ctx.NewKindVar, ctx.NewTypeVarWithKind)
		ctx.AddConstraint(constraint...)
		bk := ctx.NewKindVar()
		mScrut = multiplicity.Empty.With(v.Name, multiplicity.BorrowOf(multiplicity.BorrowMode(e.Modifier.Mode), bk))
		scrutType = inner
		wrap = borrowWrap(e.Modifier.Mode, bk)
	} else {
		m, t, err := infer(ctx, env, e.Value)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
		mScrut, scrutType = m, t
	}

	var resultType types.Type
	var mArms multiplicity.Map
	haveArms := false

	for _, arm := range e.Arms {
		patType, armEnv, boundNames := bindPattern(ctx, env, arm.Pattern, wrap)
		if err := UnifyType(ctx, patType, scrutType); err != nil {
			return multiplicity.Empty, nil, err
		}
		mBody, tBody, err := infer(ctx, armEnv, arm.Body)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
		for _, name := range boundNames {
			k := kindOfBoundName(ctx, armEnv, name)
			mBody = ctx.exitBinder(mBody, name, k)
		}
		if !haveArms {
			resultType = tBody
			mArms = mBody
			haveArms = true
			continue
		}
		if err := UnifyType(ctx, resultType, tBody); err != nil {
			return multiplicity.Empty, nil, err
		}
		mArms, err = ctx.mergeParallel(mArms, mBody)
		if err != nil {
			return multiplicity.Empty, nil, err
		}
	}
	if !haveArms {
		resultType = ctx.NewTypeVar()
		mArms = multiplicity.Empty
	}

	merged, err := ctx.mergeSequential(mScrut, mArms)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	e.SetType(resultType)
	return merged, resultType, nil
}

// inferRegion infers `region vars { body }`. It allocates a fresh region
// marker ℓ (borrows created inside body are not tagged with it), infers body one level
// deeper (so a value built entirely inside the region cannot itself be
// generalised past it), discharges the named region-local bindings on
// exit, and constrains the block's own result kind to be first-class at
// the enclosing level: bounded above by Lin(ℓ), so a result whose kind is
// tied to some region nested even deeper than ℓ cannot be reported as the
// region's own result.
//
// The source this type system is modeled on separately carries the tie
// between a borrow's own outer kind and the region it was allocated in as
// commented-out, never-enabled code; this implementation preserves that
// narrower omission (a borrow escaping unconstrained is still possible)
// without touching the Region construct's own first-class check, which is
// unconditional.
func inferRegion(ctx *Context, env *Env, e *ast.Region) (multiplicity.Map, types.Type, error) {
	region := ctx.EnterRegion()
	ctx.EnterScope()
	mBody, tBody, err := infer(ctx, env, e.Body)
	if err != nil {
		ctx.ExitScope()
		return multiplicity.Empty, nil, err
	}
	ctx.ExitScope()

	mBody = multiplicity.ExitRegion(mBody, e.Vars)

	resultKind, err := InferTypeKind(ctx, env, tBody)
	if err != nil {
		return multiplicity.Empty, nil, err
	}
	ctx.AddConstraint(kinds.Ineq{Lower: resultKind, Upper: kinds.Const{Qualifier: kinds.Lin, Region: region}})

	e.SetType(tBody)
	return mBody, tBody, nil
}
