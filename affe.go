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
)

// InferTop infers a top-level value declaration `let name = expr` (or, if
// rec is set, `let rec name = expr`), generalising the result at the
// context's current level and returning whatever constraint remains once
// generalisation is done, an environment extending env with name bound to
// the resulting scheme, and the scheme itself.
func InferTop(ctx *Context, env *Env, rec bool, name string, expr ast.Expr) ([]kinds.Ineq, *Env, *types.Scheme, error) {
	ctx.EnterScope()

	var tValue types.Type
	var err error

	if rec {
		tValue, err = inferTopRec(ctx, env, name, expr)
	} else {
		_, tValue, err = infer(ctx, env, expr)
	}
	if err != nil {
		ctx.ExitScope()
		return nil, nil, nil, err
	}

	resid, err := ctx.Normalize()
	ctx.ExitScope()
	if err != nil {
		return nil, nil, nil, err
	}

	scheme, outer := Generalize(ctx, expr, tValue, resid)

	env2 := NewEnv(env)
	env2.DeclareValue(name, scheme)
	return outer, env2, scheme, nil
}

// inferTopRec infers a self-referential top-level declaration, binding name
// monomorphically to a fresh placeholder for the duration of expr's
// inference and discharging its self-use before returning.
func inferTopRec(ctx *Context, env *Env, name string, expr ast.Expr) (types.Type, error) {
	selfVar := ctx.NewTypeVar()
	envSelf := NewEnv(env)
	envSelf.DeclareValue(name, types.Monomorphic(selfVar))

	mValue, tValue, err := infer(ctx, envSelf, expr)
	if err != nil {
		return nil, err
	}
	if err := UnifyType(ctx, selfVar, tValue); err != nil {
		return nil, err
	}
	k, err := InferTypeKind(ctx, env, tValue)
	if err != nil {
		return nil, err
	}
	ctx.exitBinder(mValue, name, k)
	return tValue, nil
}

// MakeTypeDecl introduces a new type constructor named constr, parameterised
// by kindArgs (one kind-variable per type-parameter position), whose own
// usage-kind is resultKind. argTypes are the declared field types of the
// constructor's single data constructor, expressed in terms of kindArgs;
// each field's synthesised kind is constrained to be no more restrictive
// than resultKind, so that (for example) an Un-kinded container cannot be
// built around a Lin-kinded field, which would let duplicating the
// container silently duplicate a must-use-once value. The resulting kind
// scheme is declared into a new environment extending env.
func MakeTypeDecl(ctx *Context, env *Env, constr string, kindArgs []*kinds.Var, resultKind kinds.Kind, argTypes []types.Type) (*Env, *kinds.Scheme, error) {
	for _, t := range argTypes {
		fieldKind, err := InferTypeKind(ctx, env, t)
		if err != nil {
			return nil, nil, err
		}
		ctx.AddConstraint(kinds.Ineq{Lower: fieldKind, Upper: resultKind})
	}

	resid, err := ctx.Normalize()
	if err != nil {
		return nil, nil, err
	}

	kvars := make([]*kinds.GenericVar, len(kindArgs))
	argKinds := make([]kinds.Kind, len(kindArgs))
	for i, kv := range kindArgs {
		gv := kinds.NewGenericVar(kv.Id())
		kv.SetLink(gv)
		kvars[i] = gv
		argKinds[i] = gv
	}
	// kindArgs were just linked to fresh GenericVars above; RealKind follows
	// that link so resultKind/resid (expressed in terms of kindArgs) come
	// out quantified the same way generalizeType links free Vars in place.
	result := kinds.RealKind(resultKind)

	var constraint []kinds.Ineq
	for _, c := range resid {
		constraint = append(constraint, kinds.Ineq{
			Lower: kinds.RealKind(c.Lower),
			Upper: kinds.RealKind(c.Upper),
		})
	}

	scheme := &kinds.Scheme{KVars: kvars, Constraint: constraint, ArgKinds: argKinds, Result: result}

	env2 := NewEnv(env)
	env2.DeclareType(constr, scheme)
	return env2, scheme, nil
}

// MakeTypeScheme computes a closed, generalised type scheme for a
// user-written type annotation t, declaring it as a data-constructor scheme
// named constr in a new environment extending env. t must not already
// contain quantified variables; annotations are always written in terms of
// fresh type- and kind-variables, so a generic t here indicates the caller
// mistakenly tried to generalise an already-generalised scheme's body.
func MakeTypeScheme(ctx *Context, env *Env, constr string, t types.Type) (*Env, *types.Scheme, error) {
	if t.IsGeneric() {
		return nil, nil, &AlreadyGeneralisedError{Scheme: types.Monomorphic(t)}
	}

	if _, err := InferTypeKind(ctx, env, t); err != nil {
		return nil, nil, err
	}

	resid, err := ctx.Normalize()
	if err != nil {
		return nil, nil, err
	}

	scheme, outer := generalizeType(ctx, t, resid)
	ctx.AddConstraint(outer...)

	env2 := NewEnv(env)
	env2.DeclareConstructor(constr, scheme)
	return env2, scheme, nil
}
