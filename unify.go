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
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/types"
)

// UnifyKind unifies two usage-kinds structurally (spec.md §4.2's
// unify_kind): this is non-recursive equality between lattice Consts or
// variable cells, used wherever a kind annotation on a type (an Arrow's or
// Borrow's own Kind, or a type-variable's companion kind) must agree
// exactly with another, as opposed to the inequality relation the solver
// works with in package kinds.
func UnifyKind(ctx *Context, a, b kinds.Kind) error {
	a, b = kinds.RealKind(a), kinds.RealKind(b)
	if a == b {
		return nil
	}
	if ac, ok := a.(kinds.Const); ok {
		if bc, ok := b.(kinds.Const); ok {
			if ac.Equal(bc) {
				return nil
			}
			return &KindMismatchError{A: a, B: b}
		}
	}
	if av, ok := a.(*kinds.Var); ok {
		return unifyKindVar(ctx, av, b)
	}
	if bv, ok := b.(*kinds.Var); ok {
		return unifyKindVar(ctx, bv, a)
	}
	// Neither side is a Const or a Var: one of them is a GenericVar that
	// escaped instantiation, which unify_kind is never meant to see.
	panic("affe: unify_kind encountered an uninstantiated generic kind variable")
}

func unifyKindVar(ctx *Context, v *kinds.Var, k kinds.Kind) error {
	if other, ok := k.(*kinds.Var); ok && other.Id() == v.Id() {
		return nil
	}
	if occursKind(v.Id(), v.Level(), k) {
		return &KindMismatchError{A: v, B: k}
	}
	v.SetLink(k)
	return nil
}

// occursKind reports whether kind-variable id occurs within k, adjusting
// every Var level encountered along the way down to at most level (per
// Kiselyov's "Efficient Generalization with Levels"). id may be -1 to skip
// the occurs-check itself and only perform the level adjustment, which is
// how a type-side occurs-check descends into a companion kind.
func occursKind(id int, level int, k kinds.Kind) bool {
	k = kinds.RealKind(k)
	switch k := k.(type) {
	case *kinds.Var:
		if id >= 0 && k.Id() == id {
			return true
		}
		k.AdjustLevel(level)
		return false
	default:
		return false
	}
}

// UnifyType unifies two types structurally (spec.md §4.2's unify_type): the
// recursive tier of the two-tier unifier, where an occurs-check is
// necessary because Affe's types (unlike its kinds) can be recursive data
// structures.
func UnifyType(ctx *Context, a, b types.Type) error {
	a, b = types.RealType(a), types.RealType(b)
	if a == b {
		return nil
	}

	if av, ok := a.(*types.Var); ok {
		return unifyTypeVar(ctx, av, b)
	}
	if bv, ok := b.(*types.Var); ok {
		return unifyTypeVar(ctx, bv, a)
	}

	switch a := a.(type) {
	case *types.App:
		b, ok := b.(*types.App)
		if !ok || !a.Const.Equal(b.Const) {
			return &TypeMismatchError{A: a, B: b}
		}
		if len(a.Args) != len(b.Args) {
			return &ArityMismatchError{Name: a.Const.String(), Expected: len(a.Args), Actual: len(b.Args)}
		}
		for i := range a.Args {
			if err := UnifyType(ctx, a.Args[i], b.Args[i]); err != nil {
				return err
			}
		}
		return nil

	case *types.Tuple:
		b, ok := b.(*types.Tuple)
		if !ok || len(a.Elems) != len(b.Elems) {
			return &TypeMismatchError{A: a, B: b}
		}
		for i := range a.Elems {
			if err := UnifyType(ctx, a.Elems[i], b.Elems[i]); err != nil {
				return err
			}
		}
		return nil

	case *types.Arrow:
		b, ok := b.(*types.Arrow)
		if !ok {
			return &TypeMismatchError{A: a, B: b}
		}
		if err := UnifyType(ctx, a.Param, b.Param); err != nil {
			return err
		}
		if err := UnifyType(ctx, a.Result, b.Result); err != nil {
			return err
		}
		return UnifyKind(ctx, a.Kind, b.Kind)

	case *types.Borrow:
		b, ok := b.(*types.Borrow)
		if !ok || a.Mode != b.Mode {
			return &TypeMismatchError{A: a, B: b}
		}
		// A borrow's own kind must denote the same region/usage from both
		// sides of the unification: emit both directions of the
		// inequality (equivalent to equality in the lattice) rather than
		// a hard UnifyKind, since the two occurrences may still be
		// distinct unsolved kind-variables bound by independent edges.
		ctx.AddConstraint(
			kinds.Ineq{Lower: a.Kind, Upper: b.Kind},
			kinds.Ineq{Lower: b.Kind, Upper: a.Kind},
		)
		return UnifyType(ctx, a.Inner, b.Inner)

	default:
		return &TypeMismatchError{A: a, B: b}
	}
}

func unifyTypeVar(ctx *Context, v *types.Var, t types.Type) error {
	if other, ok := types.RealType(t).(*types.Var); ok && other.Id() == v.Id() {
		return nil
	}
	if occursType(v.Id(), v.Level(), t) {
		return &RecursiveTypeError{Var: v, In: t}
	}
	k, err := InferTypeKind(ctx, nil, t)
	if err != nil {
		return err
	}
	if err := UnifyKind(ctx, v.Kind(), k); err != nil {
		return err
	}
	v.SetLink(t)
	return nil
}

// occursType reports whether type-variable id occurs within t, adjusting
// every Var level (and every kind-variable level reachable from it)
// encountered along the way down to at most level.
func occursType(id int, level int, t types.Type) bool {
	t = types.RealType(t)
	switch t := t.(type) {
	case *types.Var:
		if t.Id() == id {
			return true
		}
		t.AdjustLevel(level)
		occursKind(-1, level, t.Kind())
		return false
	case *types.App:
		for _, arg := range t.Args {
			if occursType(id, level, arg) {
				return true
			}
		}
		return false
	case *types.Tuple:
		for _, el := range t.Elems {
			if occursType(id, level, el) {
				return true
			}
		}
		return false
	case *types.Arrow:
		occursKind(-1, level, t.Kind)
		return occursType(id, level, t.Param) || occursType(id, level, t.Result)
	case *types.Borrow:
		occursKind(-1, level, t.Kind)
		return occursType(id, level, t.Inner)
	default:
		return false
	}
}

// InferTypeKind computes the usage-kind of a type (spec.md §4.3): App
// constructors consult their declared kind scheme, Tuple synthesizes a
// fresh upper-bounding kind-variable over its elements, Arrow and Borrow
// report their own stored kind directly, and Var/GenericVar report their
// companion kind.
//
// env is consulted only for App; it may be nil when t is known not to
// contain an App (for example, the immediate argument to UnifyType's
// occurs-check resolution, which only ever needs a Var/Tuple/Arrow/Borrow's
// own kind).
func InferTypeKind(ctx *Context, env *Env, t types.Type) (kinds.Kind, error) {
	t = types.RealType(t)
	switch t := t.(type) {
	case *types.Var:
		return t.Kind(), nil
	case *types.GenericVar:
		return t.Kind(), nil
	case *types.Arrow:
		return t.Kind, nil
	case *types.Borrow:
		return t.Kind, nil
	case *types.Tuple:
		k := ctx.NewKindVar()
		for _, el := range t.Elems {
			elKind, err := InferTypeKind(ctx, env, el)
			if err != nil {
				return nil, err
			}
			ctx.AddConstraint(kinds.Ineq{Lower: elKind, Upper: k})
		}
		return k, nil
	case *types.App:
		scheme, err := env.LookupType(t.Const.String())
		if err != nil {
			return nil, err
		}
		argKinds, result, constraint := scheme.Instantiate(ctx.Level(), ctx.NewKindVar)
		if len(argKinds) != len(t.Args) {
			return nil, &ArityMismatchError{Name: t.Const.String(), Expected: len(argKinds), Actual: len(t.Args)}
		}
		ctx.AddConstraint(constraint...)
		for i, arg := range t.Args {
			argKind, err := InferTypeKind(ctx, env, arg)
			if err != nil {
				return nil, err
			}
			if err := UnifyKind(ctx, argKinds[i], argKind); err != nil {
				return nil, err
			}
		}
		return result, nil
	default:
		panic("affe: InferTypeKind: unexpected type " + t.TypeName())
	}
}
