// Package builtin provides the initial environment that every top-level
// declaration is inferred against: the primitive nullary types, the Array
// type constructor, and the fix-point combinator Y.
package builtin

import (
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/names"
	"github.com/affe-lang/affe/types"
)

// Env mirrors the root package's Env shape, but builtin cannot import the
// root package (which imports builtin's sibling ast/multiplicity types only
// indirectly), so it is built directly against types/kinds and handed back
// for the caller to fold into a root Env via DeclareValue/DeclareType.
type Env struct {
	Values    map[string]*types.Scheme
	TypeKinds map[string]*kinds.Scheme
}

// New builds the initial environment. namer must intern type-constructor
// labels the same way the surrounding Context does (Context.TypeName),
// so that an App built by the driver for, say, an array literal's "Array"
// constructor compares equal by tag to the one embedded in Array's kind
// scheme here.
func New(namer func(label string) names.Name) *Env {
	intType := &types.App{Const: namer("int")}
	boolType := &types.App{Const: namer("bool")}
	namer("Array")

	values := map[string]*types.Scheme{
		// Looked up by Const nodes carrying an integer-literal Syntax and
		// Name "int"; every literal shares this one monomorphic scheme.
		"int":   types.Monomorphic(intType),
		"true":  types.Monomorphic(boolType),
		"false": types.Monomorphic(boolType),
		"Y":     fixpointScheme(),
	}

	typeKinds := map[string]*kinds.Scheme{
		"int":   kinds.Closed(kinds.UnGlobal),
		"bool":  kinds.Closed(kinds.UnGlobal),
		"Array": arrayScheme(),
	}

	return &Env{Values: values, TypeKinds: typeKinds}
}

// arrayScheme builds Array's kind scheme: `Array(α) : kα`, the array's own
// kind bounded by (tracking exactly) the kind of its element type, since an
// array of Lin elements must itself be treated as at least as restrictive
// as its elements.
func arrayScheme() *kinds.Scheme {
	elemKind := kinds.NewGenericVar(0)
	return &kinds.Scheme{
		KVars:    []*kinds.GenericVar{elemKind},
		ArgKinds: []kinds.Kind{elemKind},
		Result:   elemKind,
	}
}

// fixpointScheme builds Y : (α → α) → α with α:Un, the one primitive every
// self-referential (but not syntactically let rec) recursive definition
// can be built from: Un because applying Y duplicates its argument
// function internally.
func fixpointScheme() *types.Scheme {
	elemKind := kinds.NewGenericVar(0)
	elem := types.NewGenericVar(0, elemKind)

	argKind := kinds.NewGenericVar(1)
	resultKind := kinds.NewGenericVar(2)

	inner := &types.Arrow{Param: elem, Kind: argKind, Result: elem}
	body := &types.Arrow{Param: inner, Kind: resultKind, Result: elem}
	types.SetHasGenericVars(inner, true)
	types.SetHasGenericVars(body, true)

	constraint := []kinds.Ineq{
		// Un, not tied to any particular region: Y may duplicate its
		// argument function an unbounded number of times, regardless of
		// where the caller instantiates it from.
		{Lower: elemKind, Upper: kinds.Const{Qualifier: kinds.Un, Region: names.Never}},
	}

	return &types.Scheme{
		KVars:      []*kinds.GenericVar{elemKind, argKind, resultKind},
		TyVars:     []*types.GenericVar{elem},
		Constraint: constraint,
		Body:       body,
	}
}
