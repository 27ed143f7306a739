package types

import (
	"testing"

	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/names"
	"github.com/stretchr/testify/require"
)

func someKind() kinds.Kind { return kinds.Const{Qualifier: kinds.Un, Region: names.Global} }

func TestRealTypeFollowsLinkChain(t *testing.T) {
	inner := &App{Const: names.NewNamer().Fresh("int")}
	v2 := NewVar(1, 0, someKind())
	v2.SetLink(inner)
	v1 := NewVar(0, 0, someKind())
	v1.SetLink(v2)

	require.Same(t, inner, RealType(v1))
}

func TestRealTypeUnboundVarIsUnchanged(t *testing.T) {
	v := NewVar(0, 0, someKind())
	require.Equal(t, Type(v), RealType(v))
}

func TestIsGenericPropagatesThroughLink(t *testing.T) {
	gv := NewGenericVar(0, someKind())
	v := NewVar(0, 0, someKind())
	v.SetLink(gv)
	require.True(t, v.IsGeneric())

	bare := NewVar(1, 0, someKind())
	require.False(t, bare.IsGeneric())
}

func TestTypeStringNamesUnboundAndGenericVarsDistinctly(t *testing.T) {
	unbound := NewVar(7, 0, someKind())
	require.Equal(t, "'_7", TypeString(unbound))

	gv := NewGenericVar(0, someKind())
	require.Equal(t, "'a", TypeString(gv))
}

func TestTypeStringRendersAppWithArgs(t *testing.T) {
	arrayName := names.NewNamer().Fresh("Array")
	intName := names.NewNamer().Fresh("int")
	app := &App{Const: arrayName, Args: []Type{&App{Const: intName}}}
	require.Equal(t, "Array(int)", TypeString(app))
}

func TestSchemeInstantiateMonomorphicIsNoop(t *testing.T) {
	body := &App{Const: names.NewNamer().Fresh("bool")}
	s := Monomorphic(body)
	require.True(t, s.IsMonomorphic())

	var nextKind int
	newKindVar := func() *kinds.Var { nextKind++; return kinds.NewVar(nextKind, 0) }
	newTyVar := func(k kinds.Kind) *Var { return NewVar(100, 0, k) }

	out, cs := s.Instantiate(0, newKindVar, newTyVar)
	require.Same(t, body, out)
	require.Empty(t, cs)
}

func TestSchemeInstantiateSubstitutesEveryGenericOccurrence(t *testing.T) {
	elemKind := kinds.NewGenericVar(0)
	elem := NewGenericVar(0, elemKind)
	body := &Tuple{Elems: []Type{elem, elem}}
	SetHasGenericVars(body, true)

	s := &Scheme{
		KVars:  []*kinds.GenericVar{elemKind},
		TyVars: []*GenericVar{elem},
		Body:   body,
	}

	var nextTy, nextKind int
	newKindVar := func() *kinds.Var { id := nextKind; nextKind++; return kinds.NewVar(id, 0) }
	newTyVar := func(k kinds.Kind) *Var { id := nextTy; nextTy++; return NewVar(id, 0, k) }

	out, cs := s.Instantiate(0, newKindVar, newTyVar)
	require.Empty(t, cs)

	tup, ok := out.(*Tuple)
	require.True(t, ok)
	require.Len(t, tup.Elems, 2)
	v0, ok := tup.Elems[0].(*Var)
	require.True(t, ok)
	v1, ok := tup.Elems[1].(*Var)
	require.True(t, ok)
	require.Same(t, v0, v1)
}
