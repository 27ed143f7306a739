package multiplicity

import (
	"testing"

	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/names"
	"github.com/stretchr/testify/require"
)

func someKind() kinds.Kind {
	return kinds.Const{Qualifier: kinds.Un, Region: names.Global}
}

func TestSequentialMergeShadowPassesThrough(t *testing.T) {
	a := Empty.With("x", Shadow)
	b := Empty.With("x", NormalOf(someKind()))
	merged, cs, err := SequentialMerge(a, b)
	require.NoError(t, err)
	require.Empty(t, cs)
	u, ok := merged.Get("x")
	require.True(t, ok)
	require.Equal(t, NormalUse, u.Kind)
}

func TestSequentialMergeNormalReuseEmitsUnNever(t *testing.T) {
	k1, k2 := someKind(), someKind()
	a := Empty.With("x", NormalOf(k1))
	b := Empty.With("x", NormalOf(k2))
	merged, cs, err := SequentialMerge(a, b)
	require.NoError(t, err)
	require.Len(t, cs, 2)
	for _, c := range cs {
		require.Equal(t, kinds.Const{Qualifier: kinds.Un, Region: names.Never}, c.Upper)
	}
	u, _ := merged.Get("x")
	require.Len(t, u.Kinds, 2)
}

func TestSequentialMergeReadBorrowsConcatenate(t *testing.T) {
	a := Empty.With("x", BorrowOf(Read, someKind()))
	b := Empty.With("x", BorrowOf(Read, someKind()))
	merged, cs, err := SequentialMerge(a, b)
	require.NoError(t, err)
	require.Empty(t, cs)
	u, _ := merged.Get("x")
	require.Equal(t, BorrowUse, u.Kind)
	require.Len(t, u.Kinds, 2)
}

func TestSequentialMergeConflictingBorrowsFail(t *testing.T) {
	a := Empty.With("x", BorrowOf(Read, someKind()))
	b := Empty.With("x", BorrowOf(Write, someKind()))
	_, _, err := SequentialMerge(a, b)
	require.Error(t, err)
	var mismatch *UseMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "x", mismatch.Name)
}

func TestParallelMergeNoUnNeverConstraint(t *testing.T) {
	a := Empty.With("x", NormalOf(someKind()))
	b := Empty.With("x", NormalOf(someKind()))
	merged, err := ParallelMerge(a, b)
	require.NoError(t, err)
	u, _ := merged.Get("x")
	require.Len(t, u.Kinds, 2)
}

func TestParallelMergeWriteBorrowsOnBothArmsOK(t *testing.T) {
	a := Empty.With("x", BorrowOf(Write, someKind()))
	b := Empty.With("x", BorrowOf(Write, someKind()))
	merged, err := ParallelMerge(a, b)
	require.NoError(t, err)
	u, _ := merged.Get("x")
	require.Equal(t, Write, u.Mode)
}

func TestExitBinderNoConstraintOnSingleUse(t *testing.T) {
	m := Empty.With("x", NormalOf(someKind()))
	k := &kinds.Var{}
	_, cs := ExitBinder(m, "x", k)
	require.Empty(t, cs)
}

func TestExitBinderConstrainsUnusedBinding(t *testing.T) {
	k := &kinds.Var{}
	_, cs := ExitBinder(Empty, "x", k)
	require.Len(t, cs, 1)
	require.Equal(t, k, cs[0].Lower)
}

func TestExitBinderConstrainsRepeatedUse(t *testing.T) {
	m := Empty.With("x", Use{Kind: NormalUse, Kinds: []kinds.Kind{someKind(), someKind()}})
	k := &kinds.Var{}
	_, cs := ExitBinder(m, "x", k)
	require.Len(t, cs, 1)
}

func TestExitScopeDowngradesBorrowsToShadow(t *testing.T) {
	m := Empty.With("x", BorrowOf(Read, someKind()))
	out := ExitScope(m)
	u, ok := out.Get("x")
	require.True(t, ok)
	require.Equal(t, ShadowUse, u.Kind)
}

func TestConstraintAllBoundsCapturedNormalUses(t *testing.T) {
	k := someKind()
	m := Empty.With("x", NormalOf(k))
	arrowKind := &kinds.Var{}
	cs := ConstraintAll(m, arrowKind)
	require.Len(t, cs, 1)
	require.Equal(t, k, cs[0].Lower)
	require.Equal(t, kinds.Kind(arrowKind), cs[0].Upper)
}
