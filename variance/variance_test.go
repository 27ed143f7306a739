package variance

import (
	"testing"

	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/names"
	"github.com/affe-lang/affe/types"
	"github.com/stretchr/testify/require"
)

func TestCollectArrowFlipsParameterPolarity(t *testing.T) {
	paramKindVar := kinds.NewVar(1, 0)
	resultKindVar := kinds.NewVar(2, 0)
	arrowKindVar := kinds.NewVar(3, 0)

	param := types.NewVar(1, 0, paramKindVar)
	result := types.NewVar(2, 0, resultKindVar)
	arrow := &types.Arrow{Param: param, Kind: arrowKindVar, Result: result}

	pols := Collect(arrow)
	require.Equal(t, Negative, pols.Types[1])
	require.Equal(t, Positive, pols.Types[2])
	require.Equal(t, Negative, pols.Kinds[1])
	require.Equal(t, Positive, pols.Kinds[2])
	require.Equal(t, Positive, pols.Kinds[3])
}

func TestCollectAppArgumentsAreInvariant(t *testing.T) {
	argKindVar := kinds.NewVar(1, 0)
	arg := types.NewVar(1, 0, argKindVar)
	listName := names.Name{}
	app := &types.App{Const: listName, Args: []types.Type{arg}}

	pols := Collect(app)
	require.Equal(t, Invariant, pols.Types[1])
}

func TestSimplifyDropsUninformativePositiveUpperEdge(t *testing.T) {
	v := kinds.NewVar(1, 0)
	pol := KindVarPolarity{1: Positive}
	cs := []kinds.Ineq{
		{Lower: kinds.UnGlobal, Upper: v},
		{Lower: v, Upper: kinds.LinNever},
	}
	out := Simplify(cs, pol)
	require.Len(t, out, 1)
	require.Equal(t, v, out[0].Lower)
}

func TestSimplifyKeepsInvariantEdges(t *testing.T) {
	v := kinds.NewVar(1, 0)
	pol := KindVarPolarity{1: Invariant}
	cs := []kinds.Ineq{
		{Lower: kinds.UnGlobal, Upper: v},
		{Lower: v, Upper: kinds.LinNever},
	}
	out := Simplify(cs, pol)
	require.Len(t, out, 2)
}
