package kinds

import (
	"testing"

	"github.com/affe-lang/affe/names"
	"github.com/stretchr/testify/require"
)

func TestSolveFeasibleWindowKeepsVariable(t *testing.T) {
	v := NewVar(0, 0)
	cs := []Ineq{
		{Lower: UnGlobal, Upper: v},
		{Lower: v, Upper: LinNever},
	}
	out, err := Solve(cs, map[int]bool{0: true})
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestSolveIllegalBoundsWhenWindowEmpty(t *testing.T) {
	v := NewVar(0, 0)
	lin := Const{Qualifier: Lin, Region: names.Global}
	un := Const{Qualifier: Un, Region: names.Global}
	cs := []Ineq{
		{Lower: lin, Upper: v}, // v >= Lin
		{Lower: v, Upper: un},  // v <= Un, infeasible since Lin > Un
	}
	_, err := Solve(cs, map[int]bool{0: true})
	require.Error(t, err)
	var bounds *IllegalBoundsError
	require.ErrorAs(t, err, &bounds)
}

func TestSolveIllegalEdgeBetweenConstants(t *testing.T) {
	cs := []Ineq{{Lower: LinNever, Upper: UnGlobal}}
	_, err := Solve(cs, nil)
	require.Error(t, err)
	var edge *IllegalEdgeError
	require.ErrorAs(t, err, &edge)
}

func TestSolveDropsEdgesBetweenTwoEliminableVariables(t *testing.T) {
	a, b := NewVar(0, 0), NewVar(1, 0)
	cs := []Ineq{{Lower: a, Upper: b}}
	out, err := Solve(cs, map[int]bool{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestSolveKeepsEdgeTouchingAConstant(t *testing.T) {
	a := NewVar(0, 0)
	cs := []Ineq{{Lower: UnGlobal, Upper: a}}
	out, err := Solve(cs, map[int]bool{})
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestSolveNoConstraintsIsNoop(t *testing.T) {
	out, err := Solve(nil, nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestLeqLubGlbProductOrder(t *testing.T) {
	global := names.Global
	a := Const{Qualifier: Un, Region: global}
	b := Const{Qualifier: Lin, Region: global}
	require.True(t, Leq(a, b))
	require.False(t, Leq(b, a))
	require.Equal(t, b, Lub(a, b))
	require.Equal(t, a, Glb(a, b))
}
