package ast

import (
	"testing"

	"github.com/affe-lang/affe/types"
	"github.com/stretchr/testify/require"
)

func TestNamesCollectsPVarsLeftToRight(t *testing.T) {
	p := &PTuple{Elems: []Pattern{
		&PVar{Name: "a"},
		&PWildcard{},
		&PTuple{Elems: []Pattern{&PVar{Name: "b"}, &PVar{Name: "c"}}},
	}}
	require.Equal(t, []string{"a", "b", "c"}, Names(p))
}

func TestNamesOnBareWildcardIsEmpty(t *testing.T) {
	require.Empty(t, Names(&PWildcard{}))
}

func TestExprSetTypeRoundTrips(t *testing.T) {
	v := &Var{Name: "x"}
	boolApp := &types.App{}
	v.SetType(boolApp)
	require.Same(t, boolApp, v.Type())
}

func TestLambdaTypeDelegatesToArrowType(t *testing.T) {
	lam := &Lambda{Param: &PVar{Name: "x"}, Body: &Var{Name: "x"}}
	arrow := &types.Arrow{Param: &types.App{}, Result: &types.App{}}
	lam.SetType(arrow)
	require.Same(t, arrow, lam.ArrowType())
	require.Equal(t, types.Type(arrow), lam.Type())
}

func TestLetTypeDelegatesToBody(t *testing.T) {
	body := &Var{Name: "x"}
	bodyType := &types.App{}
	body.SetType(bodyType)
	let := &Let{Pattern: &PVar{Name: "x"}, Value: &Const{Syntax: "1", Name: "int"}, Body: body}
	require.Same(t, bodyType, let.Type())
}

func TestAppTracksBothItsResultAndResolvedFuncType(t *testing.T) {
	app := &App{Func: &Var{Name: "f"}, Arg: &Var{Name: "x"}}
	resultType := &types.App{}
	funcType := &types.Arrow{Param: &types.App{}, Result: resultType}
	app.SetType(resultType)
	app.SetFuncType(funcType)
	require.Same(t, funcType, app.FuncType())
	require.Same(t, resultType, app.Type())
}

func TestExprNameIdentifiesEveryNodeKind(t *testing.T) {
	nodes := []Expr{
		&Const{}, &Var{}, &Borrow{}, &ReBorrow{},
		&Lambda{}, &App{}, &TupleExpr{}, &ArrayExpr{},
		&Let{Pattern: &PVar{}, Value: &Var{}, Body: &Var{}},
		&Match{}, &Region{},
	}
	want := []string{
		"Const", "Var", "Borrow", "ReBorrow",
		"Lambda", "App", "Tuple", "Array",
		"Let", "Match", "Region",
	}
	for i, n := range nodes {
		require.Equal(t, want[i], n.ExprName(), "node %d", i)
	}
}
