package affe

import (
	"testing"

	"github.com/affe-lang/affe/ast"
	"github.com/affe-lang/affe/builtin"
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/multiplicity"
	"github.com/affe-lang/affe/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func rootEnv(ctx *Context) *Env {
	env := NewEnv(nil)
	b := builtin.New(ctx.TypeName)
	for n, s := range b.Values {
		env.DeclareValue(n, s)
	}
	for n, s := range b.TypeKinds {
		env.DeclareType(n, s)
	}
	return env
}

func lambda(param ast.Pattern, body ast.Expr) *ast.Lambda { return &ast.Lambda{Param: param, Body: body} }
func pvar(name string) *ast.PVar                          { return &ast.PVar{Name: name} }
func v(name string) *ast.Var                              { return &ast.Var{Name: name} }

// `let id = fun x -> x` generalises to a polymorphic identity arrow with an
// empty residual constraint and no multiplicity residue (spec.md §8).
func TestInferTopIdentityIsPolymorphic(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)

	expr := lambda(pvar("x"), v("x"))
	outer, _, scheme, err := InferTop(ctx, env, false, "id", expr)
	require.NoError(t, err)
	require.Empty(t, outer)

	require.False(t, scheme.IsMonomorphic())
	require.Len(t, scheme.TyVars, 1)

	arrow, ok := types.RealType(scheme.Body).(*types.Arrow)
	require.True(t, ok)
	require.Same(t, types.RealType(arrow.Param), types.RealType(arrow.Result))
}

// `let twice = fun f -> fun x -> f (f x)` applies its argument twice, which
// must bound the inner arrow's own kind to Un (spec.md §4.4's sequential
// reuse rule), while still generalising successfully.
func TestInferTopTwiceAppliesArgumentFunctionTwiceAndGeneralises(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)

	inner := &ast.App{Func: v("f"), Arg: &ast.App{Func: v("f"), Arg: v("x")}}
	expr := lambda(pvar("f"), lambda(pvar("x"), inner))

	_, _, scheme, err := InferTop(ctx, env, false, "twice", expr)
	require.NoError(t, err)
	require.False(t, scheme.IsMonomorphic())

	outerArrow, ok := types.RealType(scheme.Body).(*types.Arrow)
	require.True(t, ok)
	innerArrow, ok := types.RealType(outerArrow.Result).(*types.Arrow)
	require.True(t, ok)
	require.Same(t, types.RealType(innerArrow.Param), types.RealType(innerArrow.Result))

	foundUnBound := false
	for _, c := range scheme.Constraint {
		if upper, ok := kinds.RealKind(c.Upper).(kinds.Const); ok && upper.Qualifier == kinds.Un {
			foundUnBound = true
		}
	}
	require.True(t, foundUnBound, "expected a constraint bounding some kind above by Un, got %v", scheme.Constraint)
}

// `let swap = fun p -> match p with (a,b) -> (b,a)` permutes a tuple; a and b
// keep independent (arbitrary) kinds, and the result type is a tuple of the
// same shape with elements swapped.
func TestInferTopSwapPermutesTuplePattern(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)

	swapBody := &ast.Match{
		Value: v("p"),
		Arms: []ast.MatchArm{{
			Pattern: &ast.PTuple{Elems: []ast.Pattern{pvar("a"), pvar("b")}},
			Body:    &ast.TupleExpr{Elems: []ast.Expr{v("b"), v("a")}},
		}},
	}
	expr := lambda(pvar("p"), swapBody)

	_, _, scheme, err := InferTop(ctx, env, false, "swap", expr)
	require.NoError(t, err)
	require.False(t, scheme.IsMonomorphic())

	arrow, ok := types.RealType(scheme.Body).(*types.Arrow)
	require.True(t, ok)
	paramTuple, ok := types.RealType(arrow.Param).(*types.Tuple)
	require.True(t, ok)
	resultTuple, ok := types.RealType(arrow.Result).(*types.Tuple)
	require.True(t, ok)
	require.Len(t, paramTuple.Elems, 2)
	require.Len(t, resultTuple.Elems, 2)
	// swapped: result[0] is param's second element, result[1] its first.
	require.Same(t, types.RealType(paramTuple.Elems[1]), types.RealType(resultTuple.Elems[0]))
	require.Same(t, types.RealType(paramTuple.Elems[0]), types.RealType(resultTuple.Elems[1]))
}

// `let r = fun x -> &x` returns a Read borrow of its own parameter.
func TestInferTopBorrowReturnsReadBorrowOfParam(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)

	expr := lambda(pvar("x"), &ast.Borrow{Mode: ast.Read, Name: "x"})
	_, _, scheme, err := InferTop(ctx, env, false, "r", expr)
	require.NoError(t, err)

	arrow, ok := types.RealType(scheme.Body).(*types.Arrow)
	require.True(t, ok)
	borrow, ok := types.RealType(arrow.Result).(*types.Borrow)
	require.True(t, ok)
	require.Equal(t, types.Read, borrow.Mode)
	require.Same(t, types.RealType(arrow.Param), types.RealType(borrow.Inner))
}

// `let bad = fun x -> (x, x)` only succeeds by bounding x's kind to Un,
// since a Lin or Aff x could not legally be read twice.
func TestInferTopDuplicatingParamRequiresUnKind(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)

	expr := lambda(pvar("x"), &ast.TupleExpr{Elems: []ast.Expr{v("x"), v("x")}})
	_, _, scheme, err := InferTop(ctx, env, false, "bad", expr)
	require.NoError(t, err)

	found := false
	for _, c := range scheme.Constraint {
		if upper, ok := kinds.RealKind(c.Upper).(kinds.Const); ok && upper.Qualifier == kinds.Un {
			found = true
		}
	}
	require.True(t, found, "expected a kind <= Un constraint, got %v", scheme.Constraint)
}

// `let bad_borrow = fun x -> let y = &x in &!x` borrows x for read, then
// tries to write-borrow it while the read borrow is still alive: a use
// mismatch, not a type error.
func TestInferTopConflictingBorrowsFailWithUseMismatch(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)

	body := &ast.Let{
		Pattern: pvar("y"),
		Value:   &ast.Borrow{Mode: ast.Read, Name: "x"},
		Body:    &ast.Borrow{Mode: ast.Write, Name: "x"},
	}
	expr := lambda(pvar("x"), body)

	_, _, _, err := InferTop(ctx, env, false, "bad_borrow", expr)
	require.Error(t, err)
	var mismatch *multiplicity.UseMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "x", mismatch.Name)
}

// Occurs-check totality: `fun x -> x x` tries to apply x to itself, which
// would require x's own type to contain itself.
func TestOccursCheckRejectsSelfApplication(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)

	expr := lambda(pvar("x"), &ast.App{Func: v("x"), Arg: v("x")})
	_, _, _, err := InferTop(ctx, env, false, "selfapp", expr)
	require.Error(t, err)
	var recursive *RecursiveTypeError
	require.ErrorAs(t, err, &recursive)
}

// alphaEquivalence walks two closed type trees (no unbound Vars, every
// free variable already quantified into a GenericVar) in lockstep,
// matching up GenericVar/kind-GenericVar identities by first occurrence on
// each side rather than by raw id, so two schemes produced by independent
// inference runs compare equal as long as they agree up to a consistent
// renaming of their quantified variables.
type alphaEquivalence struct {
	ty, tyRev     map[int]int
	kind, kindRev map[int]int
}

func newAlphaEquivalence() *alphaEquivalence {
	return &alphaEquivalence{
		ty:      map[int]int{},
		tyRev:   map[int]int{},
		kind:    map[int]int{},
		kindRev: map[int]int{},
	}
}

func correspond(fwd, rev map[int]int, a, b int) bool {
	if mapped, ok := fwd[a]; ok {
		return mapped == b
	}
	if _, taken := rev[b]; taken {
		return false
	}
	fwd[a] = b
	rev[b] = a
	return true
}

func (e *alphaEquivalence) kinds(a, b kinds.Kind) bool {
	a, b = kinds.RealKind(a), kinds.RealKind(b)
	switch a := a.(type) {
	case kinds.Const:
		bc, ok := b.(kinds.Const)
		return ok && a.Equal(bc)
	case *kinds.GenericVar:
		bg, ok := b.(*kinds.GenericVar)
		return ok && correspond(e.kind, e.kindRev, a.Id(), bg.Id())
	default:
		return false
	}
}

// types compares two type trees for alpha-equivalence. It is registered as
// a go-cmp Comparer so that cmp.Diff produces a readable structural diff on
// mismatch instead of a bare boolean, without cmp ever reflecting into the
// unexported fields of the concrete Var/GenericVar/App/etc. structs itself.
func (e *alphaEquivalence) types(a, b types.Type) bool {
	a, b = types.RealType(a), types.RealType(b)
	switch a := a.(type) {
	case *types.GenericVar:
		bg, ok := b.(*types.GenericVar)
		return ok && correspond(e.ty, e.tyRev, a.Id(), bg.Id()) && e.kinds(a.Kind(), bg.Kind())
	case *types.App:
		ba, ok := b.(*types.App)
		if !ok || !a.Const.Equal(ba.Const) || len(a.Args) != len(ba.Args) {
			return false
		}
		for i := range a.Args {
			if !e.types(a.Args[i], ba.Args[i]) {
				return false
			}
		}
		return true
	case *types.Tuple:
		bt, ok := b.(*types.Tuple)
		if !ok || len(a.Elems) != len(bt.Elems) {
			return false
		}
		for i := range a.Elems {
			if !e.types(a.Elems[i], bt.Elems[i]) {
				return false
			}
		}
		return true
	case *types.Arrow:
		ba, ok := b.(*types.Arrow)
		return ok && e.kinds(a.Kind, ba.Kind) && e.types(a.Param, ba.Param) && e.types(a.Result, ba.Result)
	case *types.Borrow:
		bb, ok := b.(*types.Borrow)
		return ok && a.Mode == bb.Mode && e.kinds(a.Kind, bb.Kind) && e.types(a.Inner, bb.Inner)
	default:
		return false
	}
}

// Idempotence of generalisation: re-running inference on the same
// expression against a fresh context produces an alpha-equivalent scheme.
func TestGeneralizationIsIdempotentUpToAlphaEquivalence(t *testing.T) {
	build := func() types.Type {
		ctx := NewContext()
		env := rootEnv(ctx)
		expr := lambda(pvar("x"), v("x"))
		_, _, scheme, err := InferTop(ctx, env, false, "id", expr)
		require.NoError(t, err)
		return scheme.Body
	}
	a, b := build(), build()

	eq := newAlphaEquivalence()
	diff := cmp.Diff(
		struct{ T types.Type }{a},
		struct{ T types.Type }{b},
		cmp.Comparer(eq.types),
	)
	require.Empty(t, diff, "schemes are not alpha-equivalent")
}

// The value restriction: a let-bound application is never generalised, even
// though the corresponding lambda form freely would be.
func TestValueRestrictionRejectsApplicationButAllowsLambda(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)
	env.DeclareValue("f", types.Monomorphic(&types.Arrow{
		Param:  ctx.NewTypeVar(),
		Kind:   ctx.NewKindVar(),
		Result: ctx.NewTypeVar(),
	}))
	env.DeclareValue("y", types.Monomorphic(ctx.NewTypeVar()))

	require.False(t, NonExpansive(&ast.App{Func: v("f"), Arg: v("y")}))
	require.True(t, NonExpansive(lambda(pvar("z"), v("z"))))
}

// Every scheme's embedded constraint is satisfiable: re-solving it (as if
// re-checking a freshly instantiated copy) must not raise.
func TestGeneralizedConstraintReSolvesWithoutError(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)
	expr := lambda(pvar("x"), &ast.TupleExpr{Elems: []ast.Expr{v("x"), v("x")}})
	_, _, scheme, err := InferTop(ctx, env, false, "bad", expr)
	require.NoError(t, err)

	keep := map[int]bool{}
	for _, c := range scheme.Constraint {
		if kv, ok := c.Lower.(*kinds.GenericVar); ok {
			keep[kv.Id()] = true
		}
		if kv, ok := c.Upper.(*kinds.GenericVar); ok {
			keep[kv.Id()] = true
		}
	}
	_, err = kinds.Solve(instantiateGenericLeqs(scheme.Constraint), keep)
	require.NoError(t, err)
}

// instantiateGenericLeqs swaps each GenericVar endpoint for a fresh Var so
// the constraint list can be fed back into the solver, which never expects
// to see a GenericVar (those only ever appear inside an uninstantiated
// scheme).
func instantiateGenericLeqs(cs []kinds.Ineq) []kinds.Ineq {
	sub := map[int]*kinds.Var{}
	resolve := func(k kinds.Kind) kinds.Kind {
		gv, ok := k.(*kinds.GenericVar)
		if !ok {
			return k
		}
		if v, ok := sub[gv.Id()]; ok {
			return v
		}
		nv := kinds.NewVar(gv.Id(), 0)
		sub[gv.Id()] = nv
		return nv
	}
	out := make([]kinds.Ineq, len(cs))
	for i, c := range cs {
		out[i] = kinds.Ineq{Lower: resolve(c.Lower), Upper: resolve(c.Upper)}
	}
	return out
}

func TestMakeTypeDeclConstrainsFieldKindsBelowResult(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)

	elemKindVar := ctx.NewKindVar()
	resultKind := ctx.NewKindVar()
	field := ctx.NewTypeVarWithKind(elemKindVar)

	env2, scheme, err := MakeTypeDecl(ctx, env, "Box", []*kinds.Var{elemKindVar}, resultKind, []types.Type{field})
	require.NoError(t, err)
	require.NotNil(t, env2)
	require.Len(t, scheme.ArgKinds, 1)
}

func TestMakeTypeSchemeRejectsAlreadyGeneralisedType(t *testing.T) {
	ctx := NewContext()
	env := rootEnv(ctx)
	gv := types.NewGenericVar(0, kinds.NewGenericVar(0))

	_, _, err := MakeTypeScheme(ctx, env, "Alias", gv)
	require.Error(t, err)
	var already *AlreadyGeneralisedError
	require.ErrorAs(t, err, &already)
}
