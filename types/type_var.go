package types

import "github.com/affe-lang/affe/kinds"

// Var is a mutable, level-indexed type-unification cell: Unbound(id, level)
// until it is solved, at which point it becomes a transparent Link
// forwarder. Every Var carries its own companion kind-variable, created
// alongside it, so that kind inference always has
// something to instantiate when it reaches a bare type variable.
type Var struct {
	link  Type
	id    int32
	level int32
	kind  kinds.Kind
}

// NewVar creates a fresh, unbound type-variable at the given id and level,
// paired with its own kind-unification variable k.
func NewVar(id, level int, k kinds.Kind) *Var {
	return &Var{id: int32(id), level: int32(level), kind: k}
}

// Kind returns the variable's companion kind. This is itself frequently a
// *kinds.Var that the kind-solver has since linked; callers should pass it
// through kinds.RealKind before inspecting it.
func (v *Var) Kind() kinds.Kind { return v.kind }

// Id returns the unique identifier of the variable.
func (v *Var) Id() int { return int(v.id) }

// Level returns the binding level of the variable. The result is
// meaningless once the variable is linked.
func (v *Var) Level() int { return int(v.level) }

// Link returns the type this variable is bound to, if any.
func (v *Var) Link() Type { return v.link }

// IsUnboundVar reports whether the variable is still unsolved.
func (v *Var) IsUnboundVar() bool { return v.link == nil }

// IsLinkVar reports whether the variable has been solved.
func (v *Var) IsLinkVar() bool { return v.link != nil }

// SetLink solves the variable, making it a transparent forwarder to t.
func (v *Var) SetLink(t Type) { v.link = t }

// AdjustLevel lowers the variable's level. Levels only ever decrease along
// a chain of Link cells, following "Efficient Generalization with Levels"
// (Oleg Kiselyov).
func (v *Var) AdjustLevel(level int) {
	if level < int(v.level) {
		v.level = int32(level)
	}
}

// GenericVar is an immutable, quantified type-variable produced only by
// generalisation. Unlike Var it can never be mutated in place, and its
// kind is fixed at the point of quantification rather than re-solved.
type GenericVar struct {
	id   int32
	kind kinds.Kind
}

// NewGenericVar creates a quantified type-variable with the given id and
// (already-solved) kind.
func NewGenericVar(id int, k kinds.Kind) *GenericVar {
	return &GenericVar{id: int32(id), kind: k}
}

func (g *GenericVar) Id() int            { return int(g.id) }
func (g *GenericVar) Kind() kinds.Kind   { return g.kind }
