package kinds

// Var is a mutable, level-indexed kind-unification cell: Unbound(id, level)
// until it is solved, at which point it becomes a transparent Link forwarder.
//
// This mirrors a type-unification variable (see package types), which is
// likewise either unbound or linked, keeping the unifier's
// level-adjustment and occurs-check logic identical in shape across both
// tiers. Quantified kind variables are a separate type, GenericVar.
type Var struct {
	link  Kind
	id    int32
	level int32
}

// Sentinel level for a linked Var. The Link state itself is the non-nil
// link field, and nothing reads this constant; an unbound Var's level is
// always a small non-negative int.
const (
	linkVarLevel = -1 << 31
)

// NewVar creates a fresh, unbound kind-variable at the given id and level.
func NewVar(id, level int) *Var { return &Var{id: int32(id), level: int32(level)} }

func (v *Var) KindName() string { return "Var" }

// IsGeneric reports whether the variable has been solved to a generic kind.
// An unbound variable is never generic; a linked one defers to whatever it
// was linked to.
func (v *Var) IsGeneric() bool {
	if v.IsLinkVar() {
		return v.Link().IsGeneric()
	}
	return false
}

// Id returns the unique identifier of the variable.
func (v *Var) Id() int { return int(v.id) }

// Level returns the binding level of the variable. The result is
// meaningless once the variable is linked.
func (v *Var) Level() int { return int(v.level) }

// Link returns the kind this variable is bound to, if any.
func (v *Var) Link() Kind { return v.link }

// IsUnboundVar reports whether the variable is still unsolved.
func (v *Var) IsUnboundVar() bool { return v.link == nil }

// IsLinkVar reports whether the variable has been solved.
func (v *Var) IsLinkVar() bool { return v.link != nil }

// SetLink solves the variable, making it a transparent forwarder to k.
func (v *Var) SetLink(k Kind) { v.link = k }

// AdjustLevel lowers the variable's level. Levels only ever decrease along
// a chain of Link cells, matching the invariant of package types.
func (v *Var) AdjustLevel(level int) {
	if level < int(v.level) {
		v.level = int32(level)
	}
}

// GenericVar is an immutable, quantified kind-variable produced only by
// generalisation. Unlike Var it can never be mutated in place.
type GenericVar struct {
	id int32
}

// NewGenericVar creates a quantified kind-variable with the given id.
func NewGenericVar(id int) *GenericVar { return &GenericVar{id: int32(id)} }

func (g *GenericVar) KindName() string { return "GenericVar" }
func (g *GenericVar) IsGeneric() bool  { return true }
func (g *GenericVar) Id() int          { return int(g.id) }
