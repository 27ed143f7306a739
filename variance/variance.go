// Package variance computes, per free type/kind variable, the polarity
// with which it occurs in a result type — information the kind solver
// uses to decide which direction of an inequality is worth keeping when
// it simplifies a constraint set before generalisation (spec.md §4.5).
package variance

import (
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/types"
)

// Polarity records how a variable occurs relative to the type being
// generalised.
type Polarity int

const (
	Positive Polarity = iota // covariant: occurs only in result position
	Negative                 // contravariant: occurs only in parameter position
	Invariant                // occurs under both, or under a constructor with no declared variance
)

// Flip reverses a polarity, used when descending into a contravariant
// position (an Arrow's parameter).
func (p Polarity) Flip() Polarity {
	switch p {
	case Positive:
		return Negative
	case Negative:
		return Positive
	default:
		return Invariant
	}
}

// join combines the polarity of two independent occurrences of the same
// variable: agreement keeps the polarity, disagreement collapses to
// Invariant (the conservative default spec.md §9 recommends for any
// constructor without declared per-argument variance).
func join(a, b Polarity) Polarity {
	if a == b {
		return a
	}
	return Invariant
}

// TypeVarPolarity maps a type-variable id to its computed polarity.
type TypeVarPolarity map[int]Polarity

// KindVarPolarity maps a kind-variable id to its computed polarity.
type KindVarPolarity map[int]Polarity

// Polarities is the combined result of walking a type: the polarity of
// every free type-variable and every free kind-variable reachable from
// it (an Arrow/Borrow's own kind, and every type-variable's companion
// kind).
type Polarities struct {
	Types TypeVarPolarity
	Kinds KindVarPolarity
}

func newPolarities() *Polarities {
	return &Polarities{Types: make(TypeVarPolarity), Kinds: make(KindVarPolarity)}
}

// Collect walks t starting at Positive polarity (t is a result type) and
// returns the polarity of every free variable it reaches.
func Collect(t types.Type) *Polarities {
	p := newPolarities()
	walkType(p, Positive, t)
	return p
}

func walkType(p *Polarities, pol Polarity, t types.Type) {
	t = types.RealType(t)
	switch t := t.(type) {
	case *types.Var:
		addType(p, t.Id(), pol)
		walkKind(p, pol, t.Kind())

	case *types.App:
		// App arguments are treated invariantly unless/until a constructor
		// declares its own per-argument variance (spec.md §9); no Affe kind
		// scheme in this implementation declares one, so every argument is
		// walked at Invariant regardless of the incoming polarity.
		for _, arg := range t.Args {
			walkType(p, Invariant, arg)
		}

	case *types.Tuple:
		for _, el := range t.Elems {
			walkType(p, pol, el)
		}

	case *types.Arrow:
		walkType(p, pol.Flip(), t.Param)
		walkType(p, pol, t.Result)
		walkKind(p, pol, t.Kind)

	case *types.Borrow:
		walkType(p, pol, t.Inner)
		walkKind(p, pol, t.Kind)
	}
}

func walkKind(p *Polarities, pol Polarity, k kinds.Kind) {
	k = kinds.RealKind(k)
	if v, ok := k.(*kinds.Var); ok {
		addKind(p, v.Id(), pol)
	}
}

func addType(p *Polarities, id int, pol Polarity) {
	if existing, ok := p.Types[id]; ok {
		p.Types[id] = join(existing, pol)
	} else {
		p.Types[id] = pol
	}
}

func addKind(p *Polarities, id int, pol Polarity) {
	if existing, ok := p.Kinds[id]; ok {
		p.Kinds[id] = join(existing, pol)
	} else {
		p.Kinds[id] = pol
	}
}
