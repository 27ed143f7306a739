// Package kinds implements Affe's usage-kind lattice: a three-element chain
// Un < Aff < Lin crossed with the region poset from package names.
//
// A "kind" in Affe is a usage qualifier, not a higher-order type kind: it
// describes how many times, and from which region, a value may be consumed.
package kinds

import (
	"fmt"

	"github.com/affe-lang/affe/names"
)

// Qualifier is a position in the Un < Aff < Lin chain.
type Qualifier int8

const (
	Un Qualifier = iota
	Aff
	Lin
)

func (q Qualifier) String() string {
	switch q {
	case Un:
		return "Un"
	case Aff:
		return "Aff"
	case Lin:
		return "Lin"
	default:
		return "Qualifier(?)"
	}
}

// leq reports whether q is no more restrictive than other.
func (q Qualifier) leq(other Qualifier) bool { return q <= other }

// Kind is the base interface for usage-kinds: either a lattice Const or an
// indirected Var cell.
type Kind interface {
	KindName() string
	// IsGeneric reports whether this kind (after following Link chains) is
	// a quantified GenericVar.
	IsGeneric() bool
}

var (
	_ Kind = Const{}
	_ Kind = (*Var)(nil)
	_ Kind = (*GenericVar)(nil)
)

// Const is a concrete lattice element: one of Un/Aff/Lin at some region.
type Const struct {
	Qualifier Qualifier
	Region    names.Region
}

func (Const) KindName() string  { return "Const" }
func (Const) IsGeneric() bool   { return false }
func (c Const) String() string  { return fmt.Sprintf("%s %s", c.Qualifier, c.Region) }
func (a Const) Equal(b Const) bool {
	return a.Qualifier == b.Qualifier && names.Equal(a.Region, b.Region)
}

// UnGlobal is the unique bottom element of the lattice.
var UnGlobal = Const{Qualifier: Un, Region: names.Global}

// LinNever is the unique top element of the lattice.
var LinNever = Const{Qualifier: Lin, Region: names.Never}

// Leq reports whether a <= b in the product order: qualifiers compare on
// the Un<Aff<Lin chain, regions compare in the region lattice, and both
// components must hold. Un Global is bottom and Lin Never is top because
// both components are simultaneously minimal (resp. maximal).
func Leq(a, b Const) bool {
	return a.Qualifier.leq(b.Qualifier) && names.Compare(a.Region, b.Region) <= 0
}

// Lub returns the least upper bound of a and b in the product lattice.
func Lub(a, b Const) Const {
	q := a.Qualifier
	if b.Qualifier > q {
		q = b.Qualifier
	}
	return Const{Qualifier: q, Region: names.Max(a.Region, b.Region)}
}

// Glb returns the greatest lower bound of a and b in the product lattice.
func Glb(a, b Const) Const {
	q := a.Qualifier
	if b.Qualifier < q {
		q = b.Qualifier
	}
	return Const{Qualifier: q, Region: names.Min(a.Region, b.Region)}
}

// RealKind follows a chain of Link cells to the underlying (non-linked)
// kind. GenericVar and unlinked Var/Const values are returned unchanged.
func RealKind(k Kind) Kind {
	for {
		v, ok := k.(*Var)
		if !ok || !v.IsLinkVar() {
			return k
		}
		k = v.Link()
	}
}
