// Package names provides interned program identifiers.
//
// A Name pairs a printable label with a globally unique tag; equality between
// two names is tag-based, so two bindings which happen to share a label (for
// example after shadowing) are never confused with one another.
package names

// Name is an interned identifier produced by a Namer.
type Name struct {
	Label string
	tag   int64
}

// Tag returns the unique tag assigned to n when it was created.
func (n Name) Tag() int64 { return n.tag }

// Equal reports whether a and b were produced by the same Fresh call.
func (a Name) Equal(b Name) bool { return a.tag == b.tag }

// String returns the printable label of n. Two distinct names may print
// identically; use Equal (not ==) to compare identifiers.
func (n Name) String() string { return n.Label }

// Namer allocates fresh, globally-unique Names.
//
// A Namer is not safe for concurrent use; callers needing concurrent fresh
// identifiers should shard allocation across per-goroutine Namers drawing
// from disjoint ranges, or serialize access externally.
type Namer struct {
	next int64
}

// NewNamer creates a Namer whose first allocated tag is 1 (tag 0 is
// reserved, so the zero value of Name is never mistaken for a real binding).
func NewNamer() *Namer { return &Namer{next: 1} }

// Fresh allocates a new Name with the given printable label.
func (nm *Namer) Fresh(label string) Name {
	tag := nm.next
	nm.next++
	return Name{Label: label, tag: tag}
}
