// Package multiplicity tracks, per program variable, how its value has
// been consumed along an inference path: owned ("Normal") use, a Read or
// Write borrow, or "Shadow" once a borrow on it has exited scope.
package multiplicity

import (
	"github.com/affe-lang/affe/kinds"
	"github.com/benbjohnson/immutable"
)

// UseKind distinguishes the three shapes a variable's accumulated use can
// take.
type UseKind int

const (
	ShadowUse UseKind = iota
	BorrowUse
	NormalUse
)

// Use is a single variable's accumulated use-record: either Shadow, a
// Borrow(mode, kinds-at-each-site), or a Normal(kinds-at-each-site).
type Use struct {
	Kind  UseKind
	Mode  BorrowMode // meaningful only when Kind == BorrowUse
	Kinds []kinds.Kind
}

// BorrowMode mirrors types.BorrowMode without importing package types,
// keeping multiplicity's dependency surface limited to kinds and names.
type BorrowMode int

const (
	Read BorrowMode = iota
	Write
)

// Shadow is the use-record for a name whose borrow has exited scope.
var Shadow = Use{Kind: ShadowUse}

// NormalOf builds a fresh single-site Normal use-record.
func NormalOf(k kinds.Kind) Use { return Use{Kind: NormalUse, Kinds: []kinds.Kind{k}} }

// BorrowOf builds a fresh single-site Borrow use-record.
func BorrowOf(mode BorrowMode, k kinds.Kind) Use {
	return Use{Kind: BorrowUse, Mode: mode, Kinds: []kinds.Kind{k}}
}

// Map is a finite mapping from variable name to Use, backed by a
// persistent sorted map so that speculative branches (match arms) can
// fork and merge without mutating a shared structure.
type Map struct {
	m *immutable.SortedMap
}

var emptyMap = immutable.NewSortedMap(nil)

// Empty is the multiplicity map with no tracked variables.
var Empty = Map{emptyMap}

// Get returns the recorded use of name, and whether it is tracked at all.
func (m Map) Get(name string) (Use, bool) {
	if m.m == nil {
		return Use{}, false
	}
	v, ok := m.m.Get(name)
	if !ok {
		return Use{}, false
	}
	return v.(Use), true
}

// With returns a new Map with name bound to u, leaving m unmodified.
func (m Map) With(name string, u Use) Map {
	base := m.m
	if base == nil {
		base = emptyMap
	}
	return Map{base.Set(name, u)}
}

// Without returns a new Map with name removed, leaving m unmodified.
func (m Map) Without(name string) Map {
	if m.m == nil {
		return m
	}
	return Map{m.m.Delete(name)}
}

// Range iterates the map in key order. If f returns false, iteration
// stops early.
func (m Map) Range(f func(name string, u Use) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(Use)) {
			return
		}
	}
}

// Len reports the number of tracked variables.
func (m Map) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}
