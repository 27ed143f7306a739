package multiplicity

import (
	"fmt"

	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/names"
)

// affNever is the upper bound imposed on a binder's kind by exit-binder:
// the binding itself must be at most affine (discardable) once 0 or 2+
// owned uses have been observed.
var affNever = kinds.Const{Qualifier: kinds.Aff, Region: names.Never}

// unNever is the upper bound imposed on a repeated Normal (owned) use of
// the same name by a sequential merge: the variable must be freely
// duplicable, but the constraint says nothing about which region it lives
// in, so the region component stays at the lattice top rather than being
// pinned to Global.
var unNever = kinds.Const{Qualifier: kinds.Un, Region: names.Never}

// UseMismatchError reports that two uses of the same variable, combined
// under a merge, are incompatible (spec.md §7 UseMismatch).
type UseMismatchError struct {
	Name string
	A, B Use
}

func (e *UseMismatchError) Error() string {
	return fmt.Sprintf("variable %q used inconsistently: %s then %s", e.Name, describeUse(e.A), describeUse(e.B))
}

func describeUse(u Use) string {
	switch u.Kind {
	case ShadowUse:
		return "shadowed"
	case BorrowUse:
		if u.Mode == Write {
			return "write-borrowed"
		}
		return "read-borrowed"
	default:
		return "owned"
	}
}

// SequentialMerge combines two multiplicity maps produced by sibling
// sub-expressions evaluated in program order (e.g. the function and
// argument of an App, or the two halves of a Let). Reusing a Normal-use
// variable is allowed only if every accumulated kind at its use-sites is
// Un Never; reusing a Read borrow concatenates its kind list; a Shadow
// entry on either side yields to the other side's use; any other repeated
// combination fails.
func SequentialMerge(a, b Map) (Map, []kinds.Ineq, error) {
	out := a
	var cs []kinds.Ineq
	var mergeErr error
	b.Range(func(name string, ub Use) bool {
		ua, ok := out.Get(name)
		if !ok {
			out = out.With(name, ub)
			return true
		}
		merged, extra, err := sequentialMergeUse(name, ua, ub)
		if err != nil {
			mergeErr = err
			return false
		}
		out = out.With(name, merged)
		cs = append(cs, extra...)
		return true
	})
	if mergeErr != nil {
		return Map{}, nil, mergeErr
	}
	return out, cs, nil
}

func sequentialMergeUse(name string, a, b Use) (Use, []kinds.Ineq, error) {
	switch {
	case a.Kind == ShadowUse:
		return b, nil, nil
	case b.Kind == ShadowUse:
		return a, nil, nil
	case a.Kind == BorrowUse && b.Kind == BorrowUse && a.Mode == Read && b.Mode == Read:
		return Use{Kind: BorrowUse, Mode: Read, Kinds: append(append([]kinds.Kind{}, a.Kinds...), b.Kinds...)}, nil, nil
	case a.Kind == NormalUse && b.Kind == NormalUse:
		combined := append(append([]kinds.Kind{}, a.Kinds...), b.Kinds...)
		cs := make([]kinds.Ineq, len(combined))
		for i, k := range combined {
			cs[i] = kinds.Ineq{Lower: k, Upper: unNever}
		}
		return Use{Kind: NormalUse, Kinds: combined}, cs, nil
	default:
		return Use{}, nil, &UseMismatchError{Name: name, A: a, B: b}
	}
}

// ParallelMerge combines two multiplicity maps produced by alternative
// branches (match arms) of which only one executes at runtime. Same-shape
// combinations concatenate their kind lists without emitting the Un-Never
// constraint that sequential reuse requires, since the two sites never
// coexist.
func ParallelMerge(a, b Map) (Map, error) {
	out := a
	var mergeErr error
	b.Range(func(name string, ub Use) bool {
		ua, ok := out.Get(name)
		if !ok {
			out = out.With(name, ub)
			return true
		}
		merged, err := parallelMergeUse(name, ua, ub)
		if err != nil {
			mergeErr = err
			return false
		}
		out = out.With(name, merged)
		return true
	})
	if mergeErr != nil {
		return Map{}, mergeErr
	}
	return out, nil
}

func parallelMergeUse(name string, a, b Use) (Use, error) {
	switch {
	case a.Kind == ShadowUse && b.Kind == ShadowUse:
		return Shadow, nil
	case a.Kind == BorrowUse && b.Kind == BorrowUse && a.Mode == b.Mode:
		return Use{Kind: BorrowUse, Mode: a.Mode, Kinds: append(append([]kinds.Kind{}, a.Kinds...), b.Kinds...)}, nil
	case a.Kind == NormalUse && b.Kind == NormalUse:
		return Use{Kind: NormalUse, Kinds: append(append([]kinds.Kind{}, a.Kinds...), b.Kinds...)}, nil
	default:
		return Use{}, &UseMismatchError{Name: name, A: a, B: b}
	}
}

// ExitBinder removes name from m, emitting the constraint that its kind
// be at most Aff Never when name has no recorded use or two or more
// Normal (owned) uses. Exactly one Normal use, or a Borrow or Shadow
// entry, imposes no constraint.
func ExitBinder(m Map, name string, k kinds.Kind) (Map, []kinds.Ineq) {
	u, ok := m.Get(name)
	out := m.Without(name)
	if !ok {
		return out, []kinds.Ineq{{Lower: k, Upper: affNever}}
	}
	if u.Kind != NormalUse || len(u.Kinds) <= 1 {
		return out, nil
	}
	return out, []kinds.Ineq{{Lower: k, Upper: affNever}}
}

// ExitScope downgrades every Borrow entry in m to Shadow. A later
// SequentialMerge lets a use of the same name replace the Shadow entry;
// a ParallelMerge accepts a Shadow entry only against another Shadow
// entry and fails with UseMismatch otherwise.
func ExitScope(m Map) Map {
	out := m
	m.Range(func(name string, u Use) bool {
		if u.Kind == BorrowUse {
			out = out.With(name, Shadow)
		}
		return true
	})
	return out
}

// ExitRegion removes the region-local variable names from m and returns
// the resulting map. Per spec.md §9's open question, no extra per-variable
// kind constraint is emitted here; escape of a region-local borrow is
// instead enforced by the Region construct's own "first_class" constraint
// on its overall result kind (see the root package's handling of the
// Region expression), not by a constraint attached to each exiting name.
func ExitRegion(m Map, regionVars []string) Map {
	out := m
	for _, n := range regionVars {
		out = out.Without(n)
	}
	return out
}

// ConstraintAll implements constraint_all: at arrow closure, every
// Normal-use kind recorded for a variable captured from an outer scope
// must be bounded by the arrow's own residual-use kind, so that capturing
// a linear value forces the arrow itself to be linear.
func ConstraintAll(m Map, arrowKind kinds.Kind) []kinds.Ineq {
	var cs []kinds.Ineq
	m.Range(func(_ string, u Use) bool {
		if u.Kind != NormalUse {
			return true
		}
		for _, k := range u.Kinds {
			cs = append(cs, kinds.Ineq{Lower: k, Upper: arrowKind})
		}
		return true
	})
	return cs
}
