package kinds

// Ineq is a single lattice inequality between two kinds: Lower <= Upper.
type Ineq struct {
	Lower Kind
	Upper Kind
}

// Scheme is a closed, re-instantiable kind signature for a type
// constructor: a set of quantified kind-variables, a constraint over them,
// and the argument/result kinds expressed in terms of those variables.
//
// A type variable's own kind is represented as the degenerate case of a
// Scheme with no ArgKinds: its Result is the variable's kind, quantified
// the same way a constructor's result kind would be.
type Scheme struct {
	KVars      []*GenericVar
	Constraint []Ineq
	ArgKinds   []Kind
	Result     Kind
}

// Closed returns a Scheme with no free kind-variables: a bare constant or
// already-quantified kind used directly as a 0-ary constructor kind.
func Closed(k Kind) *Scheme { return &Scheme{Result: k} }

// Instantiate produces a fresh copy of the scheme's argument/result kinds
// and constraint, replacing every quantified variable with a fresh Var at
// the given level. newVar is supplied by the caller so that id allocation
// stays centralized in the surrounding inference context.
func (s *Scheme) Instantiate(level int, newVar func() *Var) ([]Kind, Kind, []Ineq) {
	if len(s.KVars) == 0 {
		return s.ArgKinds, s.Result, s.Constraint
	}
	sub := make(map[int32]*Var, len(s.KVars))
	for _, kv := range s.KVars {
		sub[kv.id] = newVar()
	}
	subst := func(k Kind) Kind { return substituteGeneric(k, sub) }

	args := make([]Kind, len(s.ArgKinds))
	for i, a := range s.ArgKinds {
		args[i] = subst(a)
	}
	result := subst(s.Result)
	constraint := make([]Ineq, len(s.Constraint))
	for i, c := range s.Constraint {
		constraint[i] = Ineq{Lower: subst(c.Lower), Upper: subst(c.Upper)}
	}
	return args, result, constraint
}

func substituteGeneric(k Kind, sub map[int32]*Var) Kind {
	switch k := k.(type) {
	case *GenericVar:
		if v, ok := sub[k.id]; ok {
			return v
		}
		return k
	default:
		return k
	}
}
