package types

import "github.com/affe-lang/affe/kinds"

// Scheme is a generalised type signature: a set of quantified type- and
// kind-variables, the residual kind-constraint left over from
// generalisation, and the body type expressed in terms
// of the quantified variables.
//
// A monomorphic binding (one that failed the value-restriction check, or
// was never let-bound at all) is represented as a Scheme with no TyVars,
// no KVars, and an empty Constraint: Instantiate on such a scheme is a
// no-op copy of Body.
type Scheme struct {
	KVars      []*kinds.GenericVar
	TyVars     []*GenericVar
	Constraint []kinds.Ineq
	Body       Type
}

// Monomorphic wraps a type with no generalised variables, for bindings
// that the value restriction disqualifies from polymorphism.
func Monomorphic(t Type) *Scheme { return &Scheme{Body: t} }

// IsMonomorphic reports whether instantiating the scheme would be a no-op.
func (s *Scheme) IsMonomorphic() bool {
	return len(s.KVars) == 0 && len(s.TyVars) == 0
}

// Instantiate produces a fresh copy of the scheme's body, replacing every
// quantified type- and kind-variable with a fresh Var at the given level,
// along with the instantiated residual constraint. newKindVar and newTyVar
// are supplied by the caller so that id allocation stays centralized in the
// surrounding inference context.
func (s *Scheme) Instantiate(level int, newKindVar func() *kinds.Var, newTyVar func(k kinds.Kind) *Var) (Type, []kinds.Ineq) {
	if s.IsMonomorphic() {
		return s.Body, nil
	}
	ksub := make(map[int32]*kinds.Var, len(s.KVars))
	for _, kv := range s.KVars {
		ksub[int32(kv.Id())] = newKindVar()
	}
	substK := func(k kinds.Kind) kinds.Kind { return substituteGenericKind(k, ksub) }

	tsub := make(map[int32]*Var, len(s.TyVars))
	for _, tv := range s.TyVars {
		tsub[int32(tv.Id())] = newTyVar(substK(tv.Kind()))
	}

	body := substituteGenericType(s.Body, tsub, ksub)
	constraint := make([]kinds.Ineq, len(s.Constraint))
	for i, c := range s.Constraint {
		constraint[i] = kinds.Ineq{Lower: substK(c.Lower), Upper: substK(c.Upper)}
	}
	return body, constraint
}

func substituteGenericKind(k kinds.Kind, sub map[int32]*kinds.Var) kinds.Kind {
	if gv, ok := kinds.RealKind(k).(*kinds.GenericVar); ok {
		if v, ok := sub[int32(gv.Id())]; ok {
			return v
		}
	}
	return k
}

func substituteGenericType(t Type, tsub map[int32]*Var, ksub map[int32]*kinds.Var) Type {
	if !t.IsGeneric() {
		return t
	}
	switch t := t.(type) {
	case *GenericVar:
		if v, ok := tsub[int32(t.Id())]; ok {
			return v
		}
		return t
	case *App:
		args := make([]Type, len(t.Args))
		hasGeneric := false
		for i, a := range t.Args {
			args[i] = substituteGenericType(a, tsub, ksub)
			if args[i].IsGeneric() {
				hasGeneric = true
			}
		}
		out := &App{Const: t.Const, Args: args}
		SetHasGenericVars(out, hasGeneric)
		return out
	case *Tuple:
		elems := make([]Type, len(t.Elems))
		hasGeneric := false
		for i, el := range t.Elems {
			elems[i] = substituteGenericType(el, tsub, ksub)
			if elems[i].IsGeneric() {
				hasGeneric = true
			}
		}
		out := &Tuple{Elems: elems}
		SetHasGenericVars(out, hasGeneric)
		return out
	case *Arrow:
		param := substituteGenericType(t.Param, tsub, ksub)
		result := substituteGenericType(t.Result, tsub, ksub)
		k := substituteGenericKind(t.Kind, ksub)
		out := &Arrow{Param: param, Kind: k, Result: result}
		SetHasGenericVars(out, param.IsGeneric() || result.IsGeneric())
		return out
	case *Borrow:
		inner := substituteGenericType(t.Inner, tsub, ksub)
		k := substituteGenericKind(t.Kind, ksub)
		out := &Borrow{Mode: t.Mode, Kind: k, Inner: inner}
		SetHasGenericVars(out, inner.IsGeneric())
		return out
	default:
		return t
	}
}
