package variance

import "github.com/affe-lang/affe/kinds"

// Simplify drops kind inequalities that carry no information for the
// given kind-variable polarities: a variable that occurs only covariantly
// (Positive) is informative to callers only through its upper bound (what
// it can be used as), so edges of the form X <= var are dropped; a
// purely-contravariant (Negative) variable keeps only its lower-bound
// edges var <= X and drops X <= var... in reverse, matching spec.md
// §4.5's "compressing purely upper-bounded positive-only or
// lower-bounded negative-only variables". Edges touching an Invariant
// variable, a constant, or a variable absent from pol are always kept.
func Simplify(cs []kinds.Ineq, pol KindVarPolarity) []kinds.Ineq {
	out := make([]kinds.Ineq, 0, len(cs))
	for _, c := range cs {
		if keepEdge(c, pol) {
			out = append(out, c)
		}
	}
	return out
}

func keepEdge(c kinds.Ineq, pol KindVarPolarity) bool {
	loPol, loIsVar := varPolarity(c.Lower, pol)
	hiPol, hiIsVar := varPolarity(c.Upper, pol)

	// A positive-only variable is kept on the upper side of an edge (it
	// bounds the variable from above, informative to a caller deciding
	// what the variable may be used as) but dropped as the lower side of
	// an edge where it would merely be bounded by something else below it.
	if loIsVar && loPol == Positive && !hiIsVar {
		return false
	}
	// Symmetric case: a negative-only variable is kept as the lower bound
	// of an edge (what it must accept) but dropped as the upper side.
	if hiIsVar && hiPol == Negative && !loIsVar {
		return false
	}
	return true
}

func varPolarity(k kinds.Kind, pol KindVarPolarity) (Polarity, bool) {
	v, ok := kinds.RealKind(k).(*kinds.Var)
	if !ok {
		return Invariant, false
	}
	p, ok := pol[v.Id()]
	if !ok {
		return Invariant, true
	}
	return p, true
}
