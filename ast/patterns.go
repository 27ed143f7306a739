package ast

// Pattern is the base for all binder-position patterns: Lambda parameters
// and Match arms.
type Pattern interface {
	PatternName() string
}

var (
	_ Pattern = (*PVar)(nil)
	_ Pattern = (*PTuple)(nil)
	_ Pattern = (*PWildcard)(nil)
)

// PVar binds the matched value to a single name.
type PVar struct {
	Name string
}

func (p *PVar) PatternName() string { return "PVar" }

// PTuple destructures a tuple, binding each element to a sub-pattern:
// `(a, b)`.
type PTuple struct {
	Elems []Pattern
}

func (p *PTuple) PatternName() string { return "PTuple" }

// PWildcard discards the matched value without binding it: `_`.
type PWildcard struct{}

func (p *PWildcard) PatternName() string { return "PWildcard" }

// Names returns every PVar name bound (recursively) by the pattern, in
// left-to-right order.
func Names(p Pattern) []string {
	var names []string
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch p := p.(type) {
		case *PVar:
			names = append(names, p.Name)
		case *PTuple:
			for _, e := range p.Elems {
				walk(e)
			}
		case *PWildcard:
		}
	}
	walk(p)
	return names
}
