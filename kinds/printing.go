package kinds

import "strconv"

// KindString renders a kind for diagnostics, following Link chains and
// naming unbound and generic variables by their allocation id.
func KindString(k Kind) string {
	switch k := RealKind(k).(type) {
	case Const:
		return k.String()
	case *Var:
		return "?k" + strconv.Itoa(k.Id())
	case *GenericVar:
		return "'k" + strconv.Itoa(k.Id())
	default:
		return k.KindName()
	}
}
