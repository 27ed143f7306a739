package kinds

import (
	"fmt"

	"github.com/affe-lang/affe/internal/util"
)

// IllegalBoundsError reports that a kind-variable's feasible window is
// empty: its lower bound exceeds its upper bound.
type IllegalBoundsError struct {
	Lower Const
	Var   *Var
	Upper Const
}

func (e *IllegalBoundsError) Error() string {
	return fmt.Sprintf("kind variable %%%d has infeasible bounds: %s > %s", e.Var.Id(), e.Lower, e.Upper)
}

// IllegalEdgeError reports a direct constant-to-constant inequality that
// violates the lattice order.
type IllegalEdgeError struct {
	Lower Const
	Upper Const
}

func (e *IllegalEdgeError) Error() string {
	return fmt.Sprintf("illegal kind constraint: %s is not <= %s", e.Lower, e.Upper)
}

// node identifies either a kind-variable or a lattice constant within the
// solver's working graph.
type node struct {
	isConst bool
	varId   int32
	konst   Const
}

// solverGraph holds the bookkeeping needed to canonicalise a set of
// Ineq inequalities: a node index per distinct variable/constant, and the
// directed graph of inequalities between them.
type solverGraph struct {
	nodes   []node
	varIdx  map[int32]int
	constIx map[Const]int
	vars    map[int32]*Var
	g       util.Graph
}

func newSolverGraph() *solverGraph {
	return &solverGraph{varIdx: make(map[int32]int), constIx: make(map[Const]int), vars: make(map[int32]*Var)}
}

func (sg *solverGraph) varNode(v *Var) int {
	if i, ok := sg.varIdx[int32(v.Id())]; ok {
		return i
	}
	i := len(sg.nodes)
	sg.nodes = append(sg.nodes, node{varId: int32(v.Id())})
	sg.varIdx[int32(v.Id())] = i
	sg.vars[int32(v.Id())] = v
	return i
}

func (sg *solverGraph) constNode(c Const) int {
	if i, ok := sg.constIx[c]; ok {
		return i
	}
	i := len(sg.nodes)
	sg.nodes = append(sg.nodes, node{isConst: true, konst: c})
	sg.constIx[c] = i
	return i
}

// classify resolves an Ineq endpoint (after following Link chains) into
// either a variable node or a constant node.
func (sg *solverGraph) classify(k Kind) (idx int, err error) {
	k = RealKind(k)
	switch k := k.(type) {
	case *Var:
		return sg.varNode(k), nil
	case Const:
		return sg.constNode(k), nil
	case *GenericVar:
		return 0, fmt.Errorf("kinds: generic kind variable %%%d was not instantiated before solving", k.Id())
	default:
		return 0, fmt.Errorf("kinds: unexpected kind %s", k.KindName())
	}
}

// Solve canonicalises a set of kind inequalities:
//
//  1. Shorten every kind through Link chains (done while classifying).
//  2. Classify each endpoint as a Var node or a Const node.
//  3. Build a directed graph of the inequalities.
//  4. Compute, for each variable, its constant lower/upper bounds and
//     check the resulting window is feasible.
//  5. Validate every direct constant-to-constant edge against the lattice.
//  6. Keep only the inequalities needed to preserve information about the
//     variables in keep (and about constants), dropping the rest.
//
// keep names the kind-variable ids whose bounds must remain directly
// observable in the result (typically the free variables of the type/
// scheme being generalised, plus those already visible in the environment).
func Solve(constraints []Ineq, keep map[int]bool) ([]Ineq, error) {
	sg := newSolverGraph()
	sg.g = util.NewGraph(0)
	type edge struct{ from, to int }
	var edges []edge

	for _, c := range constraints {
		lo, err := sg.classify(c.Lower)
		if err != nil {
			return nil, err
		}
		hi, err := sg.classify(c.Upper)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge{lo, hi})
	}

	g := util.NewGraph(len(sg.nodes))
	for _, e := range edges {
		g.AddEdge(e.from, e.to)
	}
	gt := g.Transpose()

	// Step 5: direct constant -> constant edges must respect the lattice.
	for _, e := range edges {
		a, b := sg.nodes[e.from], sg.nodes[e.to]
		if a.isConst && b.isConst && !Leq(a.konst, b.konst) {
			return nil, &IllegalEdgeError{Lower: a.konst, Upper: b.konst}
		}
	}

	// Step 4: for every variable node, find the constants reachable
	// forward (its upper bounds) and backward (its lower bounds), then
	// check the window lub(lowers) <= glb(uppers).
	reachConsts := func(from int, fwd util.Graph) []Const {
		visited := make([]bool, len(sg.nodes))
		var consts []Const
		var stack []int
		for _, succ := range fwd[from] {
			stack = append(stack, succ)
		}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[v] {
				continue
			}
			visited[v] = true
			if sg.nodes[v].isConst {
				consts = append(consts, sg.nodes[v].konst)
				continue // constants don't forward past themselves for this purpose
			}
			for _, succ := range fwd[v] {
				if !visited[succ] {
					stack = append(stack, succ)
				}
			}
		}
		return consts
	}

	for id, i := range sg.varIdx {
		upperConsts := reachConsts(i, g)
		lowerConsts := reachConsts(i, gt)
		if len(upperConsts) == 0 && len(lowerConsts) == 0 {
			continue
		}
		upper := LinNever
		for j, c := range upperConsts {
			if j == 0 {
				upper = c
			} else {
				upper = Glb(upper, c)
			}
		}
		lower := UnGlobal
		for j, c := range lowerConsts {
			if j == 0 {
				lower = c
			} else {
				lower = Lub(lower, c)
			}
		}
		if len(upperConsts) == 0 {
			upper = LinNever
		}
		if len(lowerConsts) == 0 {
			lower = UnGlobal
		}
		if !Leq(lower, upper) {
			return nil, &IllegalBoundsError{Lower: lower, Var: sg.vars[id], Upper: upper}
		}
	}

	// Step 6: keep edges between two kept variables, edges touching a
	// constant and a kept variable, and (conservatively) any edge whose
	// removal would disconnect a kept variable from a constant it needs
	// for its window. We approximate the "non-trivial path" clause by
	// keeping every edge incident to a kept variable or a constant, and
	// dropping edges that run strictly between two eliminable variables
	// with no kept/constant endpoint.
	seen := make(map[[2]int]bool)
	var out []Ineq
	for _, e := range edges {
		a, b := sg.nodes[e.from], sg.nodes[e.to]
		aKeep := a.isConst || keep[int(a.varId)]
		bKeep := b.isConst || keep[int(b.varId)]
		if !aKeep && !bKeep {
			continue
		}
		key := [2]int{e.from, e.to}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, Ineq{Lower: nodeKind(sg, a), Upper: nodeKind(sg, b)})
	}
	return out, nil
}

func nodeKind(sg *solverGraph, n node) Kind {
	if n.isConst {
		return n.konst
	}
	return sg.vars[n.varId]
}
