// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package affe

import (
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/multiplicity"
	"github.com/affe-lang/affe/names"
	"github.com/affe-lang/affe/types"
)

// TopLevel is the binding level of the outermost scope. Variables created
// at TopLevel are never generalised directly; a declaration is inferred one
// level deeper (TopLevel+1) so that every variable it introduces starts out
// eligible for generalisation once the declaration's scope closes.
const TopLevel = 0

// Context is a reusable context for type inference: it centralizes the
// fresh-id counters for type- and kind-variables, the current binding
// level, and the region allocator, so that a single call to InferTop can
// freely create variables, enter nested scopes, and unwind again.
//
// A Context cannot be used concurrently.
type Context struct {
	nextTyVarId   int
	nextKindVarId int
	level         int

	regions *names.Allocator

	namer     *names.Namer
	typeNames map[string]names.Name

	// pending is the set of kind inequalities accumulated since the last
	// call to normalize, waiting to be folded into the kind solver.
	pending []kinds.Ineq
}

// NewContext creates an inference context. A context may be reused across
// multiple calls to InferTop, MakeTypeDecl, and MakeTypeScheme.
func NewContext() *Context {
	return &Context{
		level:     TopLevel,
		regions:   names.NewAllocator(),
		namer:     names.NewNamer(),
		typeNames: make(map[string]names.Name),
	}
}

// TypeName interns label as a type-constructor identifier, returning the
// same Name value on every call for a given label so that every App built
// against that constructor compares equal by tag.
func (c *Context) TypeName(label string) names.Name {
	if n, ok := c.typeNames[label]; ok {
		return n
	}
	n := c.namer.Fresh(label)
	c.typeNames[label] = n
	return n
}

func (c *Context) freshTyVarId() int {
	id := c.nextTyVarId
	c.nextTyVarId++
	return id
}

func (c *Context) freshKindVarId() int {
	id := c.nextKindVarId
	c.nextKindVarId++
	return id
}

// NewKindVar creates a fresh, unbound kind-variable at the context's
// current level.
func (c *Context) NewKindVar() *kinds.Var { return kinds.NewVar(c.freshKindVarId(), c.level) }

// NewTypeVar creates a fresh, unbound type-variable at the context's
// current level, paired with a fresh kind-variable of its own.
func (c *Context) NewTypeVar() *types.Var {
	return types.NewVar(c.freshTyVarId(), c.level, c.NewKindVar())
}

// NewTypeVarWithKind creates a fresh, unbound type-variable at the
// context's current level with an already-known companion kind.
func (c *Context) NewTypeVarWithKind(k kinds.Kind) *types.Var {
	return types.NewVar(c.freshTyVarId(), c.level, k)
}

// EnterScope increases the binding level, so that any variable created
// before the matching ExitScope will not be generalised by a nested
// declaration.
func (c *Context) EnterScope() { c.level++ }

// ExitScope decreases the binding level.
func (c *Context) ExitScope() { c.level-- }

// Level returns the context's current binding level.
func (c *Context) Level() int { return c.level }

// EnterRegion allocates a fresh lexical region, strictly greater than every
// region allocated so far and strictly less than names.Never.
func (c *Context) EnterRegion() names.Region { return c.regions.NewRegion() }

// AddConstraint queues a kind inequality to be folded into the kind solver
// at the next call to Normalize.
func (c *Context) AddConstraint(cs ...kinds.Ineq) { c.pending = append(c.pending, cs...) }

// Normalize solves every kind inequality queued since the last call,
// folding them into the kind-constraint graph (spec.md §4.1) and reporting
// infeasibility as an error. The residue becomes the new pending set, so
// repeated calls across a declaration's inference keep the graph compact
// without losing information about any variable still mentioned in it.
func (c *Context) Normalize() ([]kinds.Ineq, error) {
	if len(c.pending) == 0 {
		return nil, nil
	}
	keep := make(map[int]bool)
	for _, leq := range c.pending {
		if v, ok := kinds.RealKind(leq.Lower).(*kinds.Var); ok {
			keep[v.Id()] = true
		}
		if v, ok := kinds.RealKind(leq.Upper).(*kinds.Var); ok {
			keep[v.Id()] = true
		}
	}
	out, err := kinds.Solve(c.pending, keep)
	if err != nil {
		return nil, err
	}
	c.pending = out
	return out, nil
}

// mergeSequential folds b's multiplicity usage after a's, queuing the
// resulting kind inequalities as pending constraints.
func (c *Context) mergeSequential(a, b multiplicity.Map) (multiplicity.Map, error) {
	merged, cs, err := multiplicity.SequentialMerge(a, b)
	if err != nil {
		return merged, err
	}
	c.AddConstraint(cs...)
	return merged, nil
}

// mergeParallel folds the multiplicity usage of two independent branches of
// control flow (the arms of a match).
func (c *Context) mergeParallel(a, b multiplicity.Map) (multiplicity.Map, error) {
	return multiplicity.ParallelMerge(a, b)
}

// exitBinder discharges a binder's multiplicity use when its scope closes,
// queuing the resulting constraint (if any) as pending.
func (c *Context) exitBinder(m multiplicity.Map, name string, k kinds.Kind) multiplicity.Map {
	out, cs := multiplicity.ExitBinder(m, name, k)
	c.AddConstraint(cs...)
	return out
}
