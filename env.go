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
	"github.com/affe-lang/affe/types"
)

// Env is a type-environment: mappings from value identifiers to type
// schemes, from type-constructor names to kind schemes, and from data
// constructor names to the type schemes of their constructor functions.
//
// An environment cannot be used concurrently for inference; to share an
// environment across goroutines, create a new environment per goroutine
// which inherits from the shared one.
type Env struct {
	Parent *Env

	Values       map[string]*types.Scheme
	TypeKinds    map[string]*kinds.Scheme
	Constructors map[string]*types.Scheme
}

// NewEnv creates an environment inheriting bindings from parent, if parent
// is not nil.
func NewEnv(parent *Env) *Env {
	return &Env{
		Parent:       parent,
		Values:       make(map[string]*types.Scheme),
		TypeKinds:    make(map[string]*kinds.Scheme),
		Constructors: make(map[string]*types.Scheme),
	}
}

// DeclareValue binds name to a type scheme in the current environment.
func (e *Env) DeclareValue(name string, s *types.Scheme) { e.Values[name] = s }

// DeclareType binds a type-constructor name to a kind scheme in the current
// environment.
func (e *Env) DeclareType(name string, s *kinds.Scheme) { e.TypeKinds[name] = s }

// DeclareConstructor binds a data-constructor name to the type scheme of
// its constructor function in the current environment.
func (e *Env) DeclareConstructor(name string, s *types.Scheme) { e.Constructors[name] = s }

// RemoveValue removes name's binding from the current environment. Parent
// environment(s) are unaffected; the binding remains visible if declared in
// a parent.
func (e *Env) RemoveValue(name string) { delete(e.Values, name) }

// LookupValue finds the type scheme for a value identifier in the
// environment or its parent environment(s).
func (e *Env) LookupValue(name string) (*types.Scheme, error) {
	if s, ok := e.Values[name]; ok {
		return s, nil
	}
	if e.Parent == nil {
		return nil, &UnknownNameError{Name: name}
	}
	return e.Parent.LookupValue(name)
}

// LookupType finds the kind scheme for a type constructor in the
// environment or its parent environment(s).
func (e *Env) LookupType(name string) (*kinds.Scheme, error) {
	if s, ok := e.TypeKinds[name]; ok {
		return s, nil
	}
	if e.Parent == nil {
		return nil, &UnknownTypeError{Name: name}
	}
	return e.Parent.LookupType(name)
}

// LookupConstructor finds the type scheme for a data constructor in the
// environment or its parent environment(s).
func (e *Env) LookupConstructor(name string) (*types.Scheme, error) {
	if s, ok := e.Constructors[name]; ok {
		return s, nil
	}
	if e.Parent == nil {
		return nil, &UnknownNameError{Name: name}
	}
	return e.Parent.LookupConstructor(name)
}

// Filter returns a new environment containing only the value bindings for
// which keep returns true, preserving the parent chain, without mutating
// the receiver.
func (e *Env) Filter(keep func(name string) bool) *Env {
	out := NewEnv(e.Parent)
	out.TypeKinds = e.TypeKinds
	out.Constructors = e.Constructors
	for name, s := range e.Values {
		if keep(name) {
			out.Values[name] = s
		}
	}
	return out
}
