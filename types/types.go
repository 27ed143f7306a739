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

// Package types implements Affe's type representations: mutable,
// level-indexed unification cells plus the closed algebraic shapes they
// eventually resolve to (App, Tuple, Arrow, Borrow).
package types

import (
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/names"
)

// Type is the base interface for all type representations.
type Type interface {
	TypeName() string
	// IsGeneric reports whether t (after following Link chains) contains
	// any quantified variables.
	IsGeneric() bool
}

func (t *GenericVar) TypeName() string { return "GenericVar" }
func (t *Var) TypeName() string        { return "Var" }
func (t *App) TypeName() string        { return "App" }
func (t *Tuple) TypeName() string      { return "Tuple" }
func (t *Arrow) TypeName() string      { return "Arrow" }
func (t *Borrow) TypeName() string     { return "Borrow" }

func (t *GenericVar) IsGeneric() bool { return true }
func (t *Var) IsGeneric() bool {
	if t.IsLinkVar() {
		return t.Link().IsGeneric()
	}
	return false
}
func (t *App) IsGeneric() bool        { return t.hasGenericVars }
func (t *Tuple) IsGeneric() bool      { return t.hasGenericVars }
func (t *Arrow) IsGeneric() bool      { return t.hasGenericVars }
func (t *Borrow) IsGeneric() bool     { return t.hasGenericVars }

// BorrowMode distinguishes a shared (Read) borrow from an exclusive
// (Write) borrow.
type BorrowMode int

const (
	Read BorrowMode = iota
	Write
)

func (b BorrowMode) String() string {
	if b == Write {
		return "write"
	}
	return "read"
}

// App is a named type-constructor applied to arguments: `List(int)`. A
// nullary constructor such as `int` or `bool` is an App with no Args.
type App struct {
	Const          names.Name
	Args           []Type
	hasGenericVars bool
}

// Tuple is a fixed-size product type: `(int, bool)`.
type Tuple struct {
	Elems          []Type
	hasGenericVars bool
}

// Arrow is a function type `τ1 -k-> τ2`, where Kind is the arrow's own
// residual-use kind: the usage bound a closure of this type must satisfy
// once any linear values it captures are folded in via constraint_all.
type Arrow struct {
	Param          Type
	Kind           kinds.Kind
	Result         Type
	hasGenericVars bool
}

// Borrow is a non-owning reference `&τ` (Read) or `&!τ` (Write), tagged
// with the usage-kind of the borrow itself, which pins down the region it
// may be used within.
type Borrow struct {
	Mode           BorrowMode
	Kind           kinds.Kind
	Inner          Type
	hasGenericVars bool
}

// RealType follows a chain of linked type-variables to the underlying
// type. Non-Var types, and unlinked Vars, are returned unchanged.
func RealType(t Type) Type {
	for {
		tv, ok := t.(*Var)
		if !ok || !tv.IsLinkVar() {
			return t
		}
		t = tv.Link()
	}
}

// SetHasGenericVars caches whether t's immediate children contain a
// generic variable, computed by the generaliser once it finishes
// rewriting them, so IsGeneric never has to walk a compound type's
// children more than once.
func SetHasGenericVars(t Type, v bool) {
	switch t := t.(type) {
	case *App:
		t.hasGenericVars = v
	case *Tuple:
		t.hasGenericVars = v
	case *Arrow:
		t.hasGenericVars = v
	case *Borrow:
		t.hasGenericVars = v
	}
}
