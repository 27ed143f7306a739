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

// Package ast defines the surface expression tree consumed by the
// inference driver. Nodes carry a private inferred-type slot, set only
// through SetType during inference, following the renamed-AST convention
// of leaving source positions and name resolution to the harness layer.
package ast

import (
	"github.com/affe-lang/affe/types"
)

// Expr is the base for all expressions.
type Expr interface {
	// ExprName names the syntax-type of the expression.
	ExprName() string
	// Type returns the inferred type of the expression. Only meaningful
	// after inference has visited this node.
	Type() types.Type
}

var (
	_ Expr = (*Const)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Borrow)(nil)
	_ Expr = (*ReBorrow)(nil)
	_ Expr = (*Lambda)(nil)
	_ Expr = (*App)(nil)
	_ Expr = (*TupleExpr)(nil)
	_ Expr = (*ArrayExpr)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*Region)(nil)
)

// Const is a semi-opaque literal or built-in constant. Syntax is printed
// verbatim; Name is looked up in the environment to find the constant's
// scheme.
type Const struct {
	Syntax   string
	Name     string
	inferred types.Type
}

func (e *Const) ExprName() string      { return "Const" }
func (e *Const) Type() types.Type      { return types.RealType(e.inferred) }
func (e *Const) SetType(t types.Type)  { e.inferred = t }

// Var is a bound-variable reference: `x`.
type Var struct {
	Name     string
	inferred types.Type
}

func (e *Var) ExprName() string     { return "Var" }
func (e *Var) Type() types.Type     { return types.RealType(e.inferred) }
func (e *Var) SetType(t types.Type) { e.inferred = t }

// BorrowMode mirrors types.BorrowMode at the surface-syntax level.
type BorrowMode = types.BorrowMode

const (
	Read  = types.Read
	Write = types.Write
)

// Borrow takes a non-owning reference to a bound variable: `&x` (Read) or
// `&!x` (Write).
type Borrow struct {
	Mode     BorrowMode
	Name     string
	inferred types.Type
}

func (e *Borrow) ExprName() string     { return "Borrow" }
func (e *Borrow) Type() types.Type     { return types.RealType(e.inferred) }
func (e *Borrow) SetType(t types.Type) { e.inferred = t }

// ReBorrow re-derives a borrow from an existing Write borrow in scope:
// `&*x` (Read) or `&!*x` (Write), requiring x's current type to already be
// `Borrow(Write, _, τ)`.
type ReBorrow struct {
	Mode     BorrowMode
	Name     string
	inferred types.Type
}

func (e *ReBorrow) ExprName() string     { return "ReBorrow" }
func (e *ReBorrow) Type() types.Type     { return types.RealType(e.inferred) }
func (e *ReBorrow) SetType(t types.Type) { e.inferred = t }

// Lambda is a single-argument abstraction: `fun p -> body`. Multi-argument
// functions are curried by nesting Lambdas.
type Lambda struct {
	Param    Pattern
	Body     Expr
	inferred *types.Arrow
}

func (e *Lambda) ExprName() string          { return "Lambda" }
func (e *Lambda) Type() types.Type          { return types.RealType(e.inferred) }
func (e *Lambda) SetType(t *types.Arrow)    { e.inferred = t }
func (e *Lambda) ArrowType() *types.Arrow   { return e.inferred }

// App is function application: `f a`. A curried multi-argument call is
// represented as nested Apps, matching Lambda's currying.
type App struct {
	Func         Expr
	Arg          Expr
	inferred     types.Type
	inferredFunc *types.Arrow
}

func (e *App) ExprName() string             { return "App" }
func (e *App) Type() types.Type             { return types.RealType(e.inferred) }
func (e *App) SetType(t types.Type)         { e.inferred = t }
func (e *App) FuncType() *types.Arrow       { return e.inferredFunc }
func (e *App) SetFuncType(t *types.Arrow)   { e.inferredFunc = t }

// TupleExpr constructs a fixed-size tuple: `(a, b, c)`.
type TupleExpr struct {
	Elems    []Expr
	inferred *types.Tuple
}

func (e *TupleExpr) ExprName() string       { return "Tuple" }
func (e *TupleExpr) Type() types.Type       { return types.RealType(e.inferred) }
func (e *TupleExpr) SetType(t *types.Tuple) { e.inferred = t }

// ArrayExpr constructs a homogeneous array literal: `[a, b, c]`. An empty
// array is non-expansive for the value restriction; a non-empty one is
// always expansive.
type ArrayExpr struct {
	Elems    []Expr
	inferred types.Type
}

func (e *ArrayExpr) ExprName() string     { return "Array" }
func (e *ArrayExpr) Type() types.Type     { return types.RealType(e.inferred) }
func (e *ArrayExpr) SetType(t types.Type) { e.inferred = t }

// Let is a (possibly recursive) let-binding: `let p = value in body` or
// `let rec n = value in body`. Rec requires Pattern to be a PVar.
type Let struct {
	Rec     bool
	Pattern Pattern
	Value   Expr
	Body    Expr
}

func (e *Let) ExprName() string { return "Let" }
func (e *Let) Type() types.Type { return e.Body.Type() }

// MatchModifier optionally wraps a match arm's pattern type in a borrow,
// for `match &x { ... }` / `match &!x { ... }` scrutinees.
type MatchModifier struct {
	Borrowed bool
	Mode     BorrowMode
}

// Match pattern-matches a scrutinee against a sequence of arms.
type Match struct {
	Modifier MatchModifier
	Value    Expr
	Arms     []MatchArm
	inferred types.Type
}

func (e *Match) ExprName() string     { return "Match" }
func (e *Match) Type() types.Type     { return types.RealType(e.inferred) }
func (e *Match) SetType(t types.Type) { e.inferred = t }

// MatchArm pairs a pattern with the expression it guards.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

// Region introduces region-local bindings whose borrows are forced to
// exit scope (and be checked for escape) when the construct closes:
// `region vars { e }`.
type Region struct {
	Vars     []string
	Body     Expr
	inferred types.Type
}

func (e *Region) ExprName() string     { return "Region" }
func (e *Region) Type() types.Type     { return types.RealType(e.inferred) }
func (e *Region) SetType(t types.Type) { e.inferred = t }
