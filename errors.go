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
	"fmt"

	"github.com/affe-lang/affe/ast"
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/types"
)

// TypeMismatchError reports that two types could not be unified.
type TypeMismatchError struct {
	A, B types.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", types.TypeString(e.A), types.TypeString(e.B))
}

// KindMismatchError reports that two kinds could not be unified.
type KindMismatchError struct {
	A, B kinds.Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("cannot unify kind %v with kind %v", e.A, e.B)
}

// RecursiveTypeError reports that a type variable occurs within the type
// it was about to be linked to.
type RecursiveTypeError struct {
	Var types.Type
	In  types.Type
}

func (e *RecursiveTypeError) Error() string {
	return fmt.Sprintf("recursive type: %s occurs in %s", types.TypeString(e.Var), types.TypeString(e.In))
}

// UnknownNameError reports a reference to an identifier with no binding in
// scope.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string { return "unknown name: " + e.Name }

// UnknownTypeError reports a reference to a type constructor with no kind
// declared in scope.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string { return "unknown type: " + e.Name }

// IllegalRecLHSError reports a `let rec` whose left-hand pattern is not a
// single variable.
type IllegalRecLHSError struct {
	Pattern ast.Pattern
}

func (e *IllegalRecLHSError) Error() string {
	return "let rec requires a single variable pattern, found " + e.Pattern.PatternName()
}

// AlreadyGeneralisedError reports an attempt to generalise a scheme whose
// body has already been quantified.
type AlreadyGeneralisedError struct {
	Scheme *types.Scheme
}

func (e *AlreadyGeneralisedError) Error() string {
	return "type is already generalised: " + types.TypeString(e.Scheme.Body)
}

// ArityMismatchError reports a type-constructor application with the wrong
// number of arguments for its kind scheme.
type ArityMismatchError struct {
	Name     string
	Expected int
	Actual   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Name, e.Expected, e.Actual)
}
