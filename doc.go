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

// Package affe provides type inference for an affine, region-aware
// extension of Hindley-Milner: every type carries a usage-kind drawn from
// the Un < Aff < Lin qualifier chain, crossed with a lexical-region lattice
// that borrows are tagged with.
//
// The implementation follows the two-tier unifier and level-indexed
// generalisation scheme of Kiselyov's "Efficient Generalization with
// Levels": type-unification variables and kind-unification variables are
// both mutable, level-stamped cells linked in place, so a let-binding can be
// generalised by quantifying every variable created no earlier than the
// binding's own level.
//
// Supported features:
//
//   - Let-polymorphism with the value restriction
//   - Three-element usage-kind lattice (Un, Aff, Lin) tracking how many
//     times a binding may be consumed
//   - Region-parameterised borrows (Read and Write), checked against a
//     lexical-scope region lattice
//   - A constraint solver over kind inequalities, minimizing the
//     constraints retained on every generalised scheme
//   - Self-referential let rec bindings of a single variable
//   - Tuple and homogeneous array literals
//   - Pattern matching with tuple, variable, and wildcard patterns
//
// Links:
//
// Efficient Generalization with Levels (Oleg Kiselyov): http://okmij.org/ftp/ML/generalization.html#levels
//
// Hindley-Milner type system: https://en.wikipedia.org/wiki/Hindley–Milner_type_system
//
// Value restriction: https://en.wikipedia.org/wiki/Value_restriction
package affe
