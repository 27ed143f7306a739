package main

import (
	"fmt"
	"strconv"

	"github.com/affe-lang/affe/ast"
)

// toExpr converts a reader-level sexpr into an ast.Expr, recognizing the
// handful of keyword forms documented in main.go's usage string. A bare
// atom is a numeric literal, "true"/"false", or a variable reference; any
// other parenthesized list is read as a curried application of its head to
// its remaining elements.
func toExpr(s sexpr) (ast.Expr, error) {
	if s.isAtom() {
		return atomExpr(s.atom), nil
	}
	if len(s.list) == 0 {
		return nil, fmt.Errorf("empty expression list")
	}

	head := s.list[0]
	if head.isAtom() {
		switch head.atom {
		case "fun":
			return toLambda(s.list)
		case "let":
			return toLet(s.list, false)
		case "let-rec":
			return toLet(s.list, true)
		case "tuple":
			return toTupleExpr(s.list[1:])
		case "array":
			return toArrayExpr(s.list[1:])
		case "borrow":
			return toBorrow(s.list, ast.Read)
		case "borrow!":
			return toBorrow(s.list, ast.Write)
		case "reborrow":
			return toReBorrow(s.list, ast.Read)
		case "reborrow!":
			return toReBorrow(s.list, ast.Write)
		case "region":
			return toRegion(s.list)
		case "match":
			return toMatch(s.list, false, ast.Read)
		case "match-borrow":
			return toMatch(s.list, true, ast.Read)
		case "match-borrow!":
			return toMatch(s.list, true, ast.Write)
		}
	}
	return toApp(s.list)
}

func atomExpr(a string) ast.Expr {
	switch a {
	case "true":
		return &ast.Const{Syntax: a, Name: "true"}
	case "false":
		return &ast.Const{Syntax: a, Name: "false"}
	}
	if _, err := strconv.ParseInt(a, 10, 64); err == nil {
		return &ast.Const{Syntax: a, Name: "int"}
	}
	return &ast.Var{Name: a}
}

func toLambda(elems []sexpr) (ast.Expr, error) {
	if len(elems) != 3 {
		return nil, fmt.Errorf("fun expects (fun param body), got %d elements", len(elems))
	}
	param, err := toPattern(elems[1])
	if err != nil {
		return nil, err
	}
	body, err := toExpr(elems[2])
	if err != nil {
		return nil, err
	}
	return &ast.Lambda{Param: param, Body: body}, nil
}

func toApp(elems []sexpr) (ast.Expr, error) {
	if len(elems) < 2 {
		return nil, fmt.Errorf("application requires a function and at least one argument")
	}
	fn, err := toExpr(elems[0])
	if err != nil {
		return nil, err
	}
	for _, a := range elems[1:] {
		arg, err := toExpr(a)
		if err != nil {
			return nil, err
		}
		fn = &ast.App{Func: fn, Arg: arg}
	}
	return fn, nil
}

func toLet(elems []sexpr, rec bool) (ast.Expr, error) {
	if len(elems) != 4 {
		return nil, fmt.Errorf("let expects (let pattern value body), got %d elements", len(elems))
	}
	var pat ast.Pattern
	var err error
	if rec {
		if !elems[1].isAtom() {
			return nil, fmt.Errorf("let-rec requires a bare name, not a pattern")
		}
		pat = &ast.PVar{Name: elems[1].atom}
	} else {
		pat, err = toPattern(elems[1])
		if err != nil {
			return nil, err
		}
	}
	value, err := toExpr(elems[2])
	if err != nil {
		return nil, err
	}
	body, err := toExpr(elems[3])
	if err != nil {
		return nil, err
	}
	return &ast.Let{Rec: rec, Pattern: pat, Value: value, Body: body}, nil
}

func toTupleExpr(elems []sexpr) (ast.Expr, error) {
	exprs, err := toExprs(elems)
	if err != nil {
		return nil, err
	}
	return &ast.TupleExpr{Elems: exprs}, nil
}

func toArrayExpr(elems []sexpr) (ast.Expr, error) {
	exprs, err := toExprs(elems)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayExpr{Elems: exprs}, nil
}

func toExprs(elems []sexpr) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(elems))
	for i, e := range elems {
		expr, err := toExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = expr
	}
	return out, nil
}

func toBorrow(elems []sexpr, mode ast.BorrowMode) (ast.Expr, error) {
	if len(elems) != 2 || !elems[1].isAtom() {
		return nil, fmt.Errorf("borrow expects (borrow name)")
	}
	return &ast.Borrow{Mode: mode, Name: elems[1].atom}, nil
}

func toReBorrow(elems []sexpr, mode ast.BorrowMode) (ast.Expr, error) {
	if len(elems) != 2 || !elems[1].isAtom() {
		return nil, fmt.Errorf("reborrow expects (reborrow name)")
	}
	return &ast.ReBorrow{Mode: mode, Name: elems[1].atom}, nil
}

func toRegion(elems []sexpr) (ast.Expr, error) {
	if len(elems) != 3 || elems[1].isAtom() {
		return nil, fmt.Errorf("region expects (region (names...) body)")
	}
	vars := make([]string, len(elems[1].list))
	for i, v := range elems[1].list {
		if !v.isAtom() {
			return nil, fmt.Errorf("region-local names must be bare symbols")
		}
		vars[i] = v.atom
	}
	body, err := toExpr(elems[2])
	if err != nil {
		return nil, err
	}
	return &ast.Region{Vars: vars, Body: body}, nil
}

func toMatch(elems []sexpr, borrowed bool, mode ast.BorrowMode) (ast.Expr, error) {
	if len(elems) < 2 {
		return nil, fmt.Errorf("match expects a scrutinee and at least one arm")
	}
	scrutinee, err := toExpr(elems[1])
	if err != nil {
		return nil, err
	}
	arms := make([]ast.MatchArm, 0, len(elems)-2)
	for _, a := range elems[2:] {
		if a.isAtom() || len(a.list) != 2 {
			return nil, fmt.Errorf("each match arm must be (pattern body)")
		}
		pat, err := toPattern(a.list[0])
		if err != nil {
			return nil, err
		}
		body, err := toExpr(a.list[1])
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Body: body})
	}
	return &ast.Match{
		Modifier: ast.MatchModifier{Borrowed: borrowed, Mode: mode},
		Value:    scrutinee,
		Arms:     arms,
	}, nil
}

// toPattern converts a reader-level sexpr into an ast.Pattern: "_" is the
// wildcard, a bare symbol binds a name, and (tuple p...) destructures a
// tuple.
func toPattern(s sexpr) (ast.Pattern, error) {
	if s.isAtom() {
		if s.atom == "_" {
			return &ast.PWildcard{}, nil
		}
		return &ast.PVar{Name: s.atom}, nil
	}
	if len(s.list) == 0 || !s.list[0].isAtom() || s.list[0].atom != "tuple" {
		return nil, fmt.Errorf("patterns must be a name, _, or (tuple p...)")
	}
	elems := make([]ast.Pattern, len(s.list)-1)
	for i, e := range s.list[1:] {
		p, err := toPattern(e)
		if err != nil {
			return nil, err
		}
		elems[i] = p
	}
	return &ast.PTuple{Elems: elems}, nil
}
