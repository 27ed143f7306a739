// Command affe-check infers a type for a single top-level declaration
// written in a minimal s-expression surface syntax, printing the
// generalised scheme or the diagnostic that inference failed with.
//
// It exists only to exercise the exported entry points of this module
// end-to-end; it is not part of the type-checker core and a real front end
// (lexer/parser/name-resolver over concrete Affe syntax) would replace it
// without touching anything under the module root.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/affe-lang/affe"
	"github.com/affe-lang/affe/builtin"
	"github.com/affe-lang/affe/kinds"
	"github.com/affe-lang/affe/types"
)

const usage = `affe-check: infer a type for a top-level declaration

Usage:
  affe-check -e '(fun x x)'
  affe-check -f decl.affe.sexpr --annotate

Surface syntax (s-expressions):
  42 | true | false | name            literals and variable references
  (fun pattern body)                  single-argument lambda, curried for more
  (f a b ...)                         curried application
  (let pattern value body)            (possibly-destructuring) let
  (let-rec name value body)           self-referential let
  (tuple e ...) | (array e ...)       tuple and array literals
  (borrow name) | (borrow! name)      read / write borrow
  (reborrow name) | (reborrow! name)  re-derive a borrow from a write borrow
  (region (name ...) body)            region-local bindings
  (match e (pattern body) ...)        pattern match
  (match-borrow name (pattern body) ...)   match over a read-borrowed name
  (match-borrow! name (pattern body) ...)  match over a write-borrowed name
  pattern := _ | name | (tuple pattern ...)

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("affe-check", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		exprFlag string
		fileFlag string
		annotate bool
		trace    bool
		name     string
		rec      bool
	)
	flags.StringVarP(&exprFlag, "expr", "e", "", "inline declaration source")
	flags.StringVarP(&fileFlag, "file", "f", "", "path to a file containing the declaration source")
	flags.BoolVar(&annotate, "annotate", false, "print the type-annotated AST instead of just the scheme")
	flags.BoolVar(&trace, "trace", false, "emit a structured log of each inference phase")
	flags.StringVar(&name, "name", "decl", "name the declaration is bound to, for --trace and the let rec self-reference")
	flags.BoolVar(&rec, "rec", false, "infer the declaration as `let rec name = expr`")
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}

	src, err := source(exprFlag, fileFlag, flags.Usage)
	if err != nil {
		fmt.Fprintln(stderr, "affe-check:", err)
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	if !trace {
		log.SetLevel(logrus.WarnLevel)
	}

	scheme, annotated, err := checkDecl(log, src, name, rec, annotate)
	if err != nil {
		fmt.Fprintln(stderr, "affe-check: type error:", err)
		return 1
	}
	if annotate {
		fmt.Fprintln(stdout, annotated)
		return 0
	}
	fmt.Fprintln(stdout, formatScheme(scheme))
	return 0
}

func source(exprFlag, fileFlag string, usage func()) (string, error) {
	switch {
	case exprFlag != "" && fileFlag != "":
		return "", fmt.Errorf("-e and -f are mutually exclusive")
	case exprFlag != "":
		return exprFlag, nil
	case fileFlag != "":
		b, err := os.ReadFile(fileFlag)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		usage()
		return "", fmt.Errorf("one of -e or -f is required")
	}
}

func checkDecl(log *logrus.Logger, src, name string, rec, annotate bool) (*types.Scheme, string, error) {
	start := time.Now()
	fields := logrus.Fields{"decl": name}

	log.WithFields(fields).WithField("phase", "parse").Info("parsing declaration")
	s, err := parseSexpr(src)
	if err != nil {
		return nil, "", fmt.Errorf("parse: %w", err)
	}
	expr, err := toExpr(s)
	if err != nil {
		return nil, "", fmt.Errorf("parse: %w", err)
	}

	ctx := affe.NewContext()
	env := affe.NewEnv(nil)
	b := builtin.New(ctx.TypeName)
	for n, scheme := range b.Values {
		env.DeclareValue(n, scheme)
	}
	for n, scheme := range b.TypeKinds {
		env.DeclareType(n, scheme)
	}

	log.WithFields(fields).WithField("phase", "infer").
		WithField("elapsed", time.Since(start)).Info("running inference")
	_, _, scheme, err := affe.InferTop(ctx, env, rec, name, expr)
	if err != nil {
		return nil, "", err
	}

	log.WithFields(fields).WithField("phase", "done").
		WithField("elapsed", time.Since(start)).Info("inference complete")

	var annotated string
	if annotate {
		annotated = annotateExpr(expr, 0)
	}
	return scheme, annotated, nil
}

// formatScheme renders a generalised scheme as `forall 'a... . body where
// constraint`, omitting the quantifier/constraint clauses a monomorphic
// scheme has none of.
func formatScheme(s *types.Scheme) string {
	if s.IsMonomorphic() {
		return types.TypeString(s.Body)
	}
	out := "forall"
	for _, tv := range s.TyVars {
		out += " " + types.TypeString(tv)
	}
	out += ". " + types.TypeString(s.Body)
	if len(s.Constraint) > 0 {
		out += " where "
		for i, c := range s.Constraint {
			if i > 0 {
				out += ", "
			}
			out += formatKind(c.Lower) + " <= " + formatKind(c.Upper)
		}
	}
	return out
}

func formatKind(k kinds.Kind) string {
	switch k := kinds.RealKind(k).(type) {
	case kinds.Const:
		return k.String()
	case *kinds.Var:
		return fmt.Sprintf("k%d", k.Id())
	case *kinds.GenericVar:
		return fmt.Sprintf("'k%d", k.Id())
	default:
		return fmt.Sprintf("%v", k)
	}
}
