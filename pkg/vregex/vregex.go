// Package vregex compiles patterns in a small regular-expression dialect
// into nondeterministic finite automata and answers membership queries by
// simulating them with epsilon-closure-based state-set tracking.
//
// The dialect differs from POSIX and PCRE in one important way: the
// operator written '+' is alternation (either-or), not the one-or-more
// quantifier. Compile("a+b") yields an engine matching exactly "a" and
// "b", never "aa". Literals are the lowercase ASCII letters 'a'..'z',
// parentheses group, and '*' is the Kleene star.
//
// An Engine is compiled once per pattern and then answers any number of
// queries. A query rewrites the engine's simulation scratch state, so a
// single Engine must not be queried from multiple goroutines concurrently;
// compile one engine per goroutine instead.
package vregex

import (
	"io"

	"github.com/pkg/errors"

	"github.com/agnltson/vregex/internal/automaton"
	"github.com/agnltson/vregex/internal/codegen"
	"github.com/agnltson/vregex/internal/compiler"
	"github.com/agnltson/vregex/internal/parser"
)

// ParseError reports a pattern that does not conform to the dialect
// grammar. Malformed patterns always fail Compile, regardless of the
// failure mode.
type ParseError = parser.ParseError

// InternalError reports an invariant violation during automaton
// construction. It indicates a bug in the builder, not a bad pattern, and
// in Strict mode it fails the compile rather than handing back a partially
// built engine.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return "internal construction failure: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }

// FailureMode selects how construction failures are reported.
type FailureMode int

const (
	// Strict fails Compile when construction hits an invariant violation.
	Strict FailureMode = iota

	// BestEffort mirrors the engine's historical behavior: construction
	// failures are swallowed and the returned engine rejects every input.
	// Every query then deterministically answers false with no diagnostic,
	// which is why Strict is the default.
	BestEffort
)

// Options configures compilation.
type Options struct {
	// Pattern is the dialect pattern to compile.
	Pattern string

	// Mode selects strict or best-effort handling of construction
	// failures. Parse errors are always hard errors.
	Mode FailureMode

	// Verbose enables construction tracing.
	Verbose bool

	// LogOutput receives trace output; defaults to stderr.
	LogOutput io.Writer
}

// Validate checks that the options are coherent.
func (o Options) Validate() error {
	if o.Mode != Strict && o.Mode != BestEffort {
		return errors.Errorf("invalid failure mode %d", o.Mode)
	}
	return nil
}

// Engine is a compiled pattern. The underlying automaton is frozen after
// compilation; only the simulation scratch state changes between queries.
type Engine struct {
	pattern string
	autom   *automaton.Automaton // nil after a swallowed best-effort failure
}

// Compile parses and compiles pattern with strict failure handling.
func Compile(pattern string) (*Engine, error) {
	return CompileWithOptions(Options{Pattern: pattern})
}

// CompileWithOptions parses and compiles according to opts.
func CompileWithOptions(opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid options")
	}

	node, err := parser.Parse(opts.Pattern)
	if err != nil {
		return nil, err
	}

	logger := compiler.NewLogger(opts.Verbose)
	if opts.LogOutput != nil {
		logger.SetOutput(opts.LogOutput)
	}

	autom, err := compiler.NewBuilder(logger).Build(node)
	if err != nil {
		if opts.Mode == BestEffort {
			return &Engine{pattern: opts.Pattern}, nil
		}
		return nil, &InternalError{Err: err}
	}
	return &Engine{pattern: opts.Pattern, autom: autom}, nil
}

// Matches reports whether s belongs to the language of the compiled
// pattern. Each call reinitializes the simulation from the entry frontier,
// so results are independent of prior queries.
func (e *Engine) Matches(s string) bool {
	if e.autom == nil {
		return false
	}
	e.autom.BeginQuery()
	if s == "" {
		// No symbol will be consumed, so close the raw entry frontier once
		// to make epsilon-reachable exits visible.
		e.autom.AdvanceEpsilonOnly()
	} else {
		for i := 0; i < len(s); i++ {
			e.autom.Advance(s[i])
		}
	}
	return e.autom.IsAccepting()
}

// Pattern returns the pattern the engine was compiled from.
func (e *Engine) Pattern() string { return e.pattern }

// GenerateOptions configures standalone matcher generation.
type GenerateOptions struct {
	// Name is the generated matcher's type name.
	Name string

	// Package is the package name for the generated file.
	Package string

	// OutputFile is the path the generated code is written to.
	OutputFile string
}

// Generate writes a self-contained Go source file reproducing the
// engine's accepted language, with epsilon closures precomputed into
// bitset transition tests.
func (e *Engine) Generate(opts GenerateOptions) error {
	if e.autom == nil {
		return errors.New("cannot generate code from a failed best-effort compile")
	}
	return codegen.Generate(e.autom, codegen.Options{
		Pattern:    e.pattern,
		Name:       opts.Name,
		Package:    opts.Package,
		OutputFile: opts.OutputFile,
	})
}
