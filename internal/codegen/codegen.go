// Package codegen emits a standalone, dependency-free Go matcher for a
// compiled pattern. The generated function reproduces the automaton's
// accepted language with all epsilon closures precomputed at generation
// time: state sets become uint64 bitsets and the simulation loop is a flat
// sequence of per-edge tests.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"sort"

	"github.com/dave/jennifer/jen"
	"github.com/pkg/errors"

	"github.com/agnltson/vregex/internal/automaton"
	"github.com/agnltson/vregex/internal/machine"
)

// MaxStates bounds the automatons the generator accepts; state sets in the
// generated code are single uint64 bitsets.
const MaxStates = 64

// Options configures matcher generation.
type Options struct {
	// Pattern is quoted in the generated header comment.
	Pattern string

	// Name is the generated matcher's type name (e.g. "Ident" generates
	// Ident.MatchString and the CompiledIdent value).
	Name string

	// Package is the Go package name for the generated file.
	Package string

	// OutputFile is the path the generated code is written to.
	OutputFile string
}

// Validate checks that the options are complete.
func (o Options) Validate() error {
	if o.Name == "" {
		return errors.New("name cannot be empty")
	}
	if o.Package == "" {
		return errors.New("package cannot be empty")
	}
	if o.OutputFile == "" {
		return errors.New("output file cannot be empty")
	}
	return nil
}

// edge is one precomputed transition test in the generated loop: when the
// state bit is live and the input byte matches, the target closure joins
// the next state set.
type edge struct {
	state   machine.StateID
	symbol  byte
	closure uint64
}

// Generate writes a self-contained Go source file whose MatchString method
// accepts exactly the language of the compiled automaton.
func Generate(autom *automaton.Automaton, opts Options) error {
	if err := opts.Validate(); err != nil {
		return errors.Wrap(err, "invalid options")
	}
	n := autom.NumStates()
	if n > MaxStates {
		return errors.Errorf("automaton has %d states, generator supports at most %d", n, MaxStates)
	}

	graph := autom.Graph()

	// Per-state epsilon closures as bitsets.
	closures := make([]uint64, n)
	for id := 0; id < n; id++ {
		closures[id] = bitsetOf(graph.EpsilonClosure(machine.StateID(id)))
	}

	// The start set is the closed entry frontier; at run time the engine
	// closes around every consumed symbol, so starting closed is equivalent
	// for both empty and non-empty inputs.
	var startClosure uint64
	for id := range autom.Entry() {
		startClosure |= closures[id]
	}
	acceptMask := bitsetOf(autom.Exit())

	edges := collectEdges(graph, closures, n)

	f := jen.NewFile(opts.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by vregex for pattern: %s", opts.Pattern))
	f.HeaderComment("DO NOT EDIT.")

	f.Comment(fmt.Sprintf("%s matches the pattern %q. The dialect's '+' is alternation.", opts.Name, opts.Pattern))
	f.Type().Id(opts.Name).Struct()
	f.Line()
	f.Var().Id("Compiled" + opts.Name).Op("=").Id(opts.Name).Values()
	f.Line()

	f.Func().
		Params(jen.Id(opts.Name)).
		Id("MatchString").
		Params(jen.Id("input").String()).
		Bool().
		Block(matchBody(startClosure, acceptMask, edges)...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return errors.Wrap(err, "render matcher")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "format matcher")
	}
	if err := os.WriteFile(opts.OutputFile, src, 0644); err != nil {
		return errors.Wrap(err, "write matcher")
	}
	return nil
}

func bitsetOf(set machine.StateSet) uint64 {
	var bits uint64
	for id := range set {
		bits |= 1 << uint(id)
	}
	return bits
}

// collectEdges flattens the graph into deterministic (state, symbol, target
// closure) triples, ordered by state then symbol.
func collectEdges(graph *machine.Machine, closures []uint64, n int) []edge {
	var edges []edge
	for id := 0; id < n; id++ {
		transitions := graph.Transitions(machine.StateID(id))
		symbols := make([]byte, 0, len(transitions))
		for symbol := range transitions {
			symbols = append(symbols, symbol)
		}
		sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
		for _, symbol := range symbols {
			var closure uint64
			for target := range transitions[symbol] {
				closure |= closures[target]
			}
			edges = append(edges, edge{state: machine.StateID(id), symbol: symbol, closure: closure})
		}
	}
	return edges
}

func matchBody(startClosure, acceptMask uint64, edges []edge) []jen.Code {
	loop := []jen.Code{
		jen.Id("c").Op(":=").Id("input").Index(jen.Id("offset")),
		jen.Var().Id("next").Uint64(),
	}
	for _, e := range edges {
		stateBit := uint64(1) << uint(e.state)
		loop = append(loop,
			jen.If(
				jen.Id("current").Op("&").Uint64().Call(jen.Lit(stateBit)).Op("!=").Lit(0).
					Op("&&").Id("c").Op("==").Lit(e.symbol),
			).Block(
				jen.Id("next").Op("|=").Uint64().Call(jen.Lit(e.closure)),
			),
		)
	}
	loop = append(loop,
		jen.Id("current").Op("=").Id("next"),
		jen.If(jen.Id("current").Op("==").Lit(0)).Block(
			jen.Return(jen.False()),
		),
	)

	return []jen.Code{
		jen.Comment("NFA state set with epsilon closures precomputed"),
		jen.Id("current").Op(":=").Uint64().Call(jen.Lit(startClosure)),
		jen.Id("acceptMask").Op(":=").Uint64().Call(jen.Lit(acceptMask)),
		jen.Line(),
		jen.For(
			jen.Id("offset").Op(":=").Lit(0),
			jen.Id("offset").Op("<").Len(jen.Id("input")),
			jen.Id("offset").Op("++"),
		).Block(loop...),
		jen.Line(),
		jen.Return(jen.Id("current").Op("&").Id("acceptMask").Op("!=").Lit(0)),
	}
}
