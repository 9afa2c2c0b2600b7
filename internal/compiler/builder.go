// Package compiler lowers a parsed pattern into a nondeterministic finite
// automaton by Thompson-style structural recursion, one construction rule
// per AST node kind.
package compiler

import (
	"github.com/pkg/errors"

	"github.com/agnltson/vregex/internal/automaton"
	"github.com/agnltson/vregex/internal/parser"
)

// Builder grows an automaton from an AST. Each construction rule consumes
// the automaton's current entry/exit frontiers and replaces them with the
// frontiers of the combined sub-automaton, so the caller for a compound
// node sees it as a single unit.
type Builder struct {
	autom  *automaton.Automaton
	logger *Logger
}

// NewBuilder returns a builder writing construction traces to logger.
// A nil logger disables tracing.
func NewBuilder(logger *Logger) *Builder {
	if logger == nil {
		logger = NewLogger(false)
	}
	return &Builder{autom: automaton.New(), logger: logger}
}

// Build runs the construction and returns the finished automaton, whose
// entry frontier is then the start frontier and whose exit frontier is the
// accepting frontier. An invalid state id encountered along the way is an
// invariant violation: the build aborts and no partial automaton escapes.
func (b *Builder) Build(node parser.Node) (*automaton.Automaton, error) {
	b.logger.Section("Automaton Construction")
	if err := b.build(node); err != nil {
		return nil, err
	}
	b.logger.Log("construction complete (states: %d, entries: %d, exits: %d)",
		b.autom.NumStates(), b.autom.Entry().Len(), b.autom.Exit().Len())
	return b.autom, nil
}

func (b *Builder) build(node parser.Node) error {
	switch n := node.(type) {
	case parser.Literal:
		return b.buildLiteral(n)
	case parser.Concat:
		return b.buildConcat(n)
	case parser.Alternate:
		return b.buildAlternate(n)
	case parser.Star:
		return b.buildStar(n)
	default:
		return errors.Errorf("unknown AST node %T", node)
	}
}

// buildLiteral allocates two fresh states joined by a single symbol edge.
func (b *Builder) buildLiteral(n parser.Literal) error {
	ids := b.autom.AddStates(2)
	from, to := ids[0], ids[1]
	if err := b.autom.AddEntry(from); err != nil {
		return errors.Wrap(err, "literal entry")
	}
	if err := b.autom.AddExit(to); err != nil {
		return errors.Wrap(err, "literal exit")
	}
	if err := b.autom.AddTransition(from, to, n.Symbol); err != nil {
		return errors.Wrap(err, "literal transition")
	}
	b.logger.Log("literal: %d --%c--> %d", from, n.Symbol, to)
	return nil
}

// buildConcat builds the left side, sets its frontiers aside, builds the
// right side on cleared frontiers, then wires every left exit to every
// right entry with epsilon edges. The combined entry is the left side's;
// the combined exit is the right side's, which is already current.
func (b *Builder) buildConcat(n parser.Concat) error {
	if err := b.build(n.Left); err != nil {
		return err
	}
	leftEntries := b.autom.Entry()
	leftExits := b.autom.Exit()
	b.autom.ResetEntry()
	b.autom.ResetExit()

	if err := b.build(n.Right); err != nil {
		return err
	}
	rightEntries := b.autom.Entry()

	for from := range leftExits {
		for to := range rightEntries {
			if err := b.autom.AddEpsilonTransition(from, to); err != nil {
				return errors.Wrap(err, "concat wiring")
			}
		}
	}

	b.autom.ResetEntry()
	for id := range leftEntries {
		if err := b.autom.AddEntry(id); err != nil {
			return errors.Wrap(err, "concat entry")
		}
	}
	b.logger.Log("concat: %d exits wired to %d entries", leftExits.Len(), rightEntries.Len())
	return nil
}

// buildAlternate builds both branches without clearing the frontiers in
// between, so their exit sets accumulate into the combined accepting
// frontier and their entry sets are gathered for the dispatch state. A
// single fresh state then epsilon-branches into either sub-pattern.
func (b *Builder) buildAlternate(n parser.Alternate) error {
	if err := b.build(n.Left); err != nil {
		return err
	}
	if err := b.build(n.Right); err != nil {
		return err
	}
	branchEntries := b.autom.Entry()

	b.autom.ResetEntry()
	dispatch := b.autom.AddState()
	if err := b.autom.AddEntry(dispatch); err != nil {
		return errors.Wrap(err, "alternate entry")
	}
	for id := range branchEntries {
		if err := b.autom.AddEpsilonTransition(dispatch, id); err != nil {
			return errors.Wrap(err, "alternate wiring")
		}
	}
	b.logger.Log("alternate: dispatch %d branches to %d entries", dispatch, branchEntries.Len())
	return nil
}

// buildStar wraps the inner automaton in two fresh states. The wrapper
// pair carries a forward epsilon edge for zero repetitions and a backward
// one that re-enters the body, which is the engine's one deliberate
// epsilon cycle.
func (b *Builder) buildStar(n parser.Star) error {
	if err := b.build(n.Inner); err != nil {
		return err
	}
	innerEntries := b.autom.Entry()
	innerExits := b.autom.Exit()
	b.autom.ResetEntry()
	b.autom.ResetExit()

	ids := b.autom.AddStates(2)
	newEntry, newExit := ids[0], ids[1]
	if err := b.autom.AddEntry(newEntry); err != nil {
		return errors.Wrap(err, "star entry")
	}
	if err := b.autom.AddExit(newExit); err != nil {
		return errors.Wrap(err, "star exit")
	}
	if err := b.autom.AddEpsilonTransition(newEntry, newExit); err != nil {
		return errors.Wrap(err, "star skip edge")
	}
	if err := b.autom.AddEpsilonTransition(newExit, newEntry); err != nil {
		return errors.Wrap(err, "star loop edge")
	}
	for id := range innerEntries {
		if err := b.autom.AddEpsilonTransition(newEntry, id); err != nil {
			return errors.Wrap(err, "star body entry")
		}
	}
	for id := range innerExits {
		if err := b.autom.AddEpsilonTransition(id, newExit); err != nil {
			return errors.Wrap(err, "star body exit")
		}
	}
	b.logger.Log("star: wrapper %d/%d around %d entries, %d exits",
		newEntry, newExit, innerEntries.Len(), innerExits.Len())
	return nil
}
