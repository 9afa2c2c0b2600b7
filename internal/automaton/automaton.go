// Package automaton layers frontier bookkeeping and simulation state on
// top of the transition graph.
//
// During construction the entry and exit frontiers are scratch sets,
// rewritten by every construction rule; they describe the automaton's start
// and accepting frontiers only once construction has finished. The active
// set exists only while a query is being simulated and is reinitialized at
// the start of every query.
package automaton

import "github.com/agnltson/vregex/internal/machine"

// Automaton couples a transition graph with entry/exit frontiers and a
// simulation active set.
type Automaton struct {
	graph  *machine.Machine
	entry  machine.StateSet
	exit   machine.StateSet
	active machine.StateSet
}

// New returns an empty automaton.
func New() *Automaton {
	return &Automaton{
		graph:  machine.New(),
		entry:  make(machine.StateSet),
		exit:   make(machine.StateSet),
		active: make(machine.StateSet),
	}
}

// Graph exposes the underlying transition graph for read access.
func (a *Automaton) Graph() *machine.Machine { return a.graph }

// NumStates returns the number of allocated states.
func (a *Automaton) NumStates() int { return a.graph.Len() }

// AddState allocates a fresh state.
func (a *Automaton) AddState() machine.StateID { return a.graph.AddState() }

// AddStates allocates n fresh states with contiguous ids.
func (a *Automaton) AddStates(n int) []machine.StateID { return a.graph.AddStates(n) }

// AddTransition inserts a symbol-labeled edge.
func (a *Automaton) AddTransition(from, to machine.StateID, symbol byte) error {
	return a.graph.AddTransition(from, to, symbol)
}

// AddEpsilonTransition inserts an epsilon edge.
func (a *Automaton) AddEpsilonTransition(from, to machine.StateID) error {
	return a.graph.AddEpsilonTransition(from, to)
}

// AddEntry inserts id into the entry frontier after validating it against
// the graph.
func (a *Automaton) AddEntry(id machine.StateID) error {
	if !a.graph.IsValid(id) {
		return machine.InvalidStateIDError{ID: id}
	}
	a.entry.Add(id)
	return nil
}

// AddExit inserts id into the exit frontier after validating it against
// the graph.
func (a *Automaton) AddExit(id machine.StateID) error {
	if !a.graph.IsValid(id) {
		return machine.InvalidStateIDError{ID: id}
	}
	a.exit.Add(id)
	return nil
}

// ResetEntry clears the entry frontier. Construction rules that replace
// rather than extend a frontier call this first.
func (a *Automaton) ResetEntry() { a.entry = make(machine.StateSet) }

// ResetExit clears the exit frontier.
func (a *Automaton) ResetExit() { a.exit = make(machine.StateSet) }

// Entry returns a copy of the current entry frontier. The frontier itself
// may be rewritten by later construction steps.
func (a *Automaton) Entry() machine.StateSet { return a.entry.Copy() }

// Exit returns a copy of the current exit frontier.
func (a *Automaton) Exit() machine.StateSet { return a.exit.Copy() }

// BeginQuery resets the simulation to the raw entry frontier. Entries are
// not epsilon-closed here: Advance closes around each consumed symbol, and
// AdvanceEpsilonOnly covers the empty-input case.
func (a *Automaton) BeginQuery() { a.active = a.entry.Copy() }

// Advance consumes one input symbol, replacing the active set with the
// union of the graph's step function over its members.
func (a *Automaton) Advance(symbol byte) {
	next := make(machine.StateSet)
	for id := range a.active {
		next.Union(a.graph.Step(id, symbol))
	}
	a.active = next
}

// AdvanceEpsilonOnly replaces the active set with its epsilon closure
// without consuming a symbol. Used once per query, for the empty input
// string, so that epsilon-reachable exits become visible.
func (a *Automaton) AdvanceEpsilonOnly() {
	next := make(machine.StateSet)
	for id := range a.active {
		next.Union(a.graph.EpsilonClosure(id))
	}
	a.active = next
}

// IsAccepting reports whether the active set intersects the exit frontier.
func (a *Automaton) IsAccepting() bool { return a.active.Intersects(a.exit) }
