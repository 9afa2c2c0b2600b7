// Package machine implements the transition graph underlying the NFA:
// a growable arena of states addressed by dense integer ids, each state
// holding symbol-labeled and epsilon edges as sets of successor ids.
//
// The arena-plus-id representation means states never hold references to
// one another, so cyclic transition graphs (epsilon loops in particular)
// need no special ownership handling. Ids are never reused; an id is valid
// iff it is smaller than the number of allocated states.
package machine

import "fmt"

// StateID is a dense handle into the machine's state arena.
type StateID int

// InvalidStateIDError reports an operation that named a state id outside
// the arena. During pattern construction this is an invariant violation,
// not an expected condition.
type InvalidStateIDError struct {
	ID StateID
}

func (e InvalidStateIDError) Error() string {
	return fmt.Sprintf("no state with id %d", e.ID)
}

// state holds the outgoing edges of a single NFA state.
type state struct {
	transitions map[byte]StateSet
	epsilons    StateSet
}

// Machine is the arena. It exclusively owns every state record; all other
// components refer to states by id only.
type Machine struct {
	states []state
}

// New returns an empty machine.
func New() *Machine { return &Machine{} }

// AddState appends a state with no outgoing edges and returns its id,
// which equals the previous state count.
func (m *Machine) AddState() StateID {
	m.states = append(m.states, state{
		transitions: make(map[byte]StateSet),
		epsilons:    make(StateSet),
	})
	return StateID(len(m.states) - 1)
}

// AddStates appends n states and returns their ids, contiguous and
// increasing.
func (m *Machine) AddStates(n int) []StateID {
	ids := make([]StateID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, m.AddState())
	}
	return ids
}

// Len returns the number of allocated states. It only ever grows.
func (m *Machine) Len() int { return len(m.states) }

// IsValid reports whether id refers to an allocated state.
func (m *Machine) IsValid(id StateID) bool {
	return id >= 0 && int(id) < len(m.states)
}

func (m *Machine) checkEndpoints(from, to StateID) error {
	if !m.IsValid(from) {
		return InvalidStateIDError{ID: from}
	}
	if !m.IsValid(to) {
		return InvalidStateIDError{ID: to}
	}
	return nil
}

// AddTransition inserts a symbol-labeled edge from -> to. Both endpoints
// are validated before anything is mutated.
func (m *Machine) AddTransition(from, to StateID, symbol byte) error {
	if err := m.checkEndpoints(from, to); err != nil {
		return err
	}
	st := &m.states[from]
	set, ok := st.transitions[symbol]
	if !ok {
		set = make(StateSet)
		st.transitions[symbol] = set
	}
	set.Add(to)
	return nil
}

// AddEpsilonTransition inserts an edge from -> to traversable without
// consuming a symbol.
func (m *Machine) AddEpsilonTransition(from, to StateID) error {
	if err := m.checkEndpoints(from, to); err != nil {
		return err
	}
	m.states[from].epsilons.Add(to)
	return nil
}

// Transitions returns a copy of the symbol-labeled edges out of id.
func (m *Machine) Transitions(id StateID) map[byte]StateSet {
	if !m.IsValid(id) {
		return nil
	}
	out := make(map[byte]StateSet, len(m.states[id].transitions))
	for symbol, targets := range m.states[id].transitions {
		out[symbol] = targets.Copy()
	}
	return out
}

// EpsilonClosure returns every state reachable from start using zero or
// more epsilon transitions, including start itself. The reachable set
// doubles as the visited guard, so mutual epsilon cycles terminate with
// each state expanded once.
func (m *Machine) EpsilonClosure(start StateID) StateSet {
	reachable := make(StateSet)
	stack := []StateID{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable.Contains(id) {
			continue
		}
		reachable.Add(id)
		for next := range m.states[id].epsilons {
			stack = append(stack, next)
		}
	}
	return reachable
}

// Step is the single-state, single-symbol transition function:
// epsilon-close from, follow symbol edges out of every state in the
// closure, then epsilon-close each landing state and union the results.
// Epsilon transitions on both sides of the consumed symbol are therefore
// already absorbed.
func (m *Machine) Step(from StateID, symbol byte) StateSet {
	afterSymbol := make(StateSet)
	for id := range m.EpsilonClosure(from) {
		if targets, ok := m.states[id].transitions[symbol]; ok {
			afterSymbol.Union(targets)
		}
	}
	result := make(StateSet)
	for id := range afterSymbol {
		result.Union(m.EpsilonClosure(id))
	}
	return result
}
