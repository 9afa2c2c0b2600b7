package automaton

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agnltson/vregex/internal/machine"
)

func TestFrontierValidation(t *testing.T) {
	a := New()
	require.Equal(t, machine.InvalidStateIDError{ID: 0}, a.AddEntry(0))
	require.Equal(t, machine.InvalidStateIDError{ID: 0}, a.AddExit(0))

	id := a.AddState()
	require.NoError(t, a.AddEntry(id))
	require.NoError(t, a.AddExit(id))
	require.Equal(t, machine.InvalidStateIDError{ID: 7}, a.AddEntry(7))
	require.Equal(t, machine.InvalidStateIDError{ID: 7}, a.AddExit(7))
}

func TestFrontierResetAndCopy(t *testing.T) {
	a := New()
	ids := a.AddStates(2)
	require.NoError(t, a.AddEntry(ids[0]))
	require.NoError(t, a.AddExit(ids[1]))

	require.Equal(t, machine.NewStateSet(ids[0]), a.Entry())
	require.Equal(t, machine.NewStateSet(ids[1]), a.Exit())

	// Mutating a returned frontier must not leak into the automaton.
	leaked := a.Entry()
	leaked.Add(ids[1])
	require.Equal(t, machine.NewStateSet(ids[0]), a.Entry())

	a.ResetEntry()
	require.Equal(t, 0, a.Entry().Len())
	require.Equal(t, machine.NewStateSet(ids[1]), a.Exit())

	a.ResetExit()
	require.Equal(t, 0, a.Exit().Len())
}

// p --a--> q with entry {p} and exit {q}.
func literalAutomaton(t *testing.T) *Automaton {
	t.Helper()
	a := New()
	ids := a.AddStates(2)
	require.NoError(t, a.AddEntry(ids[0]))
	require.NoError(t, a.AddExit(ids[1]))
	require.NoError(t, a.AddTransition(ids[0], ids[1], 'a'))
	return a
}

func TestSimulation(t *testing.T) {
	a := literalAutomaton(t)

	a.BeginQuery()
	require.False(t, a.IsAccepting())
	a.Advance('a')
	require.True(t, a.IsAccepting())

	// Advancing past acceptance leaves the active set empty.
	a.Advance('a')
	require.False(t, a.IsAccepting())

	// A fresh query is independent of the previous one.
	a.BeginQuery()
	a.Advance('b')
	require.False(t, a.IsAccepting())

	a.BeginQuery()
	a.Advance('a')
	require.True(t, a.IsAccepting())
}

func TestAdvanceEpsilonOnly(t *testing.T) {
	a := New()
	ids := a.AddStates(2)
	require.NoError(t, a.AddEntry(ids[0]))
	require.NoError(t, a.AddExit(ids[1]))
	require.NoError(t, a.AddEpsilonTransition(ids[0], ids[1]))

	// BeginQuery uses the raw entry frontier, so the epsilon-reachable exit
	// is invisible until the closure pass runs.
	a.BeginQuery()
	require.False(t, a.IsAccepting())
	a.AdvanceEpsilonOnly()
	require.True(t, a.IsAccepting())
}

func TestAdvanceEpsilonOnlyMutualCycle(t *testing.T) {
	a := New()
	ids := a.AddStates(2)
	require.NoError(t, a.AddEntry(ids[0]))
	require.NoError(t, a.AddExit(ids[1]))
	require.NoError(t, a.AddEpsilonTransition(ids[0], ids[1]))
	require.NoError(t, a.AddEpsilonTransition(ids[1], ids[0]))

	a.BeginQuery()
	a.AdvanceEpsilonOnly()
	require.True(t, a.IsAccepting())
}
