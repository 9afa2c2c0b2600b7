package machine

import "sort"

// StateSet is an unordered set of state ids.
type StateSet map[StateID]struct{}

// NewStateSet returns a set containing the given ids.
func NewStateSet(ids ...StateID) StateSet {
	s := make(StateSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

func (s StateSet) Add(id StateID) { s[id] = struct{}{} }

func (s StateSet) Contains(id StateID) bool {
	_, ok := s[id]
	return ok
}

func (s StateSet) Len() int { return len(s) }

// Union inserts every member of other into s.
func (s StateSet) Union(other StateSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Intersects reports whether s and other share at least one member.
func (s StateSet) Intersects(other StateSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if large.Contains(id) {
			return true
		}
	}
	return false
}

// Copy returns an independent copy of s.
func (s StateSet) Copy() StateSet {
	out := make(StateSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// IDs returns the members in ascending order, for deterministic iteration.
func (s StateSet) IDs() []StateID {
	ids := make([]StateID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
