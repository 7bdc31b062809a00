// Package arena owns the entity and artifact arenas: live stores keyed by
// id, with O(1) lookup and no owning references from nodes (spec §3, §9
// "Ownership vs. references").
package arena

import (
	"sort"

	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/statebuf"
)

// Entity is a mobile agent: identity, location, energy, internal state, and
// a behavior rule (spec §3 "Entity").
type Entity struct {
	ID              ids.EntityID
	NodeID          ids.NodeID
	Energy          float64
	MaxEnergy       float64
	Age             uint64
	PerceptionRange int
	State           *statebuf.Buffer
	Rule            *behavior.Rule

	// Mass is an optional attribute (default 1.0) consumed by move cost and
	// death-energy-release (spec §9 Open Question 2).
	Mass float64

	// Kind is a free-form, optional small-int tag carried through
	// snapshots and replication (events do not record it) but not consumed
	// by core pipeline logic (spec
	// §9 Open Question 2).
	Kind int

	IsMaintainer        bool
	MaintainerUntilTick uint64

	Alive bool
}

// EntityStore is the arena of live entities, keyed by id.
type EntityStore struct {
	byID   map[ids.EntityID]*Entity
	nextID ids.EntityID
}

// NewEntityStore creates an empty entity arena.
func NewEntityStore() *EntityStore {
	return &EntityStore{byID: make(map[ids.EntityID]*Entity)}
}

// Add registers e, assigning it a fresh id if it does not already have one
// allocated from this store (e.ID is left untouched if already set by the
// caller — used for deterministic reload from a snapshot).
func (s *EntityStore) Add(e *Entity) {
	if e.ID == 0 {
		s.nextID++
		e.ID = s.nextID
	} else if e.ID >= s.nextID {
		s.nextID = e.ID
	}
	s.byID[e.ID] = e
}

// NextID previews the id that would be assigned to the next Add call
// without a pre-set id.
func (s *EntityStore) NextID() ids.EntityID {
	return s.nextID + 1
}

// Get returns the entity with the given id, or nil if absent.
func (s *EntityStore) Get(id ids.EntityID) *Entity {
	return s.byID[id]
}

// Remove deletes the entity with the given id from the arena.
func (s *EntityStore) Remove(id ids.EntityID) {
	delete(s.byID, id)
}

// Len returns the number of live entities.
func (s *EntityStore) Len() int { return len(s.byID) }

// SortedIDs returns every entity id in ascending order — the fixed
// processing order the tick pipeline requires (spec §4.6, §5).
func (s *EntityStore) SortedIDs() []ids.EntityID {
	out := make([]ids.EntityID, 0, len(s.byID))
	for id := range s.byID {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// All returns every live entity ordered by ascending id.
func (s *EntityStore) All() []*Entity {
	sortedIDs := s.SortedIDs()
	out := make([]*Entity, 0, len(sortedIDs))
	for _, id := range sortedIDs {
		out = append(out, s.byID[id])
	}
	return out
}
