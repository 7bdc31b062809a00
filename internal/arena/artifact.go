package arena

import (
	"sort"

	"github.com/talgya/mini-world/internal/ids"
)

// Artifact is a stationary, degradable data object at a node: the only
// form of extrasomatic memory in the simulation (spec §3 "Artifact").
type Artifact struct {
	ID         ids.ArtifactID
	NodeID     ids.NodeID
	Data       []byte
	Durability float64 // (0, 1]
	Prestige   float64 // monotonically increasing
	CreatedAt  uint64
	CreatorID  ids.EntityID
}

// ArtifactStore is the arena of live artifacts, keyed by id.
type ArtifactStore struct {
	byID   map[ids.ArtifactID]*Artifact
	nextID ids.ArtifactID
}

// NewArtifactStore creates an empty artifact arena.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{byID: make(map[ids.ArtifactID]*Artifact)}
}

// Add registers a, assigning it a fresh id unless one is already set.
func (s *ArtifactStore) Add(a *Artifact) {
	if a.ID == 0 {
		s.nextID++
		a.ID = s.nextID
	} else if a.ID >= s.nextID {
		s.nextID = a.ID
	}
	s.byID[a.ID] = a
}

// Get returns the artifact with the given id, or nil if absent.
func (s *ArtifactStore) Get(id ids.ArtifactID) *Artifact {
	return s.byID[id]
}

// Remove deletes the artifact with the given id from the arena.
func (s *ArtifactStore) Remove(id ids.ArtifactID) {
	delete(s.byID, id)
}

// Len returns the number of live artifacts.
func (s *ArtifactStore) Len() int { return len(s.byID) }

// SortedIDs returns every artifact id in ascending order.
func (s *ArtifactStore) SortedIDs() []ids.ArtifactID {
	out := make([]ids.ArtifactID, 0, len(s.byID))
	for id := range s.byID {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// All returns every live artifact ordered by ascending id.
func (s *ArtifactStore) All() []*Artifact {
	sortedIDs := s.SortedIDs()
	out := make([]*Artifact, 0, len(sortedIDs))
	for _, id := range sortedIDs {
		out = append(out, s.byID[id])
	}
	return out
}
