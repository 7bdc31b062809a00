// Package artifact implements the artifact manager: create/repair/decay and
// prestige accounting for the artifact arena (spec §4.12 "Artifact
// manager").
package artifact

import (
	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/simerr"
)

// Config holds the artifact manager's tunables.
type Config struct {
	MaxDataSize     int
	DegradationRate float64
}

// DefaultConfig returns the documented default artifact-manager parameters
// (spec §3 "maxDataSize ≈ 1024").
func DefaultConfig() Config {
	return Config{
		MaxDataSize:     1024,
		DegradationRate: 0.002,
	}
}

// Create validates energy and data size, allocates a new artifact, and
// debits the creator. Returns the artifact or a structured error.
func Create(store *arena.ArtifactStore, creator *arena.Entity, cost float64, data []byte, tick uint64, cfg Config) (*arena.Artifact, error) {
	if len(data) > cfg.MaxDataSize {
		return nil, simerr.CapacityExceeded(float64(cfg.MaxDataSize))
	}
	if creator.Energy < cost {
		return nil, simerr.InsufficientEnergy(cost, creator.Energy)
	}

	creator.Energy -= cost

	a := &arena.Artifact{
		NodeID:     creator.NodeID,
		Data:       append([]byte(nil), data...),
		Durability: 1.0,
		Prestige:   cost,
		CreatedAt:  tick,
		CreatorID:  creator.ID,
	}
	store.Add(a)
	return a, nil
}

// Repair increases durability (clamped to 1) and adds prestigeGain to the
// artifact's prestige (spec §4.12 "repair").
func Repair(a *arena.Artifact, amount, prestigeGain float64) {
	a.Durability += amount
	if a.Durability > 1 {
		a.Durability = 1
	}
	a.Prestige += prestigeGain
}

// ApplyDegradation decrements every artifact's durability by the
// degradation rate and removes any that reach zero or below, returning the
// removed ids for the engine to emit artifactDecayed events (spec §4.12
// "applyDegradation").
func ApplyDegradation(store *arena.ArtifactStore, cfg Config) []ids.ArtifactID {
	var decayed []ids.ArtifactID
	for _, a := range store.All() {
		a.Durability -= cfg.DegradationRate
		if a.Durability <= 0 {
			decayed = append(decayed, a.ID)
		}
	}
	for _, id := range decayed {
		store.Remove(id)
	}
	return decayed
}
