// Package entropy implements the entropy/maintenance pass: state-bit flip
// noise, artifact decay, edge wear, maintenance cost, and resource
// dissipation (spec §4.13 "Entropy engine"). Every draw in this package
// comes from the single shared world prng.Source, in the fixed
// entity-then-edge-then-node order spec §4.1 and §4.13 require.
package entropy

import (
	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/artifact"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/prng"
	"github.com/talgya/mini-world/internal/space"
)

// Config holds the entropy engine's tunables.
type Config struct {
	EntityDegradationRate   float64
	MaintenanceCost         float64
	EdgeDegradationRate     float64
	ResourceDissipationRate float64
}

// DefaultConfig returns the documented default entropy parameters.
func DefaultConfig() Config {
	return Config{
		EntityDegradationRate:   0.01,
		MaintenanceCost:         0.05,
		EdgeDegradationRate:     0.0005,
		ResourceDissipationRate: 0.01,
	}
}

// Result summarizes one entropy pass for the stats layer.
type Result struct {
	DecayedArtifacts []ids.ArtifactID
}

// Apply runs the five-step entropy pass in spec order: entity state-bit
// noise, maintenance cost (credited to the node as waste heat), artifact
// decay, edge wear, and resource dissipation.
func Apply(rng *prng.Source, g *space.Graph, entities *arena.EntityStore, artifacts *arena.ArtifactStore, artifactCfg artifact.Config, cfg Config) Result {
	for _, e := range entities.All() {
		if rng.WithProbability(cfg.EntityDegradationRate) {
			data := e.State.Bytes()
			if len(data) > 0 {
				idx := rng.IntRange(0, len(data)-1)
				delta := rng.IntRange(-8, 8)
				e.State.AddByteDelta(idx, delta)
			}
		}
	}

	for _, e := range entities.All() {
		stability := 1.0
		cost := cfg.MaintenanceCost * stability
		e.Energy -= cost
		if node := g.GetNode(e.NodeID); node != nil {
			node.WasteHeat += cost
		}
	}

	result := Result{DecayedArtifacts: artifact.ApplyDegradation(artifacts, artifactCfg)}

	for _, e := range g.AllEdges() {
		e.Durability -= cfg.EdgeDegradationRate
		if e.Durability < 0 {
			e.Durability = 0
		}
	}

	for _, nodeID := range g.AllNodeIDs() {
		n := g.GetNode(nodeID)
		for k := 0; k < int(ids.NumResourceKinds); k++ {
			kind := ids.ResourceKind(k)
			amount, ok := n.Amount[kind]
			if !ok || amount <= 0 {
				continue
			}
			if rng.WithProbability(cfg.ResourceDissipationRate) {
				n.Amount[kind] = amount - amount*cfg.ResourceDissipationRate
			}
		}
		// Beacons fade independently of the conserved resource pools (spec
		// §9 Open Question 2, resolved SPEC_FULL §4.C).
		n.BeaconStrength *= 0.98
	}

	return result
}
