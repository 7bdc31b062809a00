// Package perception builds the noisy, local view an entity acts on each
// tick, and condenses it into the 13-element feature vector the behavior
// layer scores (spec §4.4 "Perception").
package perception

import (
	"sort"

	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/prng"
	"github.com/talgya/mini-world/internal/skills"
	"github.com/talgya/mini-world/internal/space"
)

// NodeView is the perceived state of a node, possibly noised.
type NodeView struct {
	NodeID         ids.NodeID
	Temperature    float64
	Terrain        ids.Terrain
	Resources      map[ids.ResourceKind]float64
	EntityCount    int
	ArtifactCount  int
	BeaconStrength float64
}

// EntityView is a perceived co-located entity.
type EntityView struct {
	ID           ids.EntityID
	Energy       float64
	Age          uint64
	IsMaintainer bool
}

// ArtifactView is a perceived co-located artifact.
type ArtifactView struct {
	ID         ids.ArtifactID
	Durability float64
}

// BeaconView is a visible beacon within BFS radius (spec §4.4 "visible
// beacons within a BFS radius equal to the entity's perception range").
type BeaconView struct {
	NodeID   ids.NodeID
	Strength float64
}

// Result is the full perceived snapshot for one entity.
type Result struct {
	Current            NodeView
	Neighbors          []NodeView
	CoEntities         []EntityView
	CoArtifacts        []ArtifactView
	Beacons            []BeaconView
	HasMaintainer      bool
	HasDamagedArtifact bool
}

// Config controls noise and feature toggles.
type Config struct {
	NoiseRate        float64
	BeaconsEnabled   bool
	DamagedThreshold float64 // artifact durability below this counts as "damaged"
}

// DefaultConfig returns the documented default perception parameters.
func DefaultConfig() Config {
	return Config{
		NoiseRate:        0.05,
		BeaconsEnabled:   true,
		DamagedThreshold: 0.5,
	}
}

// Perceive builds an entity's noisy local view. All noise draws come from
// the shared rng, current node first and then each neighbor (beacon views
// are not noised), so two runs with identical histories perceive
// identically (spec §4.1, §4.4).
func Perceive(rng *prng.Source, g *space.Graph, entities *arena.EntityStore, artifacts *arena.ArtifactStore, self *arena.Entity, cfg Config) Result {
	var res Result

	res.Current = viewNode(rng, g, entities, artifacts, self.NodeID, cfg)

	for _, nb := range g.GetNeighbors(self.NodeID) {
		res.Neighbors = append(res.Neighbors, viewNode(rng, g, entities, artifacts, nb, cfg))
	}

	node := g.GetNode(self.NodeID)
	for eid := range node.EntityIDs {
		if eid == self.ID {
			continue
		}
		other := entities.Get(eid)
		if other == nil || !other.Alive {
			continue
		}
		res.CoEntities = append(res.CoEntities, EntityView{
			ID:           other.ID,
			Energy:       other.Energy,
			Age:          other.Age,
			IsMaintainer: other.IsMaintainer,
		})
		if other.IsMaintainer {
			res.HasMaintainer = true
		}
	}
	sort.Slice(res.CoEntities, func(i, j int) bool { return res.CoEntities[i].ID < res.CoEntities[j].ID })

	for aid := range node.ArtifactIDs {
		art := artifacts.Get(aid)
		if art == nil {
			continue
		}
		res.CoArtifacts = append(res.CoArtifacts, ArtifactView{ID: art.ID, Durability: art.Durability})
		if art.Durability < cfg.DamagedThreshold {
			res.HasDamagedArtifact = true
		}
	}
	sort.Slice(res.CoArtifacts, func(i, j int) bool { return res.CoArtifacts[i].ID < res.CoArtifacts[j].ID })

	if cfg.BeaconsEnabled && self.PerceptionRange > 0 {
		for _, nid := range g.BFS(self.NodeID, self.PerceptionRange) {
			n := g.GetNode(nid)
			if n.BeaconStrength > 0 {
				res.Beacons = append(res.Beacons, BeaconView{NodeID: nid, Strength: n.BeaconStrength})
			}
		}
		sort.Slice(res.Beacons, func(i, j int) bool { return res.Beacons[i].NodeID < res.Beacons[j].NodeID })
	}

	return res
}

func viewNode(rng *prng.Source, g *space.Graph, entities *arena.EntityStore, artifacts *arena.ArtifactStore, id ids.NodeID, cfg Config) NodeView {
	n := g.GetNode(id)
	v := NodeView{
		NodeID:         id,
		Temperature:    noise(rng, n.Temperature, cfg.NoiseRate),
		Terrain:        n.Terrain,
		Resources:      make(map[ids.ResourceKind]float64, len(n.Amount)),
		EntityCount:    len(n.EntityIDs),
		ArtifactCount:  len(n.ArtifactIDs),
		BeaconStrength: noise(rng, n.BeaconStrength, cfg.NoiseRate),
	}
	for k := 0; k < int(ids.NumResourceKinds); k++ {
		kind := ids.ResourceKind(k)
		amt, ok := n.Amount[kind]
		if !ok {
			continue
		}
		v.Resources[kind] = noise(rng, amt, cfg.NoiseRate)
	}
	return v
}

// noise applies the spec §4.4 noise model to a scalar: with probability
// noiseRate, multiply by 1 + Normal(0, 0.1). Booleans and ids are never
// perturbed (callers simply don't route them through this function).
func noise(rng *prng.Source, v, noiseRate float64) float64 {
	if rng.WithProbability(noiseRate) {
		return v * (1 + rng.Normal(0, 0.1))
	}
	return v
}

// ToFeatureVector condenses a perception Result plus the entity's own
// energy/state into the 13-element feature vector the behavior layer
// scores (spec §4.4's fixed feature ordering).
func ToFeatureVector(r Result, self *arena.Entity) behavior.FeatureVector {
	var fv behavior.FeatureVector

	selfEnergyNorm := 0.0
	if self.MaxEnergy > 0 {
		selfEnergyNorm = self.Energy / self.MaxEnergy
	}
	fv[0] = clamp01(selfEnergyNorm)
	fv[1] = clamp01(normalizeResource(r.Current.Resources[ids.ResourceEnergy]))

	maxNeighborResource := 0.0
	maxNeighborBeacon := 0.0
	for _, nb := range r.Neighbors {
		if amt := nb.Resources[ids.ResourceEnergy]; amt > maxNeighborResource {
			maxNeighborResource = amt
		}
		if nb.BeaconStrength > maxNeighborBeacon {
			maxNeighborBeacon = nb.BeaconStrength
		}
	}
	fv[2] = clamp01(normalizeResource(maxNeighborResource))
	fv[3] = clamp01(float64(len(r.CoEntities)) / 10.0)
	fv[4] = clamp01(r.Current.BeaconStrength)
	fv[5] = clamp01(maxNeighborBeacon)

	if r.HasDamagedArtifact {
		fv[6] = 1
	}
	if r.HasMaintainer {
		fv[7] = 1
	}

	data := self.State.Bytes()
	for i := 0; i < 4; i++ {
		if i < len(data) {
			fv[8+i] = float64(data[i]) / 255.0
		}
	}

	fv[12] = 1 // constant bias
	return fv
}

// SkillLevels extracts the eight per-skill levels from an entity's state,
// for callers that need the raw vector rather than feeding it through
// scoring (e.g. event/stat reporting).
func SkillLevels(self *arena.Entity) [skills.NumSkills]float64 {
	var out [skills.NumSkills]float64
	for i := 0; i < skills.NumSkills; i++ {
		out[i] = skills.Level(self.State, skills.Skill(i))
	}
	return out
}

func normalizeResource(amt float64) float64 {
	// Resources are normalized against a soft reference scale; values
	// beyond it still clamp to 1 in clamp01.
	const referenceScale = 100.0
	return amt / referenceScale
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
