// Package action implements the closed sum of concrete, resolvable actions
// an entity can take in a tick — Idle, Harvest, Move, Interact, Replicate,
// CreateArtifact, RepairArtifact, ReadArtifact — and their resolvers (spec
// §4.6 "Action resolution", §9 "Polymorphic actions"). Interact and
// Replicate are only concretized here; their actual effects are delegated
// to internal/interaction and internal/replication respectively, which the
// universe tick pipeline invokes directly so their multi-entity side
// effects stay out of this single-entity resolver.
package action

import (
	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/artifact"
	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/infotransfer"
	"github.com/talgya/mini-world/internal/perception"
	"github.com/talgya/mini-world/internal/prng"
	"github.com/talgya/mini-world/internal/simerr"
	"github.com/talgya/mini-world/internal/skills"
	"github.com/talgya/mini-world/internal/space"
)

// Kind is the concretized, resolvable action a single entity performs in a
// tick (spec §9's closed sum — narrower than behavior.Action, which still
// carries the pre-concretization MoveToResource/MoveToBeacon/Explore split).
type Kind uint8

const (
	KindIdle Kind = iota
	KindHarvest
	KindMove
	KindInteract
	KindReplicate
	KindCreateArtifact
	KindRepairArtifact
	KindReadArtifact
)

// Concrete is a concretized action ready for resolution: the abstract
// behavior.Action plus whatever target it was bound to (spec §4.5
// "Action selection" concretization rules).
type Concrete struct {
	Kind           Kind
	TargetNode     ids.NodeID     // Move
	TargetEntity   ids.EntityID   // Interact, Replicate (partner)
	TargetArtifact ids.ArtifactID // RepairArtifact, ReadArtifact
	HasTarget      bool
}

// Concretize turns a sampled abstract action into a concrete, resolvable
// one, or falls back to Idle if no valid target exists (spec §4.5).
func Concretize(rng *prng.Source, g *space.Graph, entities *arena.EntityStore, artifacts *arena.ArtifactStore, self *arena.Entity, abstract behavior.Action, view perception.Result) Concrete {
	switch abstract {
	case behavior.ActionIdle:
		return Concrete{Kind: KindIdle}

	case behavior.ActionHarvest:
		return Concrete{Kind: KindHarvest}

	case behavior.ActionMoveToResource:
		if best, ok := bestNeighborByResource(view); ok {
			return Concrete{Kind: KindMove, TargetNode: best, HasTarget: true}
		}
		return Concrete{Kind: KindIdle}

	case behavior.ActionMoveToBeacon:
		if best, ok := bestNeighborByBeacon(view); ok {
			return Concrete{Kind: KindMove, TargetNode: best, HasTarget: true}
		}
		return Concrete{Kind: KindIdle}

	case behavior.ActionExplore:
		neighbors := g.GetNeighbors(self.NodeID)
		if len(neighbors) == 0 {
			return Concrete{Kind: KindIdle}
		}
		idx := rng.IntRange(0, len(neighbors)-1)
		return Concrete{Kind: KindMove, TargetNode: neighbors[idx], HasTarget: true}

	case behavior.ActionInteract:
		if len(view.CoEntities) == 0 {
			return Concrete{Kind: KindIdle}
		}
		idx := rng.IntRange(0, len(view.CoEntities)-1)
		return Concrete{Kind: KindInteract, TargetEntity: view.CoEntities[idx].ID, HasTarget: true}

	case behavior.ActionReplicate:
		return Concrete{Kind: KindReplicate}

	case behavior.ActionCreateArtifact:
		return Concrete{Kind: KindCreateArtifact}

	case behavior.ActionRepairArtifact:
		if len(view.CoArtifacts) == 0 {
			return Concrete{Kind: KindIdle}
		}
		worst := view.CoArtifacts[0]
		for _, a := range view.CoArtifacts[1:] {
			if a.Durability < worst.Durability {
				worst = a
			}
		}
		if worst.Durability >= 1.0 {
			// Nothing to repair; read it instead (spec §9 Open Question —
			// ReadArtifact has no dedicated softmax slot, so it rides the
			// RepairArtifact selection when the target needs no repair).
			return Concrete{Kind: KindReadArtifact, TargetArtifact: worst.ID, HasTarget: true}
		}
		return Concrete{Kind: KindRepairArtifact, TargetArtifact: worst.ID, HasTarget: true}

	default:
		return Concrete{Kind: KindIdle}
	}
}

func bestNeighborByResource(view perception.Result) (ids.NodeID, bool) {
	var best *perception.NodeView
	for i := range view.Neighbors {
		nb := &view.Neighbors[i]
		if best == nil {
			best = nb
			continue
		}
		if nb.Resources[ids.ResourceEnergy] > best.Resources[ids.ResourceEnergy] ||
			(nb.Resources[ids.ResourceEnergy] == best.Resources[ids.ResourceEnergy] && nb.NodeID < best.NodeID) {
			best = nb
		}
	}
	if best == nil {
		return 0, false
	}
	return best.NodeID, true
}

func bestNeighborByBeacon(view perception.Result) (ids.NodeID, bool) {
	var best *perception.NodeView
	for i := range view.Neighbors {
		nb := &view.Neighbors[i]
		if best == nil {
			best = nb
			continue
		}
		if nb.BeaconStrength > best.BeaconStrength ||
			(nb.BeaconStrength == best.BeaconStrength && nb.NodeID < best.NodeID) {
			best = nb
		}
	}
	if best == nil {
		return 0, false
	}
	return best.NodeID, true
}

// Costs holds the tunable energy costs consumed by resolvers (spec §4.6).
type Costs struct {
	Idle               float64
	HarvestBase        float64
	HarvestRequest     float64
	MoveBase           float64
	MoveDistanceFactor float64
	CreateArtifact     float64
	RepairAmount       float64
	ReadPrefixSize     int
}

// DefaultCosts returns the documented default action costs.
func DefaultCosts() Costs {
	return Costs{
		Idle:               0.2,
		HarvestBase:        0.1,
		HarvestRequest:     8,
		MoveBase:           0.5,
		MoveDistanceFactor: 0.1,
		CreateArtifact:     20,
		RepairAmount:       0.2,
		ReadPrefixSize:     16,
	}
}

// Outcome carries the engine-observable result of resolving one action, for
// the universe tick loop to translate into observation.Event records
// without this package depending on internal/observation.
type Outcome struct {
	Kind Kind
	Err  *simerr.ActionError

	Amount         float64
	FromNode       ids.NodeID
	ToNode         ids.NodeID
	TargetArtifact ids.ArtifactID
	AcquiredInfo   bool

	// ToolEffect records whether CreateArtifact's beacon-emission side
	// effect should fire (spec §9 Open Question 4; SPEC_FULL §4.C).
	ToolEffect bool
	// Similarity and KnowledgeBonusApplied are set by RepairArtifact for
	// the observation layer's optional knowledge-bonus stats.
	Similarity            float64
	KnowledgeBonusApplied bool
}

// SkillConfig toggles and scales the optional per-skill efficiency bonus
// (spec §9 Open Question 4: the off-state must be factor 1.0, never 0).
type SkillConfig struct {
	Enabled     bool
	Coefficient float64
}

// ToolConfig gates the two artifact-related bonus flags from spec §6's
// programmatic config (`toolEffectEnabled`, `knowledgeBonusEnabled`). Per
// spec §9 Open Question 4, disabling either must yield exactly a 1.0
// multiplicative factor, never zero. ToolEffectEnabled is the broader
// switch: when false, an artifact still mechanically exists (it can be
// created and its durability still restored by RepairArtifact) but
// repairing or creating one has none of the secondary effects that make
// artifacts "tools" — no knowledge acquisition into the repairer's state,
// no beacon emission from a freshly created artifact.
// KnowledgeBonusEnabled gates only the similarity-derived repair
// multiplier, independently of ToolEffectEnabled.
type ToolConfig struct {
	ToolEffectEnabled     bool
	KnowledgeBonusEnabled bool
}

// Resolve dispatches a Concrete action to its resolver (spec §4.6). g,
// entities, and artifacts are mutated in place; rng must be the single
// shared world source.
func Resolve(rng *prng.Source, g *space.Graph, entities *arena.EntityStore, artifacts *arena.ArtifactStore, self *arena.Entity, c Concrete, costs Costs, artifactCfg artifact.Config, skillCfg SkillConfig, toolCfg ToolConfig, tick uint64) Outcome {
	switch c.Kind {
	case KindIdle:
		return resolveIdle(self, costs)
	case KindHarvest:
		return resolveHarvest(g, self, costs, skillCfg)
	case KindMove:
		return resolveMove(g, self, c, costs)
	case KindCreateArtifact:
		return resolveCreateArtifact(artifacts, self, costs, artifactCfg, skillCfg, toolCfg, tick)
	case KindRepairArtifact:
		return resolveRepairArtifact(artifacts, self, c, costs, skillCfg, toolCfg)
	case KindReadArtifact:
		return resolveReadArtifact(artifacts, self, c, costs)
	default:
		return resolveIdle(self, costs)
	}
}

func resolveIdle(self *arena.Entity, costs Costs) Outcome {
	self.Energy -= costs.Idle
	return Outcome{Kind: KindIdle}
}

func resolveHarvest(g *space.Graph, self *arena.Entity, costs Costs, skillCfg SkillConfig) Outcome {
	node := g.GetNode(self.NodeID)
	available := node.Amount[ids.ResourceEnergy]
	room := self.MaxEnergy - self.Energy
	amount := costs.HarvestRequest
	if available < amount {
		amount = available
	}
	if room < amount {
		amount = room
	}
	if amount <= 0 {
		return Outcome{Kind: KindHarvest, Err: simerr.InsufficientEnergy(costs.HarvestRequest, available)}
	}

	bonus := skills.Bonus(self.State, skills.SkillHarvest, skillCfg.Coefficient, skillCfg.Enabled)
	amount *= bonus
	if amount > available {
		amount = available
	}
	if self.Energy+amount > self.MaxEnergy {
		amount = self.MaxEnergy - self.Energy
	}

	self.Energy -= costs.HarvestBase
	self.Energy += amount
	node.Amount[ids.ResourceEnergy] -= amount

	return Outcome{Kind: KindHarvest, Amount: amount}
}

func resolveMove(g *space.Graph, self *arena.Entity, c Concrete, costs Costs) Outcome {
	if !c.HasTarget {
		return resolveIdle(self, costs)
	}
	edge := g.GetEdgeBetween(self.NodeID, c.TargetNode)
	if edge == nil {
		self.Energy -= costs.Idle
		return Outcome{Kind: KindMove, Err: simerr.InvalidTarget("move target is not a neighbor")}
	}
	if edge.Durability <= 0 {
		self.Energy -= costs.Idle
		return Outcome{Kind: KindMove, Err: simerr.PathBlocked("edge durability exhausted")}
	}

	cost := costs.MoveBase + costs.MoveDistanceFactor*edge.Distance
	if self.Mass > 0 {
		cost *= self.Mass
	}
	self.Energy -= cost

	from := self.NodeID
	fromNode := g.GetNode(from)
	toNode := g.GetNode(c.TargetNode)
	delete(fromNode.EntityIDs, self.ID)
	toNode.EntityIDs[self.ID] = struct{}{}
	self.NodeID = c.TargetNode

	return Outcome{Kind: KindMove, FromNode: from, ToNode: c.TargetNode}
}

func resolveCreateArtifact(artifacts *arena.ArtifactStore, self *arena.Entity, costs Costs, cfg artifact.Config, skillCfg SkillConfig, toolCfg ToolConfig, tick uint64) Outcome {
	bonus := skills.Bonus(self.State, skills.SkillCreate, skillCfg.Coefficient, skillCfg.Enabled)
	effectiveCost := costs.CreateArtifact / bonus

	data := self.State.Bytes()
	if len(data) > cfg.MaxDataSize {
		data = data[:cfg.MaxDataSize]
	}

	a, err := artifact.Create(artifacts, self, effectiveCost, data, tick, cfg)
	if err != nil {
		if ae, ok := err.(*simerr.ActionError); ok {
			return Outcome{Kind: KindCreateArtifact, Err: ae}
		}
		return Outcome{Kind: KindCreateArtifact, Err: simerr.InvalidTarget(err.Error())}
	}
	return Outcome{Kind: KindCreateArtifact, TargetArtifact: a.ID, Amount: effectiveCost, ToolEffect: toolCfg.ToolEffectEnabled}
}

func resolveRepairArtifact(artifacts *arena.ArtifactStore, self *arena.Entity, c Concrete, costs Costs, skillCfg SkillConfig, toolCfg ToolConfig) Outcome {
	if !c.HasTarget {
		return resolveIdle(self, costs)
	}
	a := artifacts.Get(c.TargetArtifact)
	if a == nil {
		self.Energy -= costs.Idle
		return Outcome{Kind: KindRepairArtifact, Err: simerr.InvalidTarget("artifact no longer present")}
	}

	knowledgeBonus := 1.0
	var sim float64
	if toolCfg.KnowledgeBonusEnabled {
		sim = infotransfer.Similarity(self.State.Bytes(), a.Data)
		knowledgeBonus = infotransfer.KnowledgeBonus(sim)
	}
	skillBonus := skills.Bonus(self.State, skills.SkillRepair, skillCfg.Coefficient, skillCfg.Enabled)

	repairAmount := costs.RepairAmount * knowledgeBonus * skillBonus
	artifact.Repair(a, repairAmount, repairAmount)

	acquired := false
	if toolCfg.ToolEffectEnabled {
		infotransfer.Acquire(self.State, a.Data, costs.RepairAmount)
		acquired = true
	}

	return Outcome{Kind: KindRepairArtifact, TargetArtifact: a.ID, Amount: repairAmount, AcquiredInfo: acquired, Similarity: sim, KnowledgeBonusApplied: knowledgeBonus > 1.0}
}

func resolveReadArtifact(artifacts *arena.ArtifactStore, self *arena.Entity, c Concrete, costs Costs) Outcome {
	if !c.HasTarget {
		return resolveIdle(self, costs)
	}
	a := artifacts.Get(c.TargetArtifact)
	if a == nil {
		self.Energy -= costs.Idle
		return Outcome{Kind: KindReadArtifact, Err: simerr.InvalidTarget("artifact no longer present")}
	}
	n := costs.ReadPrefixSize
	if n > len(a.Data) {
		n = len(a.Data)
	}
	self.State.Append(a.Data[:n])
	return Outcome{Kind: KindReadArtifact, TargetArtifact: a.ID}
}
