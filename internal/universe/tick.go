package universe

import (
	"github.com/talgya/mini-world/internal/action"
	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/entropy"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/interaction"
	"github.com/talgya/mini-world/internal/observation"
	"github.com/talgya/mini-world/internal/perception"
	"github.com/talgya/mini-world/internal/replication"
	"github.com/talgya/mini-world/internal/simerr"
	"github.com/talgya/mini-world/internal/space"
)

// beaconBoostOnCreate is how much a freshly created artifact adds to its
// node's beacon field (spec §9 Open Question 2, resolved SPEC_FULL §4.C).
const beaconBoostOnCreate = 1.0

// tickStatsAccumulator collects the optional information-transfer and
// knowledge-bonus counters (spec §6 "informationTransfer" / "knowledge"
// sub-structs) over the course of one Step, reset at its start.
type tickStatsAccumulator struct {
	exchangeCount       int
	inheritanceCount    int
	acquisitionCount    int
	knowledgeBonusCount int
	repairCount         int
	similaritySamples   []float64
}

// Step advances the simulation by exactly one tick, in the fixed order
// spec §4.15 requires (spec §8 property 6: currentTick strictly increases
// by 1 per step()).
func (u *Universe) Step() {
	u.tickStats = tickStatsAccumulator{}
	u.drainTransit()

	var interactionCount, replicationCount, deathCount int

	for _, id := range u.entities.SortedIDs() {
		self := u.entities.Get(id)
		if self == nil || !self.Alive {
			continue
		}

		self.Age++
		if self.IsMaintainer && uint64(u.tick) >= self.MaintainerUntilTick {
			self.IsMaintainer = false
		}

		effectiveRange := self.PerceptionRange
		if self.IsMaintainer {
			effectiveRange++
		}
		savedRange := self.PerceptionRange
		self.PerceptionRange = effectiveRange

		view := perception.Perceive(u.rng, u.graph, u.entities, u.artifacts, self, u.cfg.PerceptionConfig)
		self.PerceptionRange = savedRange

		fv := perception.ToFeatureVector(view, self)
		scores := self.Rule.Score(fv)
		abstract := behavior.Sample(u.rng, scores, u.cfg.SoftmaxTemperature)
		concrete := action.Concretize(u.rng, u.graph, u.entities, u.artifacts, self, abstract, view)

		switch concrete.Kind {
		case action.KindInteract:
			if concrete.HasTarget {
				partner := u.entities.Get(concrete.TargetEntity)
				if partner != nil && partner.Alive && partner.NodeID == self.NodeID {
					u.resolveInteract(self, partner)
					interactionCount++
				}
			}

		case action.KindReplicate:
			if u.resolveReplicate(self) {
				replicationCount++
			}

		default:
			toolCfg := action.ToolConfig{ToolEffectEnabled: u.cfg.ToolEffectEnabled, KnowledgeBonusEnabled: u.cfg.KnowledgeBonusEnabled}
			outcome := action.Resolve(u.rng, u.graph, u.entities, u.artifacts, self, concrete, u.cfg.ActionCosts, u.cfg.ArtifactConfig, action.SkillConfig{Enabled: u.cfg.SkillBonusEnabled, Coefficient: u.cfg.SkillBonusCoefficient}, toolCfg, uint64(u.tick))
			u.emitActionEvent(self, outcome)
		}

		if u.checkDeath(self) {
			deathCount++
		}
	}

	artifactResult := u.applyEntropy()
	for _, aid := range artifactResult.DecayedArtifacts {
		u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.ArtifactDecayed, ArtifactID: aid})
	}

	// A second death sweep catches entities the entropy pass's maintenance
	// cost pushed to zero or below (spec §4.15 step 3 runs before step 4,
	// but maintenance cost in step 4 can itself cause death; this mirrors
	// §4.6's "after resolution, if energy <= 0, mark it dead" applied to
	// every pipeline stage that spends entity energy).
	for _, e := range u.entities.All() {
		if u.checkDeath(e) {
			deathCount++
		}
	}

	u.applyRegeneration()

	u.tick++

	u.recordStatsWithCounts(interactionCount, replicationCount, deathCount)
}

func (u *Universe) emitActionEvent(self *arena.Entity, outcome action.Outcome) {
	switch outcome.Kind {
	case action.KindHarvest:
		if outcome.Err == nil {
			u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.Harvest, EntityID: self.ID, NodeID: self.NodeID, Amount: outcome.Amount})
		}
	case action.KindMove:
		if outcome.Err == nil {
			u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.EntityMoved, EntityID: self.ID, FromNode: outcome.FromNode, ToNode: outcome.ToNode})
		}
	case action.KindCreateArtifact:
		if outcome.Err == nil {
			u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.ArtifactCreated, EntityID: self.ID, ArtifactID: outcome.TargetArtifact, NodeID: self.NodeID, Amount: outcome.Amount})
			node := u.graph.GetNode(self.NodeID)
			node.ArtifactIDs[outcome.TargetArtifact] = struct{}{}
			if outcome.ToolEffect {
				node.BeaconStrength += beaconBoostOnCreate
			}
		}
	case action.KindRepairArtifact:
		if outcome.Err == nil {
			u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.InformationAcquisition, EntityID: self.ID, ArtifactID: outcome.TargetArtifact, Amount: outcome.Amount})
			self.IsMaintainer = true
			self.MaintainerUntilTick = uint64(u.tick) + u.cfg.MaintainerDurationTicks

			u.tickStats.repairCount++
			if outcome.AcquiredInfo {
				u.tickStats.acquisitionCount++
			}
			if outcome.KnowledgeBonusApplied {
				u.tickStats.knowledgeBonusCount++
			}
			u.tickStats.similaritySamples = append(u.tickStats.similaritySamples, outcome.Similarity)
		}
	case action.KindReadArtifact:
		// Cheap read; no event per spec §4.16's event kind list (reads are
		// observable via the state buffer itself, not the log).
	}

	if outcome.Err != nil && outcome.Err.Kind == simerr.KindInvalidTarget {
		u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.GuardrailIntervention, EntityID: self.ID, Reason: outcome.Err.Error()})
	}
}

func (u *Universe) resolveInteract(a, b *arena.Entity) {
	res := interaction.Resolve(u.rng, a, b, u.cfg.InteractionConfig)
	u.log.Append(observation.Event{
		Tick: uint64(u.tick), Kind: observation.Interaction,
		EntityID: a.ID, OtherEntityID: b.ID,
		NoiseOccurred: res.NoiseOccurred,
		Cooperative:   res.Class == interaction.Cooperative,
		Amount:        res.AEnergyDelta,
	})
	if res.DataExchanged {
		u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.InformationExchange, EntityID: a.ID, OtherEntityID: b.ID})
		u.tickStats.exchangeCount++
	}
}

// resolveReplicate attempts partnered reproduction with a co-located,
// sufficiently cooperative partner; otherwise falls back to solo (spec
// §4.9; partner-selection policy is this package's Open-Question
// resolution, recorded in DESIGN.md).
func (u *Universe) resolveReplicate(self *arena.Entity) bool {
	node := u.graph.GetNode(self.NodeID)

	if self.Rule.Threshold(behavior.GeneCooperation) > u.cfg.ReplicationSociality {
		if partner, ok := replication.PickPartner(u.entities, self, node.EntityIDs); ok {
			if partner.Rule.Threshold(behavior.GeneCooperation) > u.cfg.ReplicationSociality {
				u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.PartnerSelected, EntityID: self.ID, OtherEntityID: partner.ID})
				child, err := replication.Partnered(u.rng, self, partner, u.cfg.ReplicationConfig)
				if err == nil {
					u.registerEntity(child)
					u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.Replication, EntityID: self.ID, OtherEntityID: partner.ID})
					u.tickStats.inheritanceCount++
					return true
				}
			}
		}
	}

	child, err := replication.Solo(u.rng, self, u.cfg.ReplicationConfig)
	if err != nil {
		return false
	}
	u.registerEntity(child)
	u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.Replication, EntityID: self.ID})
	u.tickStats.inheritanceCount++
	return true
}

// checkDeath removes e from its node and the arena if its energy has
// reached zero or below, releasing its energy (and optional mass-derived
// bonus) back to the node's energy pool (spec §4.6 "on death").
func (u *Universe) checkDeath(e *arena.Entity) bool {
	if !e.Alive || e.Energy > 0 {
		if u.cfg.MaxEntityAge > 0 && e.Alive && e.Age > u.cfg.MaxEntityAge {
			e.Energy = 0
		} else {
			return false
		}
	}

	e.Alive = false
	node := u.graph.GetNode(e.NodeID)
	delete(node.EntityIDs, e.ID)
	u.entities.Remove(e.ID)

	released := e.Energy
	if e.Mass > 0 {
		released += e.Mass * u.cfg.MassConversionRate
	}
	node.Amount[ids.ResourceEnergy] += released

	u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.EntityDied, EntityID: e.ID, NodeID: e.NodeID})
	return true
}

// drainTransit applies any in-transit edge item whose arrival tick has
// passed (spec §4.7 "Transit"). The current Move resolver moves entities
// instantly rather than enqueuing (spec §9 Open Question 1's locked
// policy), so this only matters for resource/data payloads a future
// extension might enqueue; it is still run every tick so the invariant
// "arrivalAtTick >= departedAtTick" is enforced uniformly.
func (u *Universe) drainTransit() {
	for _, e := range u.graph.AllEdges() {
		if len(e.InTransit) == 0 {
			continue
		}
		var remaining []space.TransitItem
		for _, item := range e.InTransit {
			if item.ArrivalAtTick > uint64(u.tick) {
				remaining = append(remaining, item)
				continue
			}
			u.applyArrival(item)
		}
		e.InTransit = remaining
	}
}

func (u *Universe) applyArrival(item space.TransitItem) {
	switch item.Kind {
	case space.TransitEntity:
		if ent := u.entities.Get(item.EntityPayload); ent != nil && ent.Alive {
			fromNode := u.graph.GetNode(ent.NodeID)
			delete(fromNode.EntityIDs, ent.ID)
			toNode := u.graph.GetNode(item.To)
			toNode.EntityIDs[ent.ID] = struct{}{}
			ent.NodeID = item.To
		}
	case space.TransitResource:
		if node := u.graph.GetNode(item.To); node != nil {
			node.Amount[ids.ResourceEnergy] += item.ResourcePayload
		}
	}
}

// applyEntropy runs the entropy/maintenance pass (spec §4.13 "Entropy
// engine") over every entity, artifact, and edge in the world.
func (u *Universe) applyEntropy() entropy.Result {
	return entropy.Apply(u.rng, u.graph, u.entities, u.artifacts, u.cfg.ArtifactConfig, u.cfg.EntropyConfig)
}

// applyRegeneration regenerates every node's resources toward capacity
// (spec §4.14 "Regeneration"): `amount += (capacity - amount) * rate`,
// clamped at capacity. The single configured ResourceRegenerationRate
// applies uniformly to every resource kind a node carries — spec §4.14
// allows "other resources follow the same rule with their own rate if
// configured", and SPEC_FULL's Config carries no per-kind rate map, so the
// one configured rate is that documented default for every kind.
func (u *Universe) applyRegeneration() {
	rate := u.cfg.ResourceRegenerationRate
	for _, nodeID := range u.graph.AllNodeIDs() {
		node := u.graph.GetNode(nodeID)
		for kind, capAmt := range node.Capacity {
			amt := node.Amount[kind] + (capAmt-node.Amount[kind])*rate
			if amt > capAmt {
				amt = capAmt
			}
			node.Amount[kind] = amt
		}
	}
}
