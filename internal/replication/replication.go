// Package replication implements solo and partnered reproduction: energy
// split, behaviour inheritance, and information inheritance (spec §4.9
// "Replication engine").
package replication

import (
	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/infotransfer"
	"github.com/talgya/mini-world/internal/prng"
	"github.com/talgya/mini-world/internal/simerr"
	"github.com/talgya/mini-world/internal/statebuf"
)

// Config holds the replication engine's tunables.
type Config struct {
	EnergyCost         float64
	EnergyTransferRate float64
	CooperativeBonus   float64
	MutationRate       float64
	ChildStateCapacity int
	ChildMaxEnergy     float64
}

// DefaultConfig returns the documented default replication parameters.
func DefaultConfig() Config {
	return Config{
		EnergyCost:         20,
		EnergyTransferRate: 0.5,
		CooperativeBonus:   1.2,
		MutationRate:       0.05,
		ChildStateCapacity: statebuf.DefaultCapacity,
		ChildMaxEnergy:     100,
	}
}

// Solo performs single-parent reproduction (spec §4.9 "Solo"). Returns the
// newly allocated (but not yet arena-registered) child, or an error if the
// parent lacks sufficient energy.
func Solo(rng *prng.Source, parent *arena.Entity, cfg Config) (*arena.Entity, error) {
	if parent.Energy < cfg.EnergyCost {
		return nil, simerr.InsufficientEnergy(cfg.EnergyCost, parent.Energy)
	}

	parent.Energy -= cfg.EnergyCost
	childEnergy := parent.Energy * cfg.EnergyTransferRate
	parent.Energy -= childEnergy

	childState := statebuf.New(cfg.ChildStateCapacity)
	infotransfer.Inherit(rng, childState, parent.State, nil, cfg.MutationRate)

	child := &arena.Entity{
		NodeID:          parent.NodeID,
		Energy:          childEnergy,
		MaxEnergy:       cfg.ChildMaxEnergy,
		PerceptionRange: parent.PerceptionRange,
		State:           childState,
		Rule:            behavior.Inherit(rng, parent.Rule, cfg.MutationRate),
		Mass:            parent.Mass,
		Kind:            parent.Kind,
		Alive:           true,
	}
	return child, nil
}

// Partnered performs two-parent reproduction (spec §4.9 "Partnered"). Both
// parents must already be verified co-located by the caller.
func Partnered(rng *prng.Source, a, b *arena.Entity, cfg Config) (*arena.Entity, error) {
	half := cfg.EnergyCost / 2
	if a.Energy < half {
		return nil, simerr.InsufficientEnergy(half, a.Energy)
	}
	if b.Energy < half {
		return nil, simerr.InsufficientEnergy(half, b.Energy)
	}

	a.Energy -= half
	b.Energy -= half

	aDonation := a.Energy * cfg.EnergyTransferRate * cfg.CooperativeBonus / 2
	bDonation := b.Energy * cfg.EnergyTransferRate * cfg.CooperativeBonus / 2
	a.Energy -= aDonation
	b.Energy -= bDonation
	childEnergy := aDonation + bDonation

	childState := statebuf.New(cfg.ChildStateCapacity)
	infotransfer.Inherit(rng, childState, a.State, b.State, cfg.MutationRate)

	perceptionRange := a.PerceptionRange
	if b.PerceptionRange > perceptionRange {
		perceptionRange = b.PerceptionRange
	}

	child := &arena.Entity{
		NodeID:          a.NodeID,
		Energy:          childEnergy,
		MaxEnergy:       cfg.ChildMaxEnergy,
		PerceptionRange: perceptionRange,
		State:           childState,
		Rule:            behavior.InheritTwoParent(rng, a.Rule, b.Rule, cfg.MutationRate),
		Mass:            (a.Mass + b.Mass) / 2,
		Kind:            a.Kind,
		Alive:           true,
	}
	return child, nil
}

// PickPartner chooses a co-located partner for replication from the
// entities sharing self's node, preferring the lowest id for determinism
// when the caller has not already selected one via perception (spec §4.9
// "both parents must be co-located").
func PickPartner(entities *arena.EntityStore, self *arena.Entity, nodeEntityIDs map[ids.EntityID]struct{}) (*arena.Entity, bool) {
	var best *arena.Entity
	for eid := range nodeEntityIDs {
		if eid == self.ID {
			continue
		}
		other := entities.Get(eid)
		if other == nil || !other.Alive {
			continue
		}
		if best == nil || other.ID < best.ID {
			best = other
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}
