// Package behavior implements BehaviorRule: the threshold-gene vector and
// feature×action weight matrix every entity carries, and the softmax action
// scoring that turns a feature vector into a sampled action (spec §3
// "BehaviorRule", §4.5 "Action selection").
package behavior

import (
	"math"

	"github.com/talgya/mini-world/internal/prng"
)

// Action enumerates the abstract actions a BehaviorRule can score.
type Action uint8

const (
	ActionIdle Action = iota
	ActionHarvest
	ActionMoveToResource
	ActionMoveToBeacon
	ActionExplore
	ActionInteract
	ActionReplicate
	ActionCreateArtifact
	ActionRepairArtifact
)

// NumActions is the width of the weight matrix's action axis.
const NumActions = int(ActionRepairArtifact) + 1

// NumFeatures is the length of the feature vector BehaviorRule scores
// against (spec §4.4: 8 scalar/flag features + 4 state-derived + bias).
const NumFeatures = 13

// NumGenes is the length of the threshold gene vector (spec §3).
const NumGenes = 8

// Gene indexes into the threshold vector, named per spec §3.
const (
	GeneHunger GeneIndex = iota
	GeneSociality
	GeneExploration
	GeneReplicationThreshold
	GeneAggression
	GeneCooperation
	GeneArtifactCreation
	GeneMoveSpeed
)

// GeneIndex names a threshold gene slot.
type GeneIndex int

// FeatureVector is the 13-element perception-derived input to scoring.
type FeatureVector [NumFeatures]float64

// WeightMatrix is the 13x9 feature×action scoring matrix (117 unconstrained
// reals, spec §3).
type WeightMatrix [NumFeatures][NumActions]float64

// Rule is a per-entity BehaviorRule: threshold genes + weight matrix.
type Rule struct {
	Thresholds [NumGenes]float64
	Weights    WeightMatrix
}

// clampGene clamps a threshold gene to [0, 1] (spec §3 invariant).
func clampGene(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Threshold returns the value of a named threshold gene.
func (r *Rule) Threshold(g GeneIndex) float64 {
	return r.Thresholds[g]
}

// Baseline returns a BehaviorRule whose weights favor sensible newborn
// conduct (spec §4.3): harvest when low on energy and resources are
// plentiful, move toward resources when they are not local, replicate at
// high energy, with idle and artifact-creation strongly disfavored outside
// extremes. rng supplies both the threshold genes and the small Gaussian
// jitter applied to every weight so siblings differ.
func Baseline(rng *prng.Source) *Rule {
	r := &Rule{}
	for i := range r.Thresholds {
		r.Thresholds[i] = rng.Float64()
	}

	w := &r.Weights
	// Feature indices, per spec §4.4's fixed ordering.
	const (
		fSelfEnergy = iota
		fNodeResource
		fNeighborResource
		fNearbyEntities
		fBeacon
		fNeighborBeacon
		fDamagedArtifact
		fIsMaintainer
		fState0
		fState1
		fState2
		fState3
		fBias
	)

	// Harvest: favored when self-energy is low and node resources high.
	w[fSelfEnergy][ActionHarvest] = -2.0
	w[fNodeResource][ActionHarvest] = 2.0

	// MoveToResource: favored when node resources are low but a neighbor
	// has more.
	w[fNodeResource][ActionMoveToResource] = -1.5
	w[fNeighborResource][ActionMoveToResource] = 1.5

	// MoveToBeacon: mirrors MoveToResource but on the beacon field.
	w[fNeighborBeacon][ActionMoveToBeacon] = 1.2
	w[fBeacon][ActionMoveToBeacon] = -0.3

	// Replicate: favored at high self-energy.
	w[fSelfEnergy][ActionReplicate] = 2.0

	// Interact: favored with more co-located entities around.
	w[fNearbyEntities][ActionInteract] = 1.0

	// RepairArtifact: favored when a damaged artifact is present.
	w[fDamagedArtifact][ActionRepairArtifact] = 1.8

	// CreateArtifact and Idle fire only in extremes — strong negative bias.
	w[fBias][ActionCreateArtifact] = -3.0
	w[fBias][ActionIdle] = -3.0

	// Explore gets a small constant bias so it is occasionally sampled.
	w[fBias][ActionExplore] = -0.5

	for f := 0; f < NumFeatures; f++ {
		for a := 0; a < NumActions; a++ {
			w[f][a] += rng.Normal(0, 0.15)
		}
	}

	return r
}

// Score computes the raw (pre-softmax) scores for every action given a
// feature vector: scores = weightMatrix · featureVector.
func (r *Rule) Score(fv FeatureVector) [NumActions]float64 {
	var scores [NumActions]float64
	for f := 0; f < NumFeatures; f++ {
		for a := 0; a < NumActions; a++ {
			scores[a] += r.Weights[f][a] * fv[f]
		}
	}
	return scores
}

// Sample applies a temperature-scaled softmax to scores and draws an action
// from the resulting distribution by CDF inversion through rng (spec
// §4.5). temperature must be > 0; lower values sharpen the distribution.
func Sample(rng *prng.Source, scores [NumActions]float64, temperature float64) Action {
	if temperature <= 0 {
		temperature = 1.0
	}

	max := scores[0]
	for _, s := range scores {
		if s > max {
			max = s
		}
	}

	var exps [NumActions]float64
	var sum float64
	for i, s := range scores {
		exps[i] = math.Exp((s - max) / temperature)
		sum += exps[i]
	}

	target := rng.Float64() * sum
	var cdf float64
	for i, e := range exps {
		cdf += e
		if target <= cdf {
			return Action(i)
		}
	}
	return Action(NumActions - 1)
}

// Inherit produces a child Rule from a single parent: copy thresholds and
// weights, then apply a per-gene Gaussian mutation with probability
// mutationRate (spec §3 "single-parent applies per-gene Gaussian mutation").
func Inherit(rng *prng.Source, parent *Rule, mutationRate float64) *Rule {
	child := &Rule{Thresholds: parent.Thresholds, Weights: parent.Weights}
	mutateGenes(rng, child, mutationRate)
	return child
}

// InheritTwoParent produces a child Rule via crossover: each gene (both
// threshold and weight) is drawn uniformly from either parent, then
// mutated with probability mutationRate (spec §3 "two-parent draws each
// gene uniformly from either parent then mutates").
func InheritTwoParent(rng *prng.Source, a, b *Rule, mutationRate float64) *Rule {
	child := &Rule{}
	for i := range child.Thresholds {
		if rng.WithProbability(0.5) {
			child.Thresholds[i] = a.Thresholds[i]
		} else {
			child.Thresholds[i] = b.Thresholds[i]
		}
	}
	for f := 0; f < NumFeatures; f++ {
		for act := 0; act < NumActions; act++ {
			if rng.WithProbability(0.5) {
				child.Weights[f][act] = a.Weights[f][act]
			} else {
				child.Weights[f][act] = b.Weights[f][act]
			}
		}
	}
	mutateGenes(rng, child, mutationRate)
	return child
}

func mutateGenes(rng *prng.Source, r *Rule, mutationRate float64) {
	for i := range r.Thresholds {
		if rng.WithProbability(mutationRate) {
			r.Thresholds[i] = clampGene(r.Thresholds[i] + rng.Normal(0, 0.1))
		}
	}
	for f := 0; f < NumFeatures; f++ {
		for a := 0; a < NumActions; a++ {
			if rng.WithProbability(mutationRate) {
				r.Weights[f][a] += rng.Normal(0, 0.3)
			}
		}
	}
}
