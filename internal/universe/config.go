// Package universe owns the tick pipeline: all arenas, the single shared
// RNG, and the ordered per-tick composition of perception, action
// resolution, interaction, replication, artifact maintenance, entropy, and
// regeneration (spec §4.15 "Universe (the tick pipeline)", §6 "External
// interfaces").
package universe

import (
	"github.com/talgya/mini-world/internal/action"
	"github.com/talgya/mini-world/internal/artifact"
	"github.com/talgya/mini-world/internal/entropy"
	"github.com/talgya/mini-world/internal/interaction"
	"github.com/talgya/mini-world/internal/perception"
	"github.com/talgya/mini-world/internal/replication"
	"github.com/talgya/mini-world/internal/worldgen"
)

// Config mirrors spec §6's enumerated programmatic API fields, plus the
// sub-configs each layer needs. Unspecified fields take DefaultConfig's
// documented defaults.
type Config struct {
	Seed uint32

	ResourceRegenerationRate float64
	ToolEffectEnabled        bool
	KnowledgeBonusEnabled    bool
	SkillBonusEnabled        bool
	SkillBonusCoefficient    float64

	WorldGen worldgen.Config

	ActionCosts       action.Costs
	ArtifactConfig    artifact.Config
	PerceptionConfig  perception.Config
	InteractionConfig interaction.Config
	ReplicationConfig replication.Config
	EntropyConfig     entropy.Config

	// SoftmaxTemperature scales action-selection softmax sharpness (spec
	// §4.5).
	SoftmaxTemperature float64

	// MaintainerDurationTicks is how long the RepairArtifact maintainer
	// flag stays set (spec §9 Open Question 2, resolved SPEC_FULL §4.C).
	MaintainerDurationTicks uint64

	// MassConversionRate scales the optional extra energy released to a
	// node's pool from a dead entity's mass (spec §4.6 "optional
	// mass·conversionRate").
	MassConversionRate float64

	// ReplicationSociality gates when a Replicate action attempts a
	// partnered reproduction instead of solo: both the actor and a
	// co-located candidate partner must have a cooperation gene above this
	// threshold (spec §4.9 names no automatic partner-selection policy;
	// this is the Open-Question resolution recorded in DESIGN.md).
	ReplicationSociality float64

	MaxEntityAge uint64 // 0 disables the optional age guardrail
}

// DefaultConfig returns documented defaults for unspecified fields (spec
// §6 "Unspecified fields take documented defaults"), following the
// teacher's `world.DefaultGenConfig()` pattern: a function returning a
// populated struct literal.
func DefaultConfig() Config {
	return Config{
		Seed:                     42,
		ResourceRegenerationRate: 0.02,
		ToolEffectEnabled:        true,
		KnowledgeBonusEnabled:    true,
		SkillBonusEnabled:        true,
		SkillBonusCoefficient:    1.0,

		WorldGen: worldgen.DefaultConfig(),

		ActionCosts:       action.DefaultCosts(),
		ArtifactConfig:    artifact.DefaultConfig(),
		PerceptionConfig:  perception.DefaultConfig(),
		InteractionConfig: interaction.DefaultConfig(),
		ReplicationConfig: replication.DefaultConfig(),
		EntropyConfig:     entropy.DefaultConfig(),

		SoftmaxTemperature:      1.0,
		MaintainerDurationTicks: 200,
		MassConversionRate:      0.5,
		ReplicationSociality:    0.5,
		MaxEntityAge:            0,
	}
}
