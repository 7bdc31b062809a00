// Package regime implements the parameter-sweep explorer: run many
// independent worlds across a seed and/or config sweep, classify each run's
// terminal trajectory, and persist the results (spec GLOSSARY "Regime";
// SPEC_FULL §4.C). Each swept run owns its own in-memory Universe; nothing
// here is consulted by the deterministic tick pipeline itself.
package regime

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/talgya/mini-world/internal/observation"
	"github.com/talgya/mini-world/internal/universe"
)

// Regime is a coarse classification of a run's terminal behavior.
type Regime int

const (
	RegimeStatic Regime = iota
	RegimeSmallStable
	RegimeActive
	RegimeGrowthOrExtinction
)

// String names a Regime.
func (r Regime) String() string {
	switch r {
	case RegimeStatic:
		return "static"
	case RegimeSmallStable:
		return "small_stable"
	case RegimeActive:
		return "active"
	case RegimeGrowthOrExtinction:
		return "growth_or_extinction"
	default:
		return "unknown"
	}
}

// smallStableMeanCeiling bounds how small a stable population must be to
// count as SmallStable rather than Active.
const smallStableMeanCeiling = 25

// Classify examines the trailing `window` ticks of h's entityCount series
// (falling back to the full history if shorter) and returns a coarse
// terminal-behavior label: extinction or unbounded growth, near-constant
// population (Static), a small population holding steady (SmallStable), or
// ongoing turnover (Active). Uses gonum/stat's Mean/StdDev rather than a
// hand-rolled variance loop, matching internal/observation's pattern.
func Classify(h *observation.History, window int) Regime {
	records := h.Records()
	n := len(records)
	if n == 0 {
		return RegimeStatic
	}

	latest := records[n-1]
	if latest.EntityCount == 0 {
		return RegimeGrowthOrExtinction
	}

	if window < 1 || n < window {
		window = n
	}
	tail := records[n-window:]

	counts := make([]float64, len(tail))
	for i, r := range tail {
		counts[i] = float64(r.EntityCount)
	}
	mean := stat.Mean(counts, nil)
	sd := stat.StdDev(counts, nil)

	first := float64(tail[0].EntityCount)
	last := float64(tail[len(tail)-1].EntityCount)
	growthRatio := 0.0
	if first > 0 {
		growthRatio = math.Abs(last-first) / first
	}

	relativeSpread := 0.0
	if mean > 0 {
		relativeSpread = sd / mean
	}

	switch {
	case growthRatio > 1.0:
		return RegimeGrowthOrExtinction
	case relativeSpread < 0.02:
		return RegimeStatic
	case mean <= smallStableMeanCeiling && relativeSpread < 0.15:
		return RegimeSmallStable
	default:
		return RegimeActive
	}
}

// SweepPoint is one point in a parameter sweep: a seed plus an optional
// config mutator applied on top of the sweep's base config. A nil Mutate
// leaves the base config untouched, so varying only Seed across points is
// just as valid a sweep as varying a numeric field.
type SweepPoint struct {
	Label  string
	Seed   uint32
	Mutate func(universe.Config) universe.Config
}

// RunResult is the outcome of one swept run, in the shape persisted by
// Store.
type RunResult struct {
	BatchTag         string
	Label            string
	Seed             uint32
	Ticks            uint64
	TerminalEntities int
	TerminalEnergy   float64
	Regime           Regime
}

// NewBatchTag returns a fresh, unique tag for grouping one sweep's rows in
// the persisted store. Batch identity is an external-facing label, not part
// of any run's tick determinism, so it is the one place in this module
// non-deterministic randomness (crypto/rand via uuid) is acceptable.
func NewBatchTag() string { return uuid.NewString() }

// RunSweep executes one independent run per SweepPoint against base,
// advancing each `ticks` steps and classifying its terminal trajectory over
// the trailing classifyWindow ticks (SPEC_FULL §4.C). Each run gets its own
// Universe and RNG; runs do not share state (spec §5 "no shared mutable
// state between worlds").
func RunSweep(base universe.Config, points []SweepPoint, ticks uint64, classifyWindow int, batchTag string) ([]RunResult, error) {
	results := make([]RunResult, 0, len(points))
	for _, p := range points {
		cfg := base
		cfg.Seed = p.Seed
		if p.Mutate != nil {
			cfg = p.Mutate(cfg)
		}

		u, err := universe.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("regime: sweep point %q: %w", p.Label, err)
		}
		for t := uint64(0); t < ticks; t++ {
			u.Step()
		}

		latest := u.GetStats()
		results = append(results, RunResult{
			BatchTag:         batchTag,
			Label:            p.Label,
			Seed:             p.Seed,
			Ticks:            u.Tick(),
			TerminalEntities: latest.EntityCount,
			TerminalEnergy:   latest.TotalEnergy,
			Regime:           Classify(u.History(), classifyWindow),
		})
	}
	return results, nil
}
