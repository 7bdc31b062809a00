package regime

import (
	"testing"

	"github.com/talgya/mini-world/internal/observation"
	"github.com/talgya/mini-world/internal/universe"
)

func historyWithCounts(counts []int) *observation.History {
	h := observation.NewHistory()
	for _, c := range counts {
		h.Record(observation.Stats{EntityCount: c})
	}
	return h
}

func TestClassify_ExtinctionIsGrowthOrExtinction(t *testing.T) {
	h := historyWithCounts([]int{10, 5, 2, 0})
	if got := Classify(h, 4); got != RegimeGrowthOrExtinction {
		t.Fatalf("Classify(extinction) = %v, want RegimeGrowthOrExtinction", got)
	}
}

func TestClassify_ExplosiveGrowthIsGrowthOrExtinction(t *testing.T) {
	h := historyWithCounts([]int{5, 6, 8, 40})
	if got := Classify(h, 4); got != RegimeGrowthOrExtinction {
		t.Fatalf("Classify(growth) = %v, want RegimeGrowthOrExtinction", got)
	}
}

func TestClassify_ConstantSeriesIsStatic(t *testing.T) {
	counts := make([]int, 20)
	for i := range counts {
		counts[i] = 50
	}
	h := historyWithCounts(counts)
	if got := Classify(h, 10); got != RegimeStatic {
		t.Fatalf("Classify(constant) = %v, want RegimeStatic", got)
	}
}

func TestClassify_SmallSteadyPopulationIsSmallStable(t *testing.T) {
	counts := []int{10, 11, 10, 9, 10, 11, 10, 9, 10, 11}
	h := historyWithCounts(counts)
	if got := Classify(h, 10); got != RegimeSmallStable {
		t.Fatalf("Classify(small steady) = %v, want RegimeSmallStable", got)
	}
}

func TestClassify_LargeNoisyPopulationIsActive(t *testing.T) {
	counts := []int{100, 130, 90, 150, 80, 140, 95, 135, 85, 145}
	h := historyWithCounts(counts)
	if got := Classify(h, 10); got != RegimeActive {
		t.Fatalf("Classify(large noisy) = %v, want RegimeActive", got)
	}
}

func TestClassify_EmptyHistoryIsStatic(t *testing.T) {
	h := observation.NewHistory()
	if got := Classify(h, 10); got != RegimeStatic {
		t.Fatalf("Classify(empty) = %v, want RegimeStatic", got)
	}
}

func TestRegime_StringNamesEveryValue(t *testing.T) {
	for _, r := range []Regime{RegimeStatic, RegimeSmallStable, RegimeActive, RegimeGrowthOrExtinction} {
		if r.String() == "unknown" {
			t.Fatalf("Regime %d stringified to unknown", r)
		}
	}
}

func TestNewBatchTag_ProducesDistinctTags(t *testing.T) {
	a := NewBatchTag()
	b := NewBatchTag()
	if a == b {
		t.Fatalf("NewBatchTag produced identical tags: %q", a)
	}
}

func TestRunSweep_RunsEachPointIndependently(t *testing.T) {
	base := universe.DefaultConfig()
	base.WorldGen.NodeCount = 5
	base.WorldGen.InitialEntityCount = 5

	points := []SweepPoint{
		{Label: "a", Seed: 1},
		{Label: "b", Seed: 2},
	}

	results, err := RunSweep(base, points, 5, 5, "test-batch")
	if err != nil {
		t.Fatalf("RunSweep returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("RunSweep returned %d results, want 2", len(results))
	}
	for i, r := range results {
		if r.Ticks != 5 {
			t.Fatalf("result %d Ticks = %d, want 5", i, r.Ticks)
		}
		if r.BatchTag != "test-batch" {
			t.Fatalf("result %d BatchTag = %q, want test-batch", i, r.BatchTag)
		}
	}
}

func TestRunSweep_MutateAppliesOnTopOfBase(t *testing.T) {
	base := universe.DefaultConfig()
	base.WorldGen.NodeCount = 5
	base.WorldGen.InitialEntityCount = 3

	points := []SweepPoint{
		{Label: "mutated", Seed: 1, Mutate: func(cfg universe.Config) universe.Config {
			cfg.WorldGen.InitialEntityCount = 9
			return cfg
		}},
	}

	results, err := RunSweep(base, points, 1, 1, "tag")
	if err != nil {
		t.Fatalf("RunSweep returned error: %v", err)
	}
	if results[0].TerminalEntities < 3 {
		t.Fatalf("mutated sweep point did not reflect the larger initial entity count: %d", results[0].TerminalEntities)
	}
}
