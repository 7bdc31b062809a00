package interaction

import (
	"testing"

	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/prng"
	"github.com/talgya/mini-world/internal/statebuf"
)

func newPair(coopA, aggA, coopB, aggB float64) (*arena.Entity, *arena.Entity) {
	ra := &behavior.Rule{}
	ra.Thresholds[behavior.GeneCooperation] = coopA
	ra.Thresholds[behavior.GeneAggression] = aggA
	rb := &behavior.Rule{}
	rb.Thresholds[behavior.GeneCooperation] = coopB
	rb.Thresholds[behavior.GeneAggression] = aggB

	a := &arena.Entity{Energy: 10, MaxEnergy: 20, Rule: ra, State: statebuf.New(16)}
	b := &arena.Entity{Energy: 10, MaxEnergy: 20, Rule: rb, State: statebuf.New(16)}
	return a, b
}

func TestResolve_HighCooperationBothGainEnergy(t *testing.T) {
	a, b := newPair(1.0, 0, 1.0, 0)
	cfg := Config{CooperationEfficiency: 1.0, MaxDataExchangeSize: 8}

	res := Resolve(prng.New(1), a, b, cfg)
	if res.Class != Cooperative {
		t.Fatalf("class = %v, want Cooperative", res.Class)
	}
	if res.AEnergyDelta <= 0 || res.BEnergyDelta <= 0 {
		t.Fatalf("cooperative interaction did not grant energy to both: a=%v b=%v", res.AEnergyDelta, res.BEnergyDelta)
	}
}

func TestResolve_HighAggressionIsZeroSum(t *testing.T) {
	a, b := newPair(0, 1.0, 0, 1.0)
	cfg := Config{CompetitionTransferRate: 0.2, MaxDataExchangeSize: 8}

	res := Resolve(prng.New(2), a, b, cfg)
	if res.Class != Competitive {
		t.Fatalf("class = %v, want Competitive", res.Class)
	}
	if res.AEnergyDelta+res.BEnergyDelta != 0 {
		t.Fatalf("competitive transfer not zero-sum: a=%v b=%v", res.AEnergyDelta, res.BEnergyDelta)
	}
}

func TestResolve_EnergyNeverExceedsMaxOrGoesNegative(t *testing.T) {
	a, b := newPair(1.0, 0, 1.0, 0)
	a.Energy = 19.9
	b.Energy = 0
	cfg := Config{CooperationEfficiency: 5.0, MaxDataExchangeSize: 8}

	Resolve(prng.New(3), a, b, cfg)
	if a.Energy > a.MaxEnergy {
		t.Fatalf("a.Energy %v exceeded MaxEnergy %v", a.Energy, a.MaxEnergy)
	}
	if b.Energy < 0 {
		t.Fatalf("b.Energy went negative: %v", b.Energy)
	}
}

func TestResolve_NeutralClassWhenNeitherGeneDominates(t *testing.T) {
	a, b := newPair(0.1, 0.1, 0.1, 0.1)
	cfg := DefaultConfig()

	res := Resolve(prng.New(4), a, b, cfg)
	if res.Class != Neutral {
		t.Fatalf("class = %v, want Neutral", res.Class)
	}
}

func TestDonate_RespectsMaxSize(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	out := donate(prng.New(5), data, 3, false)
	if len(out) != 3 {
		t.Fatalf("donate length = %d, want 3", len(out))
	}
}

func TestDonate_EmptyInputReturnsNil(t *testing.T) {
	out := donate(prng.New(5), nil, 3, false)
	if out != nil {
		t.Fatalf("donate of empty input returned %v, want nil", out)
	}
}
