// Package interaction implements the co-located entity interaction engine:
// cooperative/competitive/neutral classification, energy transfer, and
// state-buffer data exchange (spec §4.8 "Interaction engine").
package interaction

import (
	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/prng"
)

// Class names the classification of an interaction (spec §4.8 step 3).
type Class uint8

const (
	Neutral Class = iota
	Cooperative
	Competitive
)

// Config holds the interaction engine's tunables.
type Config struct {
	NoiseRate               float64
	CooperationEfficiency   float64
	CompetitionTransferRate float64
	MaxDataExchangeSize     int
}

// DefaultConfig returns the documented default interaction parameters.
func DefaultConfig() Config {
	return Config{
		NoiseRate:               0.05,
		CooperationEfficiency:   1.0,
		CompetitionTransferRate: 0.1,
		MaxDataExchangeSize:     16,
	}
}

// Result carries everything the universe tick loop needs to emit the
// interaction (and optional partnerSelected) events.
type Result struct {
	Class         Class
	NoiseOccurred bool
	AEnergyDelta  float64
	BEnergyDelta  float64
	DataExchanged bool
}

// Resolve runs one A-initiates-on-B interaction (spec §4.8 steps 1-5). Both
// entities' Energy and State are mutated in place.
func Resolve(rng *prng.Source, a, b *arena.Entity, cfg Config) Result {
	noiseOccurred := rng.WithProbability(cfg.NoiseRate)

	coopScore := (a.Rule.Threshold(behavior.GeneCooperation) + b.Rule.Threshold(behavior.GeneCooperation)) / 2
	aggScore := (a.Rule.Threshold(behavior.GeneAggression) + b.Rule.Threshold(behavior.GeneAggression)) / 2

	var class Class
	switch {
	case coopScore > aggScore && coopScore > 0.5:
		class = Cooperative
	case aggScore > coopScore && aggScore > 0.5:
		class = Competitive
	default:
		class = Neutral
	}

	res := Result{Class: class, NoiseOccurred: noiseOccurred}

	switch class {
	case Cooperative:
		bonus := cfg.CooperationEfficiency
		if noiseOccurred {
			bonus *= rng.Float64()
		}
		res.AEnergyDelta = bonus
		res.BEnergyDelta = bonus

	case Competitive:
		transfer := min(a.Energy, b.Energy) * cfg.CompetitionTransferRate
		aPower := a.Energy * a.Rule.Threshold(behavior.GeneAggression)
		bPower := b.Energy * b.Rule.Threshold(behavior.GeneAggression)
		aWins := aPower >= bPower
		if noiseOccurred && rng.WithProbability(0.3) {
			aWins = !aWins
		}
		if aWins {
			res.AEnergyDelta = transfer
			res.BEnergyDelta = -transfer
		} else {
			res.AEnergyDelta = -transfer
			res.BEnergyDelta = transfer
		}

	default:
		exchange := rng.Float64()*2 - 1 // U[-1, 1)
		res.AEnergyDelta = exchange
		res.BEnergyDelta = -exchange
	}

	a.Energy += res.AEnergyDelta
	b.Energy += res.BEnergyDelta
	if a.Energy < 0 {
		a.Energy = 0
	}
	if b.Energy < 0 {
		b.Energy = 0
	}
	if a.Energy > a.MaxEnergy {
		a.Energy = a.MaxEnergy
	}
	if b.Energy > b.MaxEnergy {
		b.Energy = b.MaxEnergy
	}

	aDonation := donate(rng, a.State.Bytes(), cfg.MaxDataExchangeSize, noiseOccurred)
	bDonation := donate(rng, b.State.Bytes(), cfg.MaxDataExchangeSize, noiseOccurred)
	if len(aDonation) > 0 || len(bDonation) > 0 {
		b.State.Append(aDonation)
		a.State.Append(bDonation)
		res.DataExchanged = true
	}

	return res
}

// donate picks a length-bounded prefix of data, bit-mutating it under
// noise, to hand to the interaction partner (spec §4.8 step 5).
func donate(rng *prng.Source, data []byte, maxSize int, noiseOccurred bool) []byte {
	n := len(data)
	if n > maxSize {
		n = maxSize
	}
	if n == 0 {
		return nil
	}
	out := append([]byte(nil), data[:n]...)
	if noiseOccurred {
		out = rng.MutateBytes(out, 0.2)
	}
	return out
}
