package universe

import (
	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/infotransfer"
	"github.com/talgya/mini-world/internal/observation"
)

// recordStats snapshots a fresh world with zeroed per-tick counters — used
// once at construction so GetStats() has something to return before the
// first Step (spec §6 "getStats()").
func (u *Universe) recordStats() {
	u.history.Record(u.buildStats(0, 0, 0))
}

// recordStatsWithCounts snapshots the world state at the end of a Step,
// folding in the counts accumulated while resolving this tick's actions
// (spec §4.16 "Stats aggregator records per-tick ... counts of
// interactions/replications/deaths this tick").
func (u *Universe) recordStatsWithCounts(interactionCount, replicationCount, deathCount int) {
	u.history.Record(u.buildStats(interactionCount, replicationCount, deathCount))
}

// buildStats walks the live arenas to compute the current Stats snapshot.
// The optional InformationTransfer/Knowledge sub-structs draw on counters
// accumulated over the tick just resolved (u.tickStats, reset at the top
// of Step) plus a bounded sample of live entity state for diversity, since
// exhaustive all-pairs comparison would be O(n^2) every tick (spec §6
// "informationTransfer" / "knowledge" sub-structs leave exact sampling
// unspecified).
func (u *Universe) buildStats(interactionCount, replicationCount, deathCount int) observation.Stats {
	entities := u.entities.All()

	spatial := make(map[ids.NodeID]int, len(entities))
	var totalEnergy, totalAge, totalFillRate float64
	for _, e := range entities {
		totalEnergy += e.Energy
		totalAge += float64(e.Age)
		spatial[e.NodeID]++
		if c := e.State.Capacity(); c > 0 {
			totalFillRate += float64(e.State.Len()) / float64(c)
		}
	}

	avgAge, avgFillRate := 0.0, 0.0
	if n := len(entities); n > 0 {
		avgAge = totalAge / float64(n)
		avgFillRate = totalFillRate / float64(n)
	}

	stats := observation.Stats{
		Tick:                uint64(u.tick),
		EntityCount:         len(entities),
		TotalEnergy:         totalEnergy,
		ArtifactCount:       u.artifacts.Len(),
		AverageAge:          avgAge,
		SpatialDistribution: spatial,
		InteractionCount:    interactionCount,
		ReplicationCount:    replicationCount,
		DeathCount:          deathCount,
		InformationTransfer: &observation.InformationTransferStats{
			ExchangeCount:    u.tickStats.exchangeCount,
			InheritanceCount: u.tickStats.inheritanceCount,
			AcquisitionCount: u.tickStats.acquisitionCount,
			Diversity:        diversitySample(entities),
			AvgStateFillRate: avgFillRate,
		},
		Knowledge: &observation.KnowledgeStats{
			BonusAppliedCount:   u.tickStats.knowledgeBonusCount,
			RepairCountThisTick: u.tickStats.repairCount,
			AvgSimilarity:       averageOf(u.tickStats.similaritySamples),
		},
	}

	return stats
}

// maxDiversityPairs bounds the all-pairs dissimilarity sample so a large
// population doesn't turn stats collection into an O(n^2) pass.
const maxDiversityPairs = 200

// diversitySample estimates mean pairwise state dissimilarity over a
// bounded prefix of the (id-sorted) live entity list.
func diversitySample(entities []*arena.Entity) float64 {
	n := len(entities)
	if n < 2 {
		return 0
	}
	var sum float64
	pairs := 0
	for i := 0; i < n && pairs < maxDiversityPairs; i++ {
		for j := i + 1; j < n && pairs < maxDiversityPairs; j++ {
			sum += 1 - infotransfer.Similarity(entities[i].State.Bytes(), entities[j].State.Bytes())
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

func averageOf(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}
