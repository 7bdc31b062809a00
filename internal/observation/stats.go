package observation

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/maps"
	"gonum.org/v1/gonum/stat"

	"github.com/talgya/mini-world/internal/ids"
)

// InformationTransferStats is the optional information-transfer sub-struct
// of Stats (spec §6 "getStats()").
type InformationTransferStats struct {
	ExchangeCount    int
	InheritanceCount int
	AcquisitionCount int
	Diversity        float64 // mean pairwise dissimilarity across live entity states, sampled
	AvgStateFillRate float64 // mean of (state length / state capacity) across live entities
}

// KnowledgeStats is the optional knowledge-bonus sub-struct of Stats.
type KnowledgeStats struct {
	BonusAppliedCount   int
	RepairCountThisTick int
	AvgSimilarity       float64
}

// Stats is the per-tick snapshot returned by Universe.GetStats (spec §6
// "SimulationStats").
type Stats struct {
	Tick                uint64
	EntityCount         int
	TotalEnergy         float64
	ArtifactCount       int
	AverageAge          float64
	SpatialDistribution map[ids.NodeID]int

	InteractionCount int
	ReplicationCount int
	DeathCount       int

	InformationTransfer *InformationTransferStats
	Knowledge           *KnowledgeStats
}

// String renders a compact, human-facing summary line using go-humanize for
// the operator-facing log/CLI path — never inside deterministic computation
// (spec §4.A "Logging").
func (s Stats) String() string {
	return fmt.Sprintf("tick=%s entities=%s energy=%s artifacts=%s avgAge=%s",
		humanize.Comma(int64(s.Tick)),
		humanize.Comma(int64(s.EntityCount)),
		humanize.FormatFloat("#,###.##", s.TotalEnergy),
		humanize.Comma(int64(s.ArtifactCount)),
		humanize.FormatFloat("#,###.##", s.AverageAge),
	)
}

// History accumulates the per-tick Stats time series consumed by the
// pattern detectors below.
type History struct {
	records []Stats
}

// NewHistory creates an empty stats history.
func NewHistory() *History { return &History{} }

// Record appends s to the history.
func (h *History) Record(s Stats) { h.records = append(h.records, s) }

// Len returns the number of recorded ticks.
func (h *History) Len() int { return len(h.records) }

// Latest returns the most recently recorded Stats, or the zero value if
// empty.
func (h *History) Latest() Stats {
	if len(h.records) == 0 {
		return Stats{}
	}
	return h.records[len(h.records)-1]
}

// Records returns every recorded Stats snapshot in tick order. The returned
// slice aliases internal storage and must not be mutated by the caller.
func (h *History) Records() []Stats { return h.records }

// entityCountSeries extracts the entityCount time series as float64 for
// gonum consumption.
func (h *History) entityCountSeries() []float64 {
	out := make([]float64, len(h.records))
	for i, r := range h.records {
		out[i] = float64(r.EntityCount)
	}
	return out
}

// DetectClusters returns the node ids whose current entity count is at or
// above threshold, sorted ascending — a simple spatial-concentration
// detector (spec §4.16 "cluster detection").
func DetectClusters(latest Stats, threshold int) []ids.NodeID {
	nodeIDs := maps.Keys(latest.SpatialDistribution)
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	var out []ids.NodeID
	for _, nodeID := range nodeIDs {
		if latest.SpatialDistribution[nodeID] >= threshold {
			out = append(out, nodeID)
		}
	}
	return out
}

// PeriodicityResult reports the outcome of an autocorrelation scan.
type PeriodicityResult struct {
	Found    bool
	Period   int
	Strength float64 // autocorrelation coefficient at Period
}

// DetectPeriodicity scans lags [1, maxLag] of the entityCount time series
// for the strongest normalized lagged autocorrelation, using
// gonum.org/v1/gonum/stat's Mean/StdDev/Covariance rather than a hand-rolled
// variance loop (spec §4.16 "auto-correlation-based periodicity detection").
// Reports not-found if fewer than 2*maxLag samples are available or the
// series has near-zero variance (constant population).
func DetectPeriodicity(h *History, maxLag int) PeriodicityResult {
	series := h.entityCountSeries()
	n := len(series)
	if maxLag < 1 || n < maxLag*2 {
		return PeriodicityResult{}
	}

	sd := stat.StdDev(series, nil)
	if sd < 1e-9 {
		return PeriodicityResult{}
	}

	best := PeriodicityResult{}
	for lag := 1; lag <= maxLag; lag++ {
		x := series[:n-lag]
		y := series[lag:]
		meanX := stat.Mean(x, nil)
		meanY := stat.Mean(y, nil)
		cov := stat.Covariance(x, y, nil)
		_ = meanX
		_ = meanY
		coeff := cov / (sd * sd)
		if !best.Found || coeff > best.Strength {
			best = PeriodicityResult{Found: true, Period: lag, Strength: coeff}
		}
	}

	// Only report genuine periodic structure, not incidental noise.
	if best.Strength < 0.3 {
		return PeriodicityResult{}
	}
	return best
}

// Trend names the rolling-window direction of the entityCount series.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

// String names a Trend.
func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	default:
		return "flat"
	}
}

// TrendDirection compares the mean of the last `window` samples against the
// mean of the `window` samples before that, using gonum/stat's Mean (spec
// §4.16 "rolling-window trend direction").
func TrendDirection(h *History, window int) Trend {
	series := h.entityCountSeries()
	n := len(series)
	if window < 1 || n < window*2 {
		return TrendFlat
	}
	recent := stat.Mean(series[n-window:], nil)
	prior := stat.Mean(series[n-2*window:n-window], nil)
	if prior == 0 {
		return TrendFlat
	}
	delta := (recent - prior) / prior
	switch {
	case delta > 0.02:
		return TrendUp
	case delta < -0.02:
		return TrendDown
	default:
		return TrendFlat
	}
}
