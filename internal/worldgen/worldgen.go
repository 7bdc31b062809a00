// Package worldgen builds a connected spatial graph and seeds its initial
// entity population deterministically from a seed and config (spec §4.3
// "World generator"). Layout noise (for spatially-coherent temperature and disaster rate) is
// sampled from github.com/ojrac/opensimplex-go, seeded directly from the
// config seed — noise lookups are a pure function of (seed, coordinate)
// and never consume the shared prng.Source draw sequence, so they cannot
// perturb the fixed order of stochastic decisions spec §4.1 requires.
package worldgen

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/prng"
	"github.com/talgya/mini-world/internal/space"
	"github.com/talgya/mini-world/internal/statebuf"
)

// Config holds world generation parameters (spec §6 "worldGen").
type Config struct {
	NodeCount          int
	InitialEntityCount int
	EdgeDensity        float64 // target fraction of N(N-1)/2 possible edges
	MaxTypes           int     // number of resource kinds beyond ResourceEnergy to seed

	StateCapacity    int
	DefaultMaxEnergy float64
}

// DefaultConfig returns documented defaults for unspecified fields (spec
// §6 "Unspecified fields take documented defaults").
func DefaultConfig() Config {
	return Config{
		NodeCount:          30,
		InitialEntityCount: 50,
		EdgeDensity:        0.3,
		MaxTypes:           int(ids.NumResourceKinds) - 1,
		StateCapacity:      statebuf.DefaultCapacity,
		DefaultMaxEnergy:   100,
	}
}

// Generate builds the graph and initial entities (spec §4.3 steps 1–4).
// rng is the single shared world RNG — every random draw here is threaded
// through it in the documented fixed order: node attributes, then spanning
// connectivity, then extra edges, then entity placement/energy/genes.
func Generate(rng *prng.Source, seed uint32, cfg Config) (*space.Graph, []*arena.Entity) {
	g := space.NewGraph()

	elevNoise := opensimplex.NewNormalized(int64(seed))
	tempNoise := opensimplex.NewNormalized(int64(seed) + 1)

	// Step 1: create N nodes with sampled static attributes.
	coords := make(map[ids.NodeID][2]float64, cfg.NodeCount)
	for i := 0; i < cfg.NodeCount; i++ {
		n := g.AddNode()

		// Synthetic layout coordinate for noise sampling only — the graph
		// itself carries no positional semantics (spec's Node has none).
		x, y := spiralCoord(i)
		coords[n.ID] = [2]float64{x, y}

		n.Terrain = ids.Terrain(rng.IntRange(0, ids.NumTerrains-1))

		bias := (elevNoise.Eval2(x*0.15, y*0.15) - 0.5) * 20
		n.Temperature = rng.ClampNormal(bias, 15, -50, 50)

		tempFieldBias := tempNoise.Eval2(x*0.12, y*0.12)
		n.DisasterRate = rng.ClampNormal(0.05+tempFieldBias*0.05, 0.05, 0, 1)

		const noUpperBound = 1e9
		n.Capacity[ids.ResourceEnergy] = rng.ClampNormal(100, 30, 0, noUpperBound)
		for k := 1; k <= cfg.MaxTypes && k < ids.NumResourceKinds; k++ {
			n.Capacity[ids.ResourceKind(k)] = rng.ClampNormal(50, 20, 0, noUpperBound)
		}
		for k := 0; k < int(ids.NumResourceKinds); k++ {
			kind := ids.ResourceKind(k)
			capAmt, ok := n.Capacity[kind]
			if !ok {
				continue
			}
			frac := 0.5 + rng.Float64()*0.5
			n.Amount[kind] = capAmt * frac
		}
	}

	nodeIDs := g.AllNodeIDs()

	// Step 2: spanning connectivity — while some node is unreached, pick a
	// random reached node A and a random unreached node B, add edge A↔B.
	if len(nodeIDs) > 0 {
		reached := []ids.NodeID{nodeIDs[0]}
		unreached := append([]ids.NodeID(nil), nodeIDs[1:]...)

		for len(unreached) > 0 {
			a := reached[rng.IntRange(0, len(reached)-1)]
			bi := rng.IntRange(0, len(unreached)-1)
			b := unreached[bi]

			addGraphEdge(rng, g, a, b)

			reached = append(reached, b)
			unreached = append(unreached[:bi], unreached[bi+1:]...)
		}
	}

	// Step 3: add extra edges until total ~= edgeDensity * N(N-1)/2,
	// skipping self-loops and duplicates.
	n := len(nodeIDs)
	targetEdges := int(cfg.EdgeDensity * float64(n*(n-1)) / 2)
	currentEdges := len(g.AllEdges())
	attempts := 0
	maxAttempts := targetEdges * 20
	if maxAttempts < 100 {
		maxAttempts = 100
	}
	for currentEdges < targetEdges && attempts < maxAttempts && n > 1 {
		attempts++
		a := nodeIDs[rng.IntRange(0, n-1)]
		b := nodeIDs[rng.IntRange(0, n-1)]
		if a == b {
			continue
		}
		if g.GetEdgeBetween(a, b) != nil {
			continue
		}
		addGraphEdge(rng, g, a, b)
		currentEdges++
	}

	// Step 4: create initialEntityCount entities, each on a uniformly
	// random node.
	var entities []*arena.Entity
	for i := 0; i < cfg.InitialEntityCount; i++ {
		nodeID := nodeIDs[rng.IntRange(0, n-1)]
		e := &arena.Entity{
			NodeID:          nodeID,
			Energy:          rng.ClampNormal(cfg.DefaultMaxEnergy*0.6, cfg.DefaultMaxEnergy*0.2, 1, cfg.DefaultMaxEnergy),
			MaxEnergy:       cfg.DefaultMaxEnergy,
			PerceptionRange: 1,
			State:           statebuf.New(cfg.StateCapacity),
			Rule:            behavior.Baseline(rng),
			Mass:            1.0,
			Alive:           true,
		}
		entities = append(entities, e)
	}

	return g, entities
}

// addGraphEdge samples edge attributes and registers a↔b.
func addGraphEdge(rng *prng.Source, g *space.Graph, a, b ids.NodeID) {
	distance := rng.ClampNormal(5, 2, 1, 50)
	travelTime := rng.IntRange(1, 5)
	capacity := rng.IntRange(2, 8)
	danger := rng.ClampNormal(0.1, 0.1, 0, 1)
	durability := rng.ClampNormal(0.9, 0.1, 0, 1)
	g.AddEdge(a, b, distance, travelTime, capacity, danger, durability)
}

// spiralCoord maps a generation-order index to a 2D layout coordinate via
// an Ulam-spiral walk, giving world generation a stable, seed-independent
// notion of "nearby" for noise sampling.
func spiralCoord(i int) (float64, float64) {
	if i == 0 {
		return 0, 0
	}
	x, y := 0, 0
	dx, dy := 1, 0
	steps := 1
	idx := 0
	for {
		for s := 0; s < 2; s++ {
			for k := 0; k < steps; k++ {
				idx++
				x += dx
				y += dy
				if idx == i {
					return float64(x), float64(y)
				}
			}
			dx, dy = -dy, dx
		}
		steps++
	}
}
