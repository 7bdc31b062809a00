// Package space implements the spatial graph: nodes, undirected edges, and
// the BFS/neighbor queries the rest of the engine needs (spec §4.2). Nodes
// own only id sets — never owning references to entities or artifacts,
// which live in internal/arena and are resolved by id.
package space

import (
	"sort"

	"github.com/talgya/mini-world/internal/ids"
)

// Node is a vertex of the spatial graph: static attributes set at
// generation time plus mutable per-tick state (spec §3 "Node").
type Node struct {
	ID ids.NodeID

	Terrain      ids.Terrain
	Temperature  float64 // clamped [-50, 50]
	DisasterRate float64 // clamped [0, 1]

	// Capacity and current amount per resource kind.
	Capacity map[ids.ResourceKind]float64
	Amount   map[ids.ResourceKind]float64

	EntityIDs   map[ids.EntityID]struct{}
	ArtifactIDs map[ids.ArtifactID]struct{}

	WasteHeat float64

	// BeaconStrength biases MoveToBeacon and the beacon perception
	// features (spec §9 Open Question 2, resolved in SPEC_FULL §4.C).
	BeaconStrength float64
}

// NewNode allocates a Node with empty resource maps and id sets.
func NewNode(id ids.NodeID) *Node {
	return &Node{
		ID:          id,
		Capacity:    make(map[ids.ResourceKind]float64),
		Amount:      make(map[ids.ResourceKind]float64),
		EntityIDs:   make(map[ids.EntityID]struct{}),
		ArtifactIDs: make(map[ids.ArtifactID]struct{}),
	}
}

// TransitItemKind tags what an in-flight edge item carries.
type TransitItemKind uint8

const (
	TransitEntity TransitItemKind = iota
	TransitResource
	TransitData
)

// TransitItem is an in-flight payload on an edge (spec §3 "TransitItem").
type TransitItem struct {
	Kind TransitItemKind

	EntityPayload   ids.EntityID
	ResourcePayload float64
	DataPayload     []byte

	From, To       ids.NodeID
	DepartedAtTick uint64
	ArrivalAtTick  uint64
}

// Edge is an undirected link between two nodes (spec §3 "Edge").
type Edge struct {
	ID         ids.EdgeID
	A, B       ids.NodeID
	Distance   float64
	TravelTime int // ticks, at zero wear
	Capacity   int
	Danger     float64
	Durability float64 // 0..1

	InTransit []TransitItem
}

// Other returns the endpoint of the edge opposite from.
func (e *Edge) Other(from ids.NodeID) ids.NodeID {
	if e.A == from {
		return e.B
	}
	return e.A
}

// EffectiveTravelTime returns the current travel time, inflated as
// durability degrades below 0.5 (spec §4.13 step 4).
func (e *Edge) EffectiveTravelTime() int {
	if e.Durability >= 0.5 {
		return e.TravelTime
	}
	// Linearly inflate up to 2x at durability 0.
	factor := 1.0 + (0.5-e.Durability)*2
	t := int(float64(e.TravelTime) * factor)
	if t < e.TravelTime {
		t = e.TravelTime
	}
	return t
}

// Graph is the spatial graph container.
type Graph struct {
	nodes map[ids.NodeID]*Node
	edges map[ids.EdgeID]*Edge

	// adjacency maps a node to the edges incident on it, for O(1) neighbor
	// queries.
	adjacency map[ids.NodeID][]ids.EdgeID

	nextNodeID ids.NodeID
	nextEdgeID ids.EdgeID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:     make(map[ids.NodeID]*Node),
		edges:     make(map[ids.EdgeID]*Edge),
		adjacency: make(map[ids.NodeID][]ids.EdgeID),
	}
}

// AddNode allocates and registers a new node, returning it.
func (g *Graph) AddNode() *Node {
	id := g.nextNodeID
	g.nextNodeID++
	n := NewNode(id)
	g.nodes[id] = n
	return n
}

// AddEdge registers an undirected edge between a and b. Self-loops and
// duplicate edges are rejected by the caller (world generator), not here;
// AddEdge itself is unconditional.
func (g *Graph) AddEdge(a, b ids.NodeID, distance float64, travelTime, capacity int, danger, durability float64) *Edge {
	id := g.nextEdgeID
	g.nextEdgeID++
	e := &Edge{
		ID:         id,
		A:          a,
		B:          b,
		Distance:   distance,
		TravelTime: travelTime,
		Capacity:   capacity,
		Danger:     danger,
		Durability: durability,
	}
	g.edges[id] = e
	g.adjacency[a] = append(g.adjacency[a], id)
	g.adjacency[b] = append(g.adjacency[b], id)
	return e
}

// GetNode returns the node with the given id, or nil if absent.
func (g *Graph) GetNode(id ids.NodeID) *Node {
	return g.nodes[id]
}

// GetEdge returns the edge with the given id, or nil if absent.
func (g *Graph) GetEdge(id ids.EdgeID) *Edge {
	return g.edges[id]
}

// GetEdgeBetween returns the edge connecting a and b, or nil if none
// exists. Callers must handle the nil case (spec §4.2: "no edge" rather
// than an error).
func (g *Graph) GetEdgeBetween(a, b ids.NodeID) *Edge {
	for _, eid := range g.adjacency[a] {
		e := g.edges[eid]
		if (e.A == a && e.B == b) || (e.A == b && e.B == a) {
			return e
		}
	}
	return nil
}

// GetNeighbors returns the node ids adjacent to nodeID, sorted ascending
// for deterministic iteration.
func (g *Graph) GetNeighbors(nodeID ids.NodeID) []ids.NodeID {
	var out []ids.NodeID
	for _, eid := range g.adjacency[nodeID] {
		e := g.edges[eid]
		out = append(out, e.Other(nodeID))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NeighborEdges returns the edges incident on nodeID.
func (g *Graph) NeighborEdges(nodeID ids.NodeID) []*Edge {
	var out []*Edge
	for _, eid := range g.adjacency[nodeID] {
		out = append(out, g.edges[eid])
	}
	return out
}

// AllNodeIDs returns every node id in ascending order.
func (g *Graph) AllNodeIDs() []ids.NodeID {
	out := make([]ids.NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AllEdges returns every edge, ordered by id.
func (g *Graph) AllEdges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, id := range g.allEdgeIDs() {
		out = append(out, g.edges[id])
	}
	return out
}

func (g *Graph) allEdgeIDs() []ids.EdgeID {
	out := make([]ids.EdgeID, 0, len(g.edges))
	for id := range g.edges {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// BFS visits nodes reachable from `from` up to maxDepth hops (inclusive),
// returning the visited ids sorted ascending. maxDepth < 0 means
// unbounded (spec §4.2 "bfs(from, maxDepth)"; used with -1 for "visits
// exactly N nodes" connectivity checks, spec §8 S6).
func (g *Graph) BFS(from ids.NodeID, maxDepth int) []ids.NodeID {
	visited := map[ids.NodeID]int{from: 0}
	queue := []ids.NodeID{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		depth := visited[cur]
		if maxDepth >= 0 && depth >= maxDepth {
			continue
		}
		for _, nb := range g.GetNeighbors(cur) {
			if _, seen := visited[nb]; !seen {
				visited[nb] = depth + 1
				queue = append(queue, nb)
			}
		}
	}

	out := make([]ids.NodeID, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
