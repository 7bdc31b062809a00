package space

import "testing"

func TestAddNode_AssignsSequentialIDs(t *testing.T) {
	g := NewGraph()
	n0 := g.AddNode()
	n1 := g.AddNode()
	if n0.ID != 0 || n1.ID != 1 {
		t.Fatalf("got ids %d, %d, want 0, 1", n0.ID, n1.ID)
	}
}

func TestAddEdge_AssignsSequentialIDsAndUpdatesAdjacency(t *testing.T) {
	g := NewGraph()
	a := g.AddNode()
	b := g.AddNode()
	e := g.AddEdge(a.ID, b.ID, 5, 2, 4, 0.1, 1.0)
	if e.ID != 0 {
		t.Fatalf("first edge id = %d, want 0", e.ID)
	}

	neighbors := g.GetNeighbors(a.ID)
	if len(neighbors) != 1 || neighbors[0] != b.ID {
		t.Fatalf("GetNeighbors(a) = %v, want [%d]", neighbors, b.ID)
	}
}

func TestGetEdgeBetween_FindsEitherDirection(t *testing.T) {
	g := NewGraph()
	a := g.AddNode()
	b := g.AddNode()
	g.AddEdge(a.ID, b.ID, 1, 1, 1, 0, 1)

	if g.GetEdgeBetween(a.ID, b.ID) == nil {
		t.Fatalf("GetEdgeBetween(a,b) = nil")
	}
	if g.GetEdgeBetween(b.ID, a.ID) == nil {
		t.Fatalf("GetEdgeBetween(b,a) = nil")
	}
}

func TestGetEdgeBetween_NoEdgeReturnsNil(t *testing.T) {
	g := NewGraph()
	a := g.AddNode()
	b := g.AddNode()
	if g.GetEdgeBetween(a.ID, b.ID) != nil {
		t.Fatalf("GetEdgeBetween returned non-nil for unconnected nodes")
	}
}

func TestBFS_RespectsMaxDepth(t *testing.T) {
	g := NewGraph()
	nodes := make([]*Node, 4)
	for i := range nodes {
		nodes[i] = g.AddNode()
	}
	// chain: 0 - 1 - 2 - 3
	g.AddEdge(nodes[0].ID, nodes[1].ID, 1, 1, 1, 0, 1)
	g.AddEdge(nodes[1].ID, nodes[2].ID, 1, 1, 1, 0, 1)
	g.AddEdge(nodes[2].ID, nodes[3].ID, 1, 1, 1, 0, 1)

	depth1 := g.BFS(nodes[0].ID, 1)
	if len(depth1) != 2 {
		t.Fatalf("BFS depth 1 visited %d nodes, want 2", len(depth1))
	}

	unbounded := g.BFS(nodes[0].ID, -1)
	if len(unbounded) != 4 {
		t.Fatalf("BFS unbounded visited %d nodes, want 4", len(unbounded))
	}
}

func TestBFS_DisconnectedComponentNotVisited(t *testing.T) {
	g := NewGraph()
	a := g.AddNode()
	_ = g.AddNode() // isolated, no edge
	visited := g.BFS(a.ID, -1)
	if len(visited) != 1 {
		t.Fatalf("BFS from isolated start visited %d nodes, want 1", len(visited))
	}
}

func TestEdge_EffectiveTravelTimeInflatesBelowHalfDurability(t *testing.T) {
	e := &Edge{TravelTime: 10, Durability: 0.5}
	if got := e.EffectiveTravelTime(); got != 10 {
		t.Fatalf("EffectiveTravelTime at durability 0.5 = %d, want 10", got)
	}
	e.Durability = 0
	if got := e.EffectiveTravelTime(); got <= 10 {
		t.Fatalf("EffectiveTravelTime at durability 0 = %d, want > 10", got)
	}
}

func TestEdge_Other(t *testing.T) {
	e := &Edge{A: 1, B: 2}
	if e.Other(1) != 2 {
		t.Fatalf("Other(1) = %d, want 2", e.Other(1))
	}
	if e.Other(2) != 1 {
		t.Fatalf("Other(2) = %d, want 1", e.Other(2))
	}
}

func TestAllNodeIDsAndAllEdges_AreSorted(t *testing.T) {
	g := NewGraph()
	for i := 0; i < 5; i++ {
		g.AddNode()
	}
	ids := g.AllNodeIDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("AllNodeIDs not sorted ascending at %d", i)
		}
	}

	g.AddEdge(ids[3], ids[4], 1, 1, 1, 0, 1)
	g.AddEdge(ids[0], ids[1], 1, 1, 1, 0, 1)
	g.AddEdge(ids[1], ids[2], 1, 1, 1, 0, 1)
	edges := g.AllEdges()
	if len(edges) != 3 {
		t.Fatalf("AllEdges returned %d edges, want 3", len(edges))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i-1].ID >= edges[i].ID {
			t.Fatalf("AllEdges not sorted ascending by id at %d", i)
		}
	}
}
