// Package snapshot implements exact-round-trip JSON serialization of a
// Universe's full state: tick, seed, rng state, the spatial graph (nodes
// with resource maps flattened to entry arrays, edges with their in-transit
// queues), the entity and artifact arenas, and config overrides (spec §6
// "Snapshot format"). Loading a snapshot and calling step() k times must
// match the original run reaching the same tick (spec §6, §8 property 8,
// scenario S5).
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/behavior"
	"github.com/talgya/mini-world/internal/ids"
	"github.com/talgya/mini-world/internal/space"
	"github.com/talgya/mini-world/internal/statebuf"
	"github.com/talgya/mini-world/internal/universe"
)

// Document is the on-disk snapshot schema.
type Document struct {
	Tick      uint64          `json:"tick"`
	Seed      uint32          `json:"seed"`
	RNGState0 uint64          `json:"rngState0"`
	RNGState1 uint64          `json:"rngState1"`
	Config    universe.Config `json:"config"`
	Nodes     []nodeDoc       `json:"nodes"`
	Edges     []edgeDoc       `json:"edges"`
	Entities  []entityDoc     `json:"entities"`
	Artifacts []artifactDoc   `json:"artifacts"`
}

type resourceEntry struct {
	Kind  ids.ResourceKind `json:"kind"`
	Value float64          `json:"value"`
}

type nodeDoc struct {
	ID             ids.NodeID       `json:"id"`
	Terrain        ids.Terrain      `json:"terrain"`
	Temperature    float64          `json:"temperature"`
	DisasterRate   float64          `json:"disasterRate"`
	Capacity       []resourceEntry  `json:"capacity"`
	Amount         []resourceEntry  `json:"amount"`
	EntityIDs      []ids.EntityID   `json:"entityIds"`
	ArtifactIDs    []ids.ArtifactID `json:"artifactIds"`
	WasteHeat      float64          `json:"wasteHeat"`
	BeaconStrength float64          `json:"beaconStrength"`
}

type edgeDoc struct {
	ID         ids.EdgeID          `json:"id"`
	A          ids.NodeID          `json:"a"`
	B          ids.NodeID          `json:"b"`
	Distance   float64             `json:"distance"`
	TravelTime int                 `json:"travelTime"`
	Capacity   int                 `json:"capacity"`
	Danger     float64             `json:"danger"`
	Durability float64             `json:"durability"`
	InTransit  []space.TransitItem `json:"inTransit"`
}

type entityDoc struct {
	ID                  ids.EntityID   `json:"id"`
	NodeID              ids.NodeID     `json:"nodeId"`
	Energy              float64        `json:"energy"`
	MaxEnergy           float64        `json:"maxEnergy"`
	Age                 uint64         `json:"age"`
	PerceptionRange     int            `json:"perceptionRange"`
	StateCapacity       int            `json:"stateCapacity"`
	StateData           []byte         `json:"stateData"`
	Rule                *behavior.Rule `json:"rule"`
	Mass                float64        `json:"mass"`
	Kind                int            `json:"kind"`
	IsMaintainer        bool           `json:"isMaintainer"`
	MaintainerUntilTick uint64         `json:"maintainerUntilTick"`
}

type artifactDoc struct {
	ID         ids.ArtifactID `json:"id"`
	NodeID     ids.NodeID     `json:"nodeId"`
	Data       []byte         `json:"data"`
	Durability float64        `json:"durability"`
	Prestige   float64        `json:"prestige"`
	CreatedAt  uint64         `json:"createdAt"`
	CreatorID  ids.EntityID   `json:"creatorId"`
}

// Save renders u's full state as JSON, pretty-printed if pretty is true
// (spec §6 "JSON (pretty or compact)").
func Save(u *universe.Universe, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, u, pretty); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams u's full state to w as JSON.
func Write(w io.Writer, u *universe.Universe, pretty bool) error {
	doc := buildDocument(u)
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	return nil
}

// Load reconstructs a Universe from JSON previously produced by Save.
func Load(data []byte) (*universe.Universe, error) {
	return Read(bytes.NewReader(data))
}

// Read reconstructs a Universe from JSON previously produced by Write.
func Read(r io.Reader) (*universe.Universe, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("snapshot: decode: %w", err)
	}
	return buildUniverse(doc)
}

func buildDocument(u *universe.Universe) Document {
	s0, s1 := u.RNGState()
	g := u.Graph()

	doc := Document{
		Tick:      u.Tick(),
		Seed:      u.Config().Seed,
		RNGState0: s0,
		RNGState1: s1,
		Config:    u.Config(),
	}

	for _, nodeID := range g.AllNodeIDs() {
		doc.Nodes = append(doc.Nodes, nodeDocFrom(g.GetNode(nodeID)))
	}
	for _, e := range g.AllEdges() {
		doc.Edges = append(doc.Edges, edgeDoc{
			ID:         e.ID,
			A:          e.A,
			B:          e.B,
			Distance:   e.Distance,
			TravelTime: e.TravelTime,
			Capacity:   e.Capacity,
			Danger:     e.Danger,
			Durability: e.Durability,
			InTransit:  append([]space.TransitItem(nil), e.InTransit...),
		})
	}
	for _, ent := range u.GetAllEntities() {
		doc.Entities = append(doc.Entities, entityDocFrom(ent))
	}
	for _, a := range u.GetAllArtifacts() {
		doc.Artifacts = append(doc.Artifacts, artifactDoc{
			ID:         a.ID,
			NodeID:     a.NodeID,
			Data:       append([]byte(nil), a.Data...),
			Durability: a.Durability,
			Prestige:   a.Prestige,
			CreatedAt:  a.CreatedAt,
			CreatorID:  a.CreatorID,
		})
	}
	return doc
}

func nodeDocFrom(n *space.Node) nodeDoc {
	d := nodeDoc{
		ID:             n.ID,
		Terrain:        n.Terrain,
		Temperature:    n.Temperature,
		DisasterRate:   n.DisasterRate,
		WasteHeat:      n.WasteHeat,
		BeaconStrength: n.BeaconStrength,
		Capacity:       sortedResourceEntries(n.Capacity),
		Amount:         sortedResourceEntries(n.Amount),
	}
	for eid := range n.EntityIDs {
		d.EntityIDs = append(d.EntityIDs, eid)
	}
	sort.Slice(d.EntityIDs, func(i, j int) bool { return d.EntityIDs[i] < d.EntityIDs[j] })
	for aid := range n.ArtifactIDs {
		d.ArtifactIDs = append(d.ArtifactIDs, aid)
	}
	sort.Slice(d.ArtifactIDs, func(i, j int) bool { return d.ArtifactIDs[i] < d.ArtifactIDs[j] })
	return d
}

func sortedResourceEntries(m map[ids.ResourceKind]float64) []resourceEntry {
	out := make([]resourceEntry, 0, len(m))
	for k, v := range m {
		out = append(out, resourceEntry{Kind: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

func entityDocFrom(e *arena.Entity) entityDoc {
	return entityDoc{
		ID:                  e.ID,
		NodeID:              e.NodeID,
		Energy:              e.Energy,
		MaxEnergy:           e.MaxEnergy,
		Age:                 e.Age,
		PerceptionRange:     e.PerceptionRange,
		StateCapacity:       e.State.Capacity(),
		StateData:           append([]byte(nil), e.State.Bytes()...),
		Rule:                e.Rule,
		Mass:                e.Mass,
		Kind:                e.Kind,
		IsMaintainer:        e.IsMaintainer,
		MaintainerUntilTick: e.MaintainerUntilTick,
	}
}

func buildUniverse(doc Document) (*universe.Universe, error) {
	g := space.NewGraph()
	for _, nd := range doc.Nodes {
		node := g.AddNode()
		if node.ID != nd.ID {
			return nil, fmt.Errorf("snapshot: node ids must be contiguous ascending from 0, expected %d got %d", node.ID, nd.ID)
		}
		node.Terrain = nd.Terrain
		node.Temperature = nd.Temperature
		node.DisasterRate = nd.DisasterRate
		node.WasteHeat = nd.WasteHeat
		node.BeaconStrength = nd.BeaconStrength
		for _, re := range nd.Capacity {
			node.Capacity[re.Kind] = re.Value
		}
		for _, re := range nd.Amount {
			node.Amount[re.Kind] = re.Value
		}
		for _, eid := range nd.EntityIDs {
			node.EntityIDs[eid] = struct{}{}
		}
		for _, aid := range nd.ArtifactIDs {
			node.ArtifactIDs[aid] = struct{}{}
		}
	}

	for _, ed := range doc.Edges {
		edge := g.AddEdge(ed.A, ed.B, ed.Distance, ed.TravelTime, ed.Capacity, ed.Danger, ed.Durability)
		if edge.ID != ed.ID {
			return nil, fmt.Errorf("snapshot: edge ids must be contiguous ascending from 0, expected %d got %d", edge.ID, ed.ID)
		}
		edge.InTransit = append([]space.TransitItem(nil), ed.InTransit...)
	}

	entities := make([]*arena.Entity, 0, len(doc.Entities))
	for _, ent := range doc.Entities {
		state := statebuf.New(ent.StateCapacity)
		state.SetData(ent.StateData)
		entities = append(entities, &arena.Entity{
			ID:                  ent.ID,
			NodeID:              ent.NodeID,
			Energy:              ent.Energy,
			MaxEnergy:           ent.MaxEnergy,
			Age:                 ent.Age,
			PerceptionRange:     ent.PerceptionRange,
			State:               state,
			Rule:                ent.Rule,
			Mass:                ent.Mass,
			Kind:                ent.Kind,
			IsMaintainer:        ent.IsMaintainer,
			MaintainerUntilTick: ent.MaintainerUntilTick,
			Alive:               true,
		})
	}

	artifacts := make([]*arena.Artifact, 0, len(doc.Artifacts))
	for _, ad := range doc.Artifacts {
		artifacts = append(artifacts, &arena.Artifact{
			ID:         ad.ID,
			NodeID:     ad.NodeID,
			Data:       append([]byte(nil), ad.Data...),
			Durability: ad.Durability,
			Prestige:   ad.Prestige,
			CreatedAt:  ad.CreatedAt,
			CreatorID:  ad.CreatorID,
		})
	}

	return universe.Restore(doc.Config, doc.Tick, doc.RNGState0, doc.RNGState1, g, entities, artifacts), nil
}
