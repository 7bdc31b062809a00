package universe

import (
	"fmt"

	"github.com/talgya/mini-world/internal/arena"
	"github.com/talgya/mini-world/internal/observation"
	"github.com/talgya/mini-world/internal/prng"
	"github.com/talgya/mini-world/internal/simclock"
	"github.com/talgya/mini-world/internal/space"
	"github.com/talgya/mini-world/internal/worldgen"
)

// Universe is the engine: one world's graph, arenas, RNG, event log, and
// stats history, advanced one tick at a time by Step (spec §3 "World",
// §6 "new Universe(config)").
type Universe struct {
	cfg Config

	rng       *prng.Source
	graph     *space.Graph
	entities  *arena.EntityStore
	artifacts *arena.ArtifactStore

	tick simclock.Tick

	log     *observation.Log
	history *observation.History

	tickStats tickStatsAccumulator
}

// New validates cfg and builds a fresh world from it (spec §4.3 "World
// generator", §7 "configuration that makes progress impossible ... rejected
// at new Universe"). The only fatal configuration is a node count < 1 with
// entities > 0.
func New(cfg Config) (*Universe, error) {
	if cfg.WorldGen.NodeCount < 1 && cfg.WorldGen.InitialEntityCount > 0 {
		return nil, fmt.Errorf("universe: node count %d cannot host %d entities", cfg.WorldGen.NodeCount, cfg.WorldGen.InitialEntityCount)
	}

	rng := prng.New(cfg.Seed)
	graph, seedEntities := worldgen.Generate(rng, cfg.Seed, cfg.WorldGen)

	u := &Universe{
		cfg:       cfg,
		rng:       rng,
		graph:     graph,
		entities:  arena.NewEntityStore(),
		artifacts: arena.NewArtifactStore(),
		log:       observation.NewLog(),
		history:   observation.NewHistory(),
	}

	for _, e := range seedEntities {
		u.registerEntity(e)
	}

	u.recordStats()
	return u, nil
}

// registerEntity assigns the entity an arena id, places it on its node, and
// emits entityCreated.
func (u *Universe) registerEntity(e *arena.Entity) {
	u.entities.Add(e)
	node := u.graph.GetNode(e.NodeID)
	node.EntityIDs[e.ID] = struct{}{}
	u.log.Append(observation.Event{Tick: uint64(u.tick), Kind: observation.EntityCreated, EntityID: e.ID, NodeID: e.NodeID})
}

// GetAllEntities returns a read-only snapshot of every live entity, ordered
// by ascending id (spec §6 "getAllEntities()").
func (u *Universe) GetAllEntities() []*arena.Entity {
	return u.entities.All()
}

// GetAllArtifacts returns a read-only snapshot of every live artifact,
// ordered by ascending id (spec §6 "getAllArtifacts()").
func (u *Universe) GetAllArtifacts() []*arena.Artifact {
	return u.artifacts.All()
}

// GetStats returns the most recently recorded per-tick statistics (spec §6
// "getStats() -> SimulationStats").
func (u *Universe) GetStats() observation.Stats {
	return u.history.Latest()
}

// GetEventLog borrows the event buffer (spec §6 "getEventLog()").
func (u *Universe) GetEventLog() []observation.Event {
	return u.log.All()
}

// ClearEventLog truncates the event buffer (spec §6 "clearEventLog()").
func (u *Universe) ClearEventLog() {
	u.log.Clear()
}

// Tick returns the current tick counter (spec §3 "currentTick").
func (u *Universe) Tick() uint64 { return uint64(u.tick) }

// RNGState exposes the shared RNG's raw 128-bit state, for internal/snapshot
// (spec §6 "Snapshot format ... rng state").
func (u *Universe) RNGState() (s0, s1 uint64) { return u.rng.State() }

// Restore rebuilds a Universe from previously-serialized components,
// bypassing world generation entirely (spec §6 "a snapshot MUST round-trip
// exactly"). The caller (internal/snapshot) is responsible for having fully
// reconstructed graph, entities, and artifacts, including node id-set
// membership.
func Restore(cfg Config, tick uint64, rngS0, rngS1 uint64, graph *space.Graph, entities []*arena.Entity, artifacts []*arena.Artifact) *Universe {
	u := &Universe{
		cfg:       cfg,
		rng:       prng.Restore(rngS0, rngS1),
		graph:     graph,
		entities:  arena.NewEntityStore(),
		artifacts: arena.NewArtifactStore(),
		tick:      simclock.Tick(tick),
		log:       observation.NewLog(),
		history:   observation.NewHistory(),
	}
	for _, e := range entities {
		u.entities.Add(e)
	}
	for _, a := range artifacts {
		u.artifacts.Add(a)
	}
	u.recordStats()
	return u
}

// Graph exposes the spatial graph for read-only inspection (e.g. S6's
// connectivity check, snapshot serialization).
func (u *Universe) Graph() *space.Graph { return u.graph }

// Config returns the configuration this Universe was constructed with.
func (u *Universe) Config() Config { return u.cfg }

// History exposes the stats history for the pattern detectors in
// internal/observation.
func (u *Universe) History() *observation.History { return u.history }
