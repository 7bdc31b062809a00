package snapshot

import (
	"testing"

	"github.com/talgya/mini-world/internal/universe"
)

func buildTestUniverse(t *testing.T) *universe.Universe {
	cfg := universe.DefaultConfig()
	cfg.Seed = 7
	cfg.WorldGen.NodeCount = 8
	cfg.WorldGen.InitialEntityCount = 10
	u, err := universe.New(cfg)
	if err != nil {
		t.Fatalf("universe.New: %v", err)
	}
	for i := 0; i < 15; i++ {
		u.Step()
	}
	return u
}

func TestSaveLoad_RoundTripsTickAndPopulation(t *testing.T) {
	u := buildTestUniverse(t)

	data, err := Save(u, false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	restored, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if restored.Tick() != u.Tick() {
		t.Fatalf("restored Tick = %d, want %d", restored.Tick(), u.Tick())
	}
	if len(restored.GetAllEntities()) != len(u.GetAllEntities()) {
		t.Fatalf("restored entity count = %d, want %d", len(restored.GetAllEntities()), len(u.GetAllEntities()))
	}
	if restored.Graph().NodeCount() != u.Graph().NodeCount() {
		t.Fatalf("restored node count = %d, want %d", restored.Graph().NodeCount(), u.Graph().NodeCount())
	}
}

func TestSaveLoad_ResumedRunMatchesUninterruptedRun(t *testing.T) {
	cfg := universe.DefaultConfig()
	cfg.Seed = 99
	cfg.WorldGen.NodeCount = 6
	cfg.WorldGen.InitialEntityCount = 8

	reference, err := universe.New(cfg)
	if err != nil {
		t.Fatalf("universe.New: %v", err)
	}
	for i := 0; i < 20; i++ {
		reference.Step()
	}

	replay, err := universe.New(cfg)
	if err != nil {
		t.Fatalf("universe.New: %v", err)
	}
	for i := 0; i < 10; i++ {
		replay.Step()
	}
	data, err := Save(replay, false)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	resumed, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := 0; i < 10; i++ {
		resumed.Step()
	}

	if resumed.Tick() != reference.Tick() {
		t.Fatalf("resumed Tick = %d, want %d", resumed.Tick(), reference.Tick())
	}
	if resumed.GetStats().EntityCount != reference.GetStats().EntityCount {
		t.Fatalf("resumed EntityCount = %d, want %d", resumed.GetStats().EntityCount, reference.GetStats().EntityCount)
	}
	if resumed.GetStats().TotalEnergy != reference.GetStats().TotalEnergy {
		t.Fatalf("resumed TotalEnergy = %v, want %v", resumed.GetStats().TotalEnergy, reference.GetStats().TotalEnergy)
	}
}

func TestSaveLoad_PrettyAndCompactProduceEquivalentState(t *testing.T) {
	u := buildTestUniverse(t)

	compact, err := Save(u, false)
	if err != nil {
		t.Fatalf("Save(compact): %v", err)
	}
	pretty, err := Save(u, true)
	if err != nil {
		t.Fatalf("Save(pretty): %v", err)
	}

	rc, err := Load(compact)
	if err != nil {
		t.Fatalf("Load(compact): %v", err)
	}
	rp, err := Load(pretty)
	if err != nil {
		t.Fatalf("Load(pretty): %v", err)
	}
	if rc.Tick() != rp.Tick() {
		t.Fatalf("compact/pretty tick mismatch: %d vs %d", rc.Tick(), rp.Tick())
	}
}

func TestLoad_RejectsTruncatedJSON(t *testing.T) {
	_, err := Load([]byte(`{"tick": 5,`))
	if err == nil {
		t.Fatalf("Load accepted truncated JSON")
	}
}
