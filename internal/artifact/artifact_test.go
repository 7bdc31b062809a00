package artifact

import (
	"testing"

	"github.com/talgya/mini-world/internal/arena"
)

func TestCreate_DebitsCreatorAndRegisters(t *testing.T) {
	store := arena.NewArtifactStore()
	creator := &arena.Entity{Energy: 10, MaxEnergy: 10, NodeID: 3}
	cfg := DefaultConfig()

	a, err := Create(store, creator, 4, []byte("hello"), 1, cfg)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if creator.Energy != 6 {
		t.Fatalf("creator energy = %v, want 6", creator.Energy)
	}
	if a.NodeID != 3 {
		t.Fatalf("artifact NodeID = %v, want 3", a.NodeID)
	}
	if store.Get(a.ID) == nil {
		t.Fatalf("artifact not registered in store")
	}
}

func TestCreate_InsufficientEnergyFails(t *testing.T) {
	store := arena.NewArtifactStore()
	creator := &arena.Entity{Energy: 1, MaxEnergy: 10}
	cfg := DefaultConfig()

	_, err := Create(store, creator, 5, nil, 1, cfg)
	if err == nil {
		t.Fatalf("expected error for insufficient energy")
	}
	if creator.Energy != 1 {
		t.Fatalf("creator energy changed despite failed Create: %v", creator.Energy)
	}
}

func TestCreate_OversizedDataFails(t *testing.T) {
	store := arena.NewArtifactStore()
	creator := &arena.Entity{Energy: 10, MaxEnergy: 10}
	cfg := Config{MaxDataSize: 2, DegradationRate: 0.01}

	_, err := Create(store, creator, 1, []byte("abc"), 1, cfg)
	if err == nil {
		t.Fatalf("expected error for oversized data")
	}
}

func TestRepair_ClampsDurabilityAtOne(t *testing.T) {
	a := &arena.Artifact{Durability: 0.9, Prestige: 1}
	Repair(a, 0.5, 2)
	if a.Durability != 1 {
		t.Fatalf("Durability = %v, want clamped to 1", a.Durability)
	}
	if a.Prestige != 3 {
		t.Fatalf("Prestige = %v, want 3", a.Prestige)
	}
}

func TestApplyDegradation_RemovesFullyDecayedArtifacts(t *testing.T) {
	store := arena.NewArtifactStore()
	surviving := &arena.Artifact{Durability: 1.0}
	dying := &arena.Artifact{Durability: 0.001}
	store.Add(surviving)
	store.Add(dying)

	cfg := Config{DegradationRate: 0.002}
	decayed := ApplyDegradation(store, cfg)

	if len(decayed) != 1 || decayed[0] != dying.ID {
		t.Fatalf("decayed = %v, want only [%d]", decayed, dying.ID)
	}
	if store.Get(dying.ID) != nil {
		t.Fatalf("decayed artifact still present in store")
	}
	if store.Get(surviving.ID) == nil {
		t.Fatalf("surviving artifact incorrectly removed")
	}
}
