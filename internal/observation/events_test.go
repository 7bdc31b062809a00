package observation

import "testing"

func TestLog_AppendAndAll(t *testing.T) {
	l := NewLog()
	l.Append(Event{Tick: 1, Kind: EntityCreated})
	l.Append(Event{Tick: 2, Kind: EntityDied})
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	all := l.All()
	if all[0].Kind != EntityCreated || all[1].Kind != EntityDied {
		t.Fatalf("All() = %v, wrong order/kinds", all)
	}
}

func TestLog_ClearEmptiesBuffer(t *testing.T) {
	l := NewLog()
	l.Append(Event{Kind: Harvest})
	l.Clear()
	if l.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", l.Len())
	}
}

func TestKind_StringNamesEveryKind(t *testing.T) {
	kinds := []Kind{
		EntityCreated, EntityDied, EntityMoved, Interaction, PartnerSelected,
		Replication, ArtifactCreated, ArtifactDecayed, Harvest,
		InformationExchange, InformationInheritance, InformationAcquisition,
		Disaster, GuardrailIntervention,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		if s == "unknown" {
			t.Fatalf("Kind %d stringified to unknown", k)
		}
		if seen[s] {
			t.Fatalf("duplicate Kind string %q", s)
		}
		seen[s] = true
	}
}
