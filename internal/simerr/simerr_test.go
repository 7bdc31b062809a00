package simerr

import "testing"

func TestInsufficientEnergy_CarriesFields(t *testing.T) {
	err := InsufficientEnergy(10, 4)
	if err.Kind != KindInsufficientEnergy {
		t.Fatalf("Kind = %v, want KindInsufficientEnergy", err.Kind)
	}
	if err.Required != 10 || err.Available != 4 {
		t.Fatalf("Required/Available = %v/%v, want 10/4", err.Required, err.Available)
	}
}

func TestErrorStrings_AreNonEmpty(t *testing.T) {
	errs := []*ActionError{
		InsufficientEnergy(1, 0),
		InvalidTarget("no such node"),
		CapacityExceeded(5),
		PathBlocked("edge gone"),
		NoiseFailure("garbled"),
	}
	for _, e := range errs {
		if e.Error() == "" {
			t.Fatalf("Error() empty for kind %v", e.Kind)
		}
	}
}

func TestKind_StringNamesEveryKind(t *testing.T) {
	kinds := []Kind{KindInsufficientEnergy, KindInvalidTarget, KindCapacityExceeded, KindPathBlocked, KindNoiseFailure}
	for _, k := range kinds {
		if k.String() == "unknown" {
			t.Fatalf("Kind %d stringified to unknown", k)
		}
	}
}

func TestActionError_ImplementsError(t *testing.T) {
	var err error = InvalidTarget("x")
	if err.Error() == "" {
		t.Fatalf("ActionError via error interface produced empty string")
	}
}
