package prng

import (
	"math"
	"testing"
)

func TestNew_SameSeedReproducesSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		va, vb := a.Float64(), b.Float64()
		if va != vb {
			t.Fatalf("draw %d diverged: %v vs %v", i, va, vb)
		}
	}
}

func TestNew_DifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 20; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 20 {
		t.Fatalf("seeds 1 and 2 produced identical sequences")
	}
}

func TestNew_ZeroSeedDoesNotStick(t *testing.T) {
	s := New(0)
	if s.s0 == 0 && s.s1 == 0 {
		t.Fatalf("all-zero state after New(0)")
	}
	// Should still advance without getting stuck at zero.
	for i := 0; i < 10; i++ {
		s.Float64()
	}
}

func TestFloat64_StaysInUnitInterval(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64 out of [0,1): %v", v)
		}
	}
}

func TestIntRange_InclusiveBounds(t *testing.T) {
	s := New(7)
	seenMin, seenMax := false, false
	for i := 0; i < 5000; i++ {
		v := s.IntRange(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("IntRange(3,5) produced out-of-range value %d", v)
		}
		if v == 3 {
			seenMin = true
		}
		if v == 5 {
			seenMax = true
		}
	}
	if !seenMin || !seenMax {
		t.Fatalf("IntRange(3,5) never hit both bounds: min=%v max=%v", seenMin, seenMax)
	}
}

func TestIntRange_DegenerateReturnsMin(t *testing.T) {
	s := New(7)
	if got := s.IntRange(5, 5); got != 5 {
		t.Fatalf("IntRange(5,5) = %d, want 5", got)
	}
	if got := s.IntRange(5, 1); got != 5 {
		t.Fatalf("IntRange(5,1) = %d, want 5", got)
	}
}

func TestNormal_ApproximatesMeanAndSpread(t *testing.T) {
	s := New(99)
	const n = 20000
	sum := 0.0
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = s.Normal(10, 2)
		sum += samples[i]
	}
	mean := sum / n
	if math.Abs(mean-10) > 0.2 {
		t.Fatalf("sample mean %v too far from 10", mean)
	}
	sq := 0.0
	for _, v := range samples {
		sq += (v - mean) * (v - mean)
	}
	if sd := math.Sqrt(sq / n); math.Abs(sd-2) > 0.1 {
		t.Fatalf("sample stddev %v too far from 2", sd)
	}
}

func TestWithProbability_Extremes(t *testing.T) {
	s := New(1)
	for i := 0; i < 100; i++ {
		if s.WithProbability(0) {
			t.Fatalf("WithProbability(0) returned true")
		}
	}
	for i := 0; i < 100; i++ {
		if !s.WithProbability(1) {
			t.Fatalf("WithProbability(1) returned false")
		}
	}
}

func TestShuffle_IsAPermutation(t *testing.T) {
	s := New(3)
	data := []int{0, 1, 2, 3, 4, 5, 6, 7}
	orig := append([]int(nil), data...)
	s.Shuffle(len(data), func(i, j int) { data[i], data[j] = data[j], data[i] })

	seen := make(map[int]bool)
	for _, v := range data {
		seen[v] = true
	}
	if len(seen) != len(orig) {
		t.Fatalf("shuffle lost elements: %v", data)
	}
}

func TestClampNormal_RespectsBounds(t *testing.T) {
	s := New(11)
	for i := 0; i < 5000; i++ {
		v := s.ClampNormal(0, 100, -1, 1)
		if v < -1 || v > 1 {
			t.Fatalf("ClampNormal escaped bounds: %v", v)
		}
	}
}

func TestMutateBytes_LeavesInputUntouched(t *testing.T) {
	s := New(5)
	data := []byte{1, 2, 3, 4, 5}
	orig := append([]byte(nil), data...)
	_ = s.MutateBytes(data, 1.0)
	for i := range data {
		if data[i] != orig[i] {
			t.Fatalf("MutateBytes mutated its input slice")
		}
	}
}

func TestStateRestore_ContinuesSameSequence(t *testing.T) {
	s := New(123)
	for i := 0; i < 50; i++ {
		s.Float64()
	}
	s0, s1 := s.State()

	restored := Restore(s0, s1)
	for i := 0; i < 50; i++ {
		want := s.Float64()
		got := restored.Float64()
		if want != got {
			t.Fatalf("draw %d after restore diverged: %v vs %v", i, want, got)
		}
	}
}

func TestRestore_ZeroStateDoesNotStick(t *testing.T) {
	r := Restore(0, 0)
	if r.s0 == 0 && r.s1 == 0 {
		t.Fatalf("Restore(0,0) left state at all-zero")
	}
}
