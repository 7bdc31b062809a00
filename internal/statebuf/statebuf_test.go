package statebuf

import "testing"

func TestNew_DefaultsCapacityWhenNonPositive(t *testing.T) {
	b := New(0)
	if b.Capacity() != DefaultCapacity {
		t.Fatalf("New(0) capacity = %d, want %d", b.Capacity(), DefaultCapacity)
	}
}

func TestAppend_FIFOTruncatesOldestBytes(t *testing.T) {
	b := New(4)
	b.SetData([]byte{1, 2, 3, 4})
	b.Append([]byte{5, 6})

	got := b.Bytes()
	want := []byte{3, 4, 5, 6}
	if !bytesEqual(got, want) {
		t.Fatalf("Append result = %v, want %v", got, want)
	}
}

func TestAppend_UnderCapacityJustGrows(t *testing.T) {
	b := New(10)
	b.Append([]byte{1, 2})
	b.Append([]byte{3, 4})
	got := b.Bytes()
	want := []byte{1, 2, 3, 4}
	if !bytesEqual(got, want) {
		t.Fatalf("Append result = %v, want %v", got, want)
	}
}

func TestSetData_TruncatesOversizedInput(t *testing.T) {
	b := New(3)
	b.SetData([]byte{1, 2, 3, 4, 5})
	got := b.Bytes()
	want := []byte{1, 2, 3}
	if !bytesEqual(got, want) {
		t.Fatalf("SetData truncation = %v, want %v", got, want)
	}
}

func TestClone_IsIndependentCopy(t *testing.T) {
	b := New(8)
	b.SetData([]byte{9, 9, 9})
	c := b.Clone()
	c.Append([]byte{1})
	if bytesEqual(b.Bytes(), c.Bytes()) {
		t.Fatalf("Clone shares storage with original")
	}
}

func TestAddByteDelta_ClampsToByteRange(t *testing.T) {
	b := New(4)
	b.SetData([]byte{250, 5})
	b.AddByteDelta(0, 20)
	b.AddByteDelta(1, -20)
	got := b.Bytes()
	if got[0] != 255 {
		t.Fatalf("AddByteDelta high clamp = %d, want 255", got[0])
	}
	if got[1] != 0 {
		t.Fatalf("AddByteDelta low clamp = %d, want 0", got[1])
	}
}

func TestAddByteDelta_OutOfRangeIsNoop(t *testing.T) {
	b := New(4)
	b.SetData([]byte{1, 2})
	b.AddByteDelta(5, 10) // no panic, no effect
	got := b.Bytes()
	want := []byte{1, 2}
	if !bytesEqual(got, want) {
		t.Fatalf("out-of-range AddByteDelta mutated buffer: %v", got)
	}
}

func TestFlipBit_TogglesSingleBit(t *testing.T) {
	b := New(4)
	b.SetData([]byte{0b00000000})
	b.FlipBit(0, 0)
	if b.Bytes()[0] != 1 {
		t.Fatalf("FlipBit(0,0) = %b, want 1", b.Bytes()[0])
	}
	b.FlipBit(0, 0)
	if b.Bytes()[0] != 0 {
		t.Fatalf("second FlipBit(0,0) = %b, want 0", b.Bytes()[0])
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
