// Package infotransfer implements the three byte-buffer information
// primitives — exchange, inheritance, acquisition — and the
// similarity/knowledge-bonus functions used by artifact repair (spec
// §4.10 "Information transfer", §4.11 "Similarity & knowledge bonus"). All
// three primitives respect InternalState's sliding-window capacity.
package infotransfer

import (
	"github.com/talgya/mini-world/internal/prng"
	"github.com/talgya/mini-world/internal/statebuf"
)

// Exchange takes floor(|a|*rate) bytes from a random window of a and
// appends them to b, and symmetrically b's donation to a — both buffers
// gain bytes equal to what the partner donated, subject to capacity
// truncation (spec §4.10, §8 property 14).
func Exchange(rng *prng.Source, a, b *statebuf.Buffer, rate float64) {
	aDonation := randomWindow(rng, a.Bytes(), rate)
	bDonation := randomWindow(rng, b.Bytes(), rate)
	a.Append(bDonation)
	b.Append(aDonation)
}

// randomWindow returns floor(len(data)*rate) bytes taken from a randomly
// chosen contiguous window of data.
func randomWindow(rng *prng.Source, data []byte, rate float64) []byte {
	n := int(float64(len(data)) * rate)
	if n <= 0 || len(data) == 0 {
		return nil
	}
	if n > len(data) {
		n = len(data)
	}
	maxStart := len(data) - n
	start := 0
	if maxStart > 0 {
		start = rng.IntRange(0, maxStart)
	}
	out := make([]byte, n)
	copy(out, data[start:start+n])
	return out
}

// Inherit writes a child's state from one or two parents, then flips
// floor(bits*mutationRate) randomly chosen bits (spec §4.10 "Inherit").
// If partner is nil, the child simply copies parent. Otherwise each byte
// index independently draws from whichever parent has a byte at that
// index (and randomly between the two when both do).
func Inherit(rng *prng.Source, child, parent, partner *statebuf.Buffer, mutationRate float64) {
	var mixed []byte

	if partner == nil {
		mixed = append([]byte(nil), parent.Bytes()...)
	} else {
		pData := parent.Bytes()
		qData := partner.Bytes()
		n := len(pData)
		if len(qData) > n {
			n = len(qData)
		}
		mixed = make([]byte, n)
		for i := 0; i < n; i++ {
			pHas := i < len(pData)
			qHas := i < len(qData)
			switch {
			case pHas && qHas:
				if rng.WithProbability(0.5) {
					mixed[i] = pData[i]
				} else {
					mixed[i] = qData[i]
				}
			case pHas:
				mixed[i] = pData[i]
			case qHas:
				mixed[i] = qData[i]
			}
		}
	}

	totalBits := len(mixed) * 8
	flips := int(float64(totalBits) * mutationRate)
	for i := 0; i < flips; i++ {
		if totalBits == 0 {
			break
		}
		bit := rng.IntRange(0, totalBits-1)
		byteIdx := bit / 8
		bitIdx := bit % 8
		mixed[byteIdx] ^= 1 << uint(bitIdx)
	}

	child.SetData(mixed)
}

// Acquire appends floor(|data|*repairAmount) leading bytes of artifactData
// into the entity's state via the sliding-window append (spec §4.10
// "Acquire").
func Acquire(entityState *statebuf.Buffer, artifactData []byte, repairAmount float64) {
	n := int(float64(len(artifactData)) * repairAmount)
	if n <= 0 {
		return
	}
	if n > len(artifactData) {
		n = len(artifactData)
	}
	entityState.Append(artifactData[:n])
}
