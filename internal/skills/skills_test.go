package skills

import (
	"testing"

	"github.com/talgya/mini-world/internal/statebuf"
)

func TestLevel_ReadsByteAtSkillIndex(t *testing.T) {
	b := statebuf.New(64)
	b.SetData([]byte{0, 255, 128})
	if got := Level(b, SkillHarvest); got != 0 {
		t.Fatalf("Level(SkillHarvest) = %v, want 0", got)
	}
	if got := Level(b, SkillRepair); got != 1.0 {
		t.Fatalf("Level(SkillRepair) = %v, want 1.0", got)
	}
}

func TestLevel_ShortBufferReturnsZero(t *testing.T) {
	b := statebuf.New(64)
	b.SetData([]byte{1})
	if got := Level(b, SkillReserved); got != 0 {
		t.Fatalf("Level on short buffer = %v, want 0", got)
	}
}

func TestBonus_DisabledIsExactlyOne(t *testing.T) {
	b := statebuf.New(64)
	b.SetData([]byte{255})
	if got := Bonus(b, SkillHarvest, 2.0, false); got != 1.0 {
		t.Fatalf("disabled Bonus = %v, want exactly 1.0", got)
	}
}

func TestBonus_EnabledScalesWithLevel(t *testing.T) {
	b := statebuf.New(64)
	b.SetData([]byte{255})
	got := Bonus(b, SkillHarvest, 1.0, true)
	if got <= 1.0 {
		t.Fatalf("enabled Bonus with max skill = %v, want > 1.0", got)
	}
}
