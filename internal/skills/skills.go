// Package skills derives per-skill multipliers from the first bytes of an
// entity's internal state buffer (spec §3 InternalState, §4.15 L2 "Skill
// layer").
package skills

import "github.com/talgya/mini-world/internal/statebuf"

// Skill names one of the eight skill slots packed into the first bytes of
// InternalState.
type Skill int

const (
	SkillHarvest Skill = iota
	SkillRepair
	SkillCreate
	SkillMove
	SkillInteract
	SkillReplicate
	SkillPerception
	SkillReserved
)

// NumSkills is the width of the skill vector.
const NumSkills = int(SkillReserved) + 1

// Level returns skill s's level in [0, 1]: byte i / 255 (spec §3). Returns
// 0 if the buffer is shorter than the skill's byte index.
func Level(buf *statebuf.Buffer, s Skill) float64 {
	data := buf.Bytes()
	if int(s) >= len(data) {
		return 0
	}
	return float64(data[s]) / 255.0
}

// Bonus returns the multiplicative efficiency bonus `1 + level*coefficient`
// for skill s, or exactly 1.0 when skillBonusEnabled is false — the
// off-state must be a neutral factor, never zero (spec §9 Open Question 4).
func Bonus(buf *statebuf.Buffer, s Skill, coefficient float64, enabled bool) float64 {
	if !enabled {
		return 1.0
	}
	return 1.0 + Level(buf, s)*coefficient
}
