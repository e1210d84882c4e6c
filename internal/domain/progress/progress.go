package progress

import (
	"context"
	"math"

	"github.com/google/uuid"
)

const (
	LevelIndustryReady = "Industry Ready"
	LevelSkilled       = "Skilled"
	LevelExplorer      = "Explorer"
)

// Progress maps a skill name to its completion flag. Absent means not completed.
type Progress map[string]bool

// Toggle flips the flag for skill and returns the new value.
func (p Progress) Toggle(skill string) bool {
	p[skill] = !p[skill]
	return p[skill]
}

func (p Progress) CompletedCount() int {
	n := 0
	for _, done := range p {
		if done {
			n++
		}
	}
	return n
}

// Percentage is the share of unique skills across all roadmaps that are marked completed,
// rounded half up. Flags for skills outside the roadmaps are ignored.
func Percentage(skillSets [][]string, p Progress) int {
	all := make(map[string]struct{})
	for _, set := range skillSets {
		for _, s := range set {
			all[s] = struct{}{}
		}
	}
	if len(all) == 0 {
		return 0
	}

	completed := 0
	for s := range all {
		if p[s] {
			completed++
		}
	}
	return int(math.Floor(float64(completed)/float64(len(all))*100 + 0.5))
}

// Level derives the dashboard level from the number of completed skills.
func Level(p Progress) string {
	switch n := p.CompletedCount(); {
	case n > 15:
		return LevelIndustryReady
	case n > 8:
		return LevelSkilled
	default:
		return LevelExplorer
	}
}

type Repository interface {
	Get(ctx context.Context, studentID uuid.UUID) (Progress, error)
	// Save replaces the whole map.
	Save(ctx context.Context, studentID uuid.UUID, p Progress) error
}
