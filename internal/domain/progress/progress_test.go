package progress

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggle(t *testing.T) {
	p := Progress{}

	assert.True(t, p.Toggle("SQL"))
	assert.True(t, p["SQL"])
	assert.False(t, p.Toggle("SQL"))
	assert.False(t, p["SQL"])
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name string
		sets [][]string
		p    Progress
		want int
	}{
		{"no roadmaps", nil, Progress{"a": true}, 0},
		{"nothing done", [][]string{{"a", "b"}}, Progress{}, 0},
		{"all done", [][]string{{"a", "b"}}, Progress{"a": true, "b": true}, 100},
		{"duplicates across roadmaps count once", [][]string{{"a", "b"}, {"b", "c"}}, Progress{"b": true}, 33},
		{"rounds half up", [][]string{{"a", "b", "c", "d", "e", "f", "g", "h"}}, Progress{"a": true, "b": true, "c": true, "d": true, "e": true}, 63},
		{"two thirds", [][]string{{"a", "b", "c"}}, Progress{"a": true, "b": true}, 67},
		{"flags outside roadmaps ignored", [][]string{{"a", "b"}}, Progress{"a": true, "z": true}, 50},
		{"false flags ignored", [][]string{{"a", "b"}}, Progress{"a": false, "b": true}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.sets, tt.p))
		})
	}
}

func TestLevel(t *testing.T) {
	withDone := func(n int) Progress {
		p := Progress{"undone": false}
		for i := 0; i < n; i++ {
			p[fmt.Sprintf("skill-%d", i)] = true
		}
		return p
	}

	assert.Equal(t, LevelExplorer, Level(withDone(0)))
	assert.Equal(t, LevelExplorer, Level(withDone(8)))
	assert.Equal(t, LevelSkilled, Level(withDone(9)))
	assert.Equal(t, LevelSkilled, Level(withDone(15)))
	assert.Equal(t, LevelIndustryReady, Level(withDone(16)))
}
