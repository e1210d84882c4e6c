package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := map[string]string{
		"Python":               "python",
		" Data Visualization ": "data_visualization",
		"machine-learning":     "machine_learning",
		"sql":                  "sql",
	}
	for in, want := range tests {
		assert.Equal(t, want, Key(in), in)
	}
}

func TestLevels_Normalize(t *testing.T) {
	got := Levels{"Data Visualization": 3, "data_visualization": 5, "SQL": 2}.Normalize()

	assert.Equal(t, Levels{"data_visualization": 5, "sql": 2}, got)
}

func TestLevels_Validate(t *testing.T) {
	assert.NoError(t, Levels{"python": 0, "sql": MaxLevel}.Validate())
	assert.ErrorIs(t, Levels{"python": 11}.Validate(), ErrInvalidLevel)
	assert.ErrorIs(t, Levels{"python": -1}.Validate(), ErrInvalidLevel)
	assert.ErrorIs(t, Levels{"": 3}.Validate(), ErrInvalidSkill)
}

func TestLevels_Raise(t *testing.T) {
	before := Levels{"python": 9, "sql": 4}

	after := before.Raise([]string{"python", "Data Visualization"}, 2)

	assert.Equal(t, Levels{"python": MaxLevel, "sql": 4, "data_visualization": 2}, after)
	assert.Equal(t, Levels{"python": 9, "sql": 4}, before)
}

func TestLevels_Merge(t *testing.T) {
	got := Levels{"python": 3, "sql": 2}.Merge(Levels{"sql": 6})

	assert.Equal(t, Levels{"python": 3, "sql": 6}, got)
}
