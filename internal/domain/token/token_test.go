package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	now := time.Date(2025, time.March, 7, 15, 4, 0, 0, time.UTC)

	tok, err := New(" Sales Dashboard ", "Core Skills", now)

	require.NoError(t, err)
	assert.Equal(t, Token{Project: "Sales Dashboard", Phase: "Core Skills", Date: "3/7/2025"}, tok)
}

func TestNew_RequiresProject(t *testing.T) {
	_, err := New("  ", "Foundations", time.Now())
	assert.ErrorIs(t, err, ErrProjectRequired)
}
