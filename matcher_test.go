package jsonish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_ExactPhase(t *testing.T) {
	m, err := Match("RED", []string{"RED", "GREEN", "BLUE"})
	require.NoError(t, err)
	assert.Equal(t, "RED", m.Variant)
	assert.Equal(t, PhaseExact, m.Phase)
}

func TestMatch_PunctuationPhase(t *testing.T) {
	m, err := Match("Dark.Red", []string{"DarkRed", "DarkBlue"})
	require.NoError(t, err)
	assert.Equal(t, "DarkRed", m.Variant)
	assert.Equal(t, PhasePunctuation, m.Phase)
}

func TestMatch_CaseInsensitivePhase(t *testing.T) {
	m, err := Match("red", []string{"RED", "GREEN"})
	require.NoError(t, err)
	assert.Equal(t, "RED", m.Variant)
	assert.Equal(t, PhaseCaseInsensitive, m.Phase)
}

func TestMatch_SubstringPhase(t *testing.T) {
	m, err := Match("the answer is definitely red", []string{"red", "blue", "green"})
	require.NoError(t, err)
	assert.Equal(t, "red", m.Variant)
	assert.Equal(t, PhaseSubstring, m.Phase)
}

func TestMatch_AmbiguousTieIsRejected(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		candidates []string
	}{
		{"case-insensitive collision", "Red", []string{"red", "RED"}},
		{"substring both present as whole words", "red and blue both appear", []string{"red", "blue"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Match(tt.query, tt.candidates)
			assert.ErrorIs(t, err, ErrTooManyMatches)
		})
	}
}

func TestMatch_NoCandidateMatches(t *testing.T) {
	_, err := Match("purple", []string{"red", "blue"})
	assert.ErrorIs(t, err, ErrNoMatch)
}
