package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_EmptyQueryKeepsOrder(t *testing.T) {
	rows := testRows(t)
	matches := Filter(rows, "")
	require.Len(t, matches, len(rows))
	for i, m := range matches {
		assert.Equal(t, i, m.Index)
		assert.Empty(t, m.Matched)
	}
}

func TestFilter_FuzzyMatchesFolderText(t *testing.T) {
	rows := testRows(t)

	matches := Filter(rows, "docs")
	require.Len(t, matches, 1)
	assert.Equal(t, 2, matches[0].Index)
	assert.Len(t, matches[0].Matched, 4)
}

func TestFilter_MatchesUnsavedMarker(t *testing.T) {
	rows := testRows(t)

	matches := Filter(rows, "unsaved")
	require.NotEmpty(t, matches)
	assert.Equal(t, 3, matches[0].Index)
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, Filter(testRows(t), "qqqq"))
	assert.Empty(t, Filter(nil, "a"))
}
