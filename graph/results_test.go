package graph

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

func TestWriteResult(t *testing.T) {
	store := NewStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	w := NewResultWriter(store, now)

	reg := dqaf.NewRegistry()
	dim, ok := reg.Dimension(dqaf.CoordinatePrecision)
	require.True(t, ok)
	value, err := dim.Value("High")
	require.NoError(t, err)

	node := w.WriteResult("http://example.org/obs/1", dim, value)
	assert.True(t, strings.HasPrefix(node, dqaf.ResultNamespace))
	assert.Equal(t, 1, w.Count())

	// Observation links to the result node
	links := store.Objects("http://example.org/obs/1", dqaf.ResultHasResult)
	require.Len(t, links, 1)
	assert.Equal(t, node, links[0])

	// Result node carries property, value, and time
	assert.Equal(t, dim.AssessIRI, store.FirstString(node, dqaf.ResultObservedProperty))
	assert.Equal(t, dim.Namespace+"High", store.FirstString(node, dqaf.ResultValuePred))
	assert.Equal(t, now.Format(time.RFC3339), store.FirstString(node, dqaf.ResultTime))
}

func TestWriteResultNodesAreUnique(t *testing.T) {
	store := NewStore()
	w := NewResultWriter(store, time.Now())

	reg := dqaf.NewRegistry()
	dim, _ := reg.Dimension(dqaf.DateCompleteness)
	value, err := dim.Value("empty")
	require.NoError(t, err)

	a := w.WriteResult("obs", dim, value)
	b := w.WriteResult("obs", dim, value)
	assert.NotEqual(t, a, b)
}

func TestWriteScore(t *testing.T) {
	store := NewStore()
	w := NewResultWriter(store, time.Now())

	node := w.WriteScore("obs", "https://example.org/method", 0.8333, "FFP1")

	v, ok := store.FirstObject(node, dqaf.ResultValuePred)
	require.True(t, ok)
	assert.Equal(t, 0.8333, v)
	assert.Equal(t, "FFP1", store.FirstString(node, dqaf.ResultTier))
}

func TestWriteUseCase(t *testing.T) {
	store := NewStore()
	w := NewResultWriter(store, time.Now())

	node := w.WriteUseCase("obs", "https://example.org/usecase", true)

	v, ok := store.FirstObject(node, dqaf.ResultValuePred)
	require.True(t, ok)
	assert.Equal(t, true, v)
}
