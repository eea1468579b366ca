package graph

import (
	"testing"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

func triple(s, p string, o any) message.Triple {
	return message.Triple{
		Subject:    s,
		Predicate:  p,
		Object:     o,
		Source:     "test",
		Timestamp:  time.Now(),
		Confidence: 1.0,
	}
}

func TestStoreInsertionOrder(t *testing.T) {
	s := NewStore()
	s.Add(triple("b", "p", "1"))
	s.Add(triple("a", "p", "2"))
	s.Add(triple("b", "q", "3"))

	all := s.Triples()
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].Subject)
	assert.Equal(t, "a", all[1].Subject)

	assert.Equal(t, []string{"b", "a"}, s.Subjects())
}

func TestStoreLookups(t *testing.T) {
	s := NewStore()
	s.Add(triple("obs", "p", "first"))
	s.Add(triple("obs", "p", "second"))
	s.Add(triple("obs", "q", 42))

	objs := s.Objects("obs", "p")
	assert.Equal(t, []any{"first", "second"}, objs)

	v, ok := s.FirstObject("obs", "p")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	assert.Equal(t, "first", s.FirstString("obs", "p"))
	assert.Equal(t, "", s.FirstString("obs", "q"), "non-string object yields empty")
	assert.Equal(t, "", s.FirstString("obs", "missing"))
}

func TestStoreProfile(t *testing.T) {
	s := NewStore()
	s.Add(triple("http://example.org/obs/a", "p", "1"))
	s.Add(triple("http://example.org/obs/a", "q", ""))
	s.Add(triple("http://example.org/obs/b", "p", "http://example.org/vocab/x"))

	profile := s.Profile()
	assert.Equal(t, 3, profile.TripleCount)
	assert.Equal(t, 2, profile.SubjectCount)
	assert.Equal(t, 2, profile.PredicateCount)

	require.Len(t, profile.Predicates, 2)
	assert.Equal(t, "p", profile.Predicates[0].Name)
	assert.Equal(t, 2, profile.Predicates[0].Count)
	assert.Equal(t, 2, profile.Predicates[0].NonEmpty)
	assert.Equal(t, 1.0, profile.Predicates[0].Completeness())
	assert.Equal(t, "q", profile.Predicates[1].Name)
	assert.Equal(t, 0, profile.Predicates[1].NonEmpty, "empty string object is incomplete")

	require.NotEmpty(t, profile.Namespaces)
	assert.Equal(t, "http://example.org/obs/", profile.Namespaces[0].Namespace)
	assert.Equal(t, 3, profile.Namespaces[0].Count, "subject namespace counted per triple")
}

func TestStoreObservations(t *testing.T) {
	s := NewStore()
	s.Add(triple("obs1", dqaf.ObsMetaType, dqaf.TernObservation))
	s.Add(triple("other", dqaf.ObsMetaType, "https://example.org/SomethingElse"))
	s.Add(triple("obs2", dqaf.ObsMetaType, dqaf.TernObservation))
	s.Add(triple("obs1", dqaf.ObsMetaType, dqaf.TernObservation)) // duplicate

	assert.Equal(t, []string{"obs1", "obs2"}, s.Observations())
}
