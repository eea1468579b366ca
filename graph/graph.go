// Package graph holds the in-memory observation graph, the loaders that
// fill it, and the publishing path to the knowledge graph.
package graph

import (
	"sort"
	"strings"

	"github.com/c360studio/semstreams/message"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// Store is an append-only triple store. Iteration order is insertion
// order, so identical inputs always produce identical outputs.
type Store struct {
	triples   []message.Triple
	bySubject map[string][]int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{bySubject: make(map[string][]int)}
}

// Add appends a triple.
func (s *Store) Add(t message.Triple) {
	s.bySubject[t.Subject] = append(s.bySubject[t.Subject], len(s.triples))
	s.triples = append(s.triples, t)
}

// AddAll appends triples in order.
func (s *Store) AddAll(ts []message.Triple) {
	for _, t := range ts {
		s.Add(t)
	}
}

// Len returns the number of triples.
func (s *Store) Len() int { return len(s.triples) }

// Triples returns all triples in insertion order.
func (s *Store) Triples() []message.Triple {
	out := make([]message.Triple, len(s.triples))
	copy(out, s.triples)
	return out
}

// Objects returns the objects of all triples matching subject and
// predicate, in insertion order.
func (s *Store) Objects(subject, predicate string) []any {
	var out []any
	for _, i := range s.bySubject[subject] {
		if s.triples[i].Predicate == predicate {
			out = append(out, s.triples[i].Object)
		}
	}
	return out
}

// FirstObject returns the first object for subject and predicate.
func (s *Store) FirstObject(subject, predicate string) (any, bool) {
	for _, i := range s.bySubject[subject] {
		if s.triples[i].Predicate == predicate {
			return s.triples[i].Object, true
		}
	}
	return nil, false
}

// FirstString returns the first object for subject and predicate as a
// string, or "" when absent or not a string.
func (s *Store) FirstString(subject, predicate string) string {
	obj, ok := s.FirstObject(subject, predicate)
	if !ok {
		return ""
	}
	str, _ := obj.(string)
	return str
}

// SubjectsWithObject returns the distinct subjects of triples carrying
// the given predicate and object, in first-seen order.
func (s *Store) SubjectsWithObject(predicate string, object any) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range s.triples {
		if t.Predicate == predicate && t.Object == object && !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
	}
	return out
}

// Subjects returns all distinct subjects in first-seen order.
func (s *Store) Subjects() []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range s.triples {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
	}
	return out
}

// PredicateStat tallies one predicate's usage and value completeness.
type PredicateStat struct {
	Name     string
	Count    int
	NonEmpty int
}

// Completeness is the non-empty fraction of the predicate's objects.
func (p PredicateStat) Completeness() float64 {
	if p.Count == 0 {
		return 0
	}
	return float64(p.NonEmpty) / float64(p.Count)
}

// NamespaceCount tallies one IRI namespace across subjects and objects.
type NamespaceCount struct {
	Namespace string
	Count     int
}

// Profile summarizes the store for the run report.
type Profile struct {
	TripleCount    int
	SubjectCount   int
	PredicateCount int
	Predicates     []PredicateStat
	Namespaces     []NamespaceCount
}

// Profile computes counts over the current contents. Predicates are
// reported sorted by name, namespaces by descending count.
func (s *Store) Profile() Profile {
	preds := make(map[string]*PredicateStat)
	namespaces := make(map[string]int)
	for _, t := range s.triples {
		st, ok := preds[t.Predicate]
		if !ok {
			st = &PredicateStat{Name: t.Predicate}
			preds[t.Predicate] = st
		}
		st.Count++
		if !emptyObject(t.Object) {
			st.NonEmpty++
		}
		if ns := namespaceOf(t.Subject); ns != "" {
			namespaces[ns]++
		}
		if obj, ok := t.Object.(string); ok {
			if ns := namespaceOf(obj); ns != "" {
				namespaces[ns]++
			}
		}
	}

	stats := make([]PredicateStat, 0, len(preds))
	for _, st := range preds {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })

	nsCounts := make([]NamespaceCount, 0, len(namespaces))
	for ns, n := range namespaces {
		nsCounts = append(nsCounts, NamespaceCount{Namespace: ns, Count: n})
	}
	sort.Slice(nsCounts, func(i, j int) bool {
		if nsCounts[i].Count != nsCounts[j].Count {
			return nsCounts[i].Count > nsCounts[j].Count
		}
		return nsCounts[i].Namespace < nsCounts[j].Namespace
	})

	return Profile{
		TripleCount:    len(s.triples),
		SubjectCount:   len(s.bySubject),
		PredicateCount: len(stats),
		Predicates:     stats,
		Namespaces:     nsCounts,
	}
}

func emptyObject(obj any) bool {
	if obj == nil {
		return true
	}
	s, ok := obj.(string)
	return ok && s == ""
}

// namespaceOf returns the IRI prefix up to the last '#' or '/', or ""
// for non-IRI values.
func namespaceOf(iri string) string {
	if !strings.HasPrefix(iri, "http://") && !strings.HasPrefix(iri, "https://") {
		return ""
	}
	if i := strings.LastIndexAny(iri, "#/"); i > len("https:/") {
		return iri[:i+1]
	}
	return ""
}

// Observations returns the subjects typed as TERN observations, in
// first-seen order.
func (s *Store) Observations() []string {
	return s.SubjectsWithObject(dqaf.ObsMetaType, dqaf.TernObservation)
}
