package graph

import (
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/google/uuid"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// AssessmentSource tags every triple written by the assessment run.
const AssessmentSource = "bdrdq.assess"

// ResultWriter appends assessment result nodes to a store. All results
// of one run share a single result time.
type ResultWriter struct {
	store      *Store
	resultTime time.Time
	count      int
}

// NewResultWriter creates a writer stamping results with resultTime.
func NewResultWriter(store *Store, resultTime time.Time) *ResultWriter {
	return &ResultWriter{store: store, resultTime: resultTime}
}

// Count returns the number of result nodes written so far.
func (w *ResultWriter) Count() int { return w.count }

// Store returns the underlying store.
func (w *ResultWriter) Store() *Store { return w.store }

// WriteResult attaches a fresh result node to observation, carrying the
// dimension's observed-property IRI and the outcome value.
func (w *ResultWriter) WriteResult(observation string, dim dqaf.DimensionDef, value dqaf.ResultValue) string {
	node := dqaf.ResultNamespace + uuid.NewString()
	w.add(observation, dqaf.ResultHasResult, node)
	w.add(node, dqaf.ResultObservedProperty, dim.AssessIRI)
	w.add(node, dqaf.ResultValuePred, value.Object())
	w.add(node, dqaf.ResultTime, w.resultTime.Format(time.RFC3339))
	w.count++
	return node
}

// WriteScore attaches a score result node produced by a scoring method.
// Scores carry the method IRI as observed property and a numeric value,
// plus the assigned tier label.
func (w *ResultWriter) WriteScore(observation, methodIRI string, score float64, tier string) string {
	node := dqaf.ResultNamespace + uuid.NewString()
	w.add(observation, dqaf.ResultHasResult, node)
	w.add(node, dqaf.ResultObservedProperty, methodIRI)
	w.add(node, dqaf.ResultValuePred, score)
	w.add(node, dqaf.ResultTier, tier)
	w.add(node, dqaf.ResultTime, w.resultTime.Format(time.RFC3339))
	w.count++
	return node
}

// WriteUseCase attaches a use-case satisfaction result node. The value
// is a boolean literal.
func (w *ResultWriter) WriteUseCase(observation, useCaseIRI string, satisfied bool) string {
	node := dqaf.ResultNamespace + uuid.NewString()
	w.add(observation, dqaf.ResultHasResult, node)
	w.add(node, dqaf.ResultObservedProperty, useCaseIRI)
	w.add(node, dqaf.ResultValuePred, satisfied)
	w.add(node, dqaf.ResultTime, w.resultTime.Format(time.RFC3339))
	w.count++
	return node
}

func (w *ResultWriter) add(subject, predicate string, object any) {
	w.store.Add(message.Triple{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     AssessmentSource,
		Timestamp:  w.resultTime,
		Confidence: 1.0,
	})
}
