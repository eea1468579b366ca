package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

func sampleTriples() []message.Triple {
	now := time.Now()
	mk := func(s, p string, o any) message.Triple {
		return message.Triple{Subject: s, Predicate: p, Object: o, Source: "test", Timestamp: now, Confidence: 1.0}
	}
	return []message.Triple{
		mk("http://example.org/obs/1", dqaf.ResultHasResult, dqaf.ResultNamespace+"r1"),
		mk(dqaf.ResultNamespace+"r1", dqaf.ResultObservedProperty, dqaf.AssessNamespace+"date_recency/"),
		mk(dqaf.ResultNamespace+"r1", dqaf.ResultValuePred, dqaf.VocabNamespace+"date_recency/recent_20_years"),
		mk(dqaf.ResultNamespace+"r1", dqaf.ResultTime, "2024-06-01T12:00:00Z"),
	}
}

func TestExportNTriples(t *testing.T) {
	exp := NewRDFExporter()
	exp.AddTriples(sampleTriples())

	out, err := exp.Export(FormatNTriples)
	require.NoError(t, err)

	assert.Contains(t, out, "<http://example.org/obs/1> <"+dqaf.PropHasResult+"> <"+dqaf.ResultNamespace+"r1> .")
	assert.Contains(t, out, "<"+dqaf.SosaObservedProperty+">")
	assert.Contains(t, out, `"2024-06-01T12:00:00Z"^^<http://www.w3.org/2001/XMLSchema#dateTime>`)
}

func TestExportTurtle(t *testing.T) {
	exp := NewRDFExporter()
	exp.AddTriples(sampleTriples())

	out, err := exp.Export(FormatTurtle)
	require.NoError(t, err)

	assert.Contains(t, out, "@prefix dqaf: <"+dqaf.Namespace+"> .")
	assert.Contains(t, out, "<http://example.org/obs/1>")
	assert.Contains(t, out, `"2024-06-01T12:00:00Z"^^xsd:dateTime`)
	// Subject block ends with a full stop
	assert.Contains(t, out, " .\n")
}

func TestExportJSONLDIsValidJSON(t *testing.T) {
	exp := NewRDFExporter()
	exp.AddTriples(sampleTriples())

	out, err := exp.Export(FormatJSONLD)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "@context")
	assert.Contains(t, doc, "@graph")

	graph, ok := doc["@graph"].([]any)
	require.True(t, ok)
	assert.Len(t, graph, 2, "two subjects")
}

func TestExportUnsupportedFormat(t *testing.T) {
	exp := NewRDFExporter()
	_, err := exp.Export(Format("rdfxml"))
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("turtle")
	require.NoError(t, err)
	assert.Equal(t, FormatTurtle, f)

	_, err = ParseFormat("bogus")
	assert.Error(t, err)
}

func TestNumericAndBoolObjects(t *testing.T) {
	now := time.Now()
	exp := NewRDFExporter()
	exp.AddTriples([]message.Triple{
		{Subject: "http://example.org/s", Predicate: dqaf.ResultValuePred, Object: 0.8333, Source: "test", Timestamp: now, Confidence: 1.0},
		{Subject: "http://example.org/s", Predicate: dqaf.ResultValuePred, Object: true, Source: "test", Timestamp: now, Confidence: 1.0},
	})

	out, err := exp.Export(FormatNTriples)
	require.NoError(t, err)
	assert.Contains(t, out, `"0.8333"^^<http://www.w3.org/2001/XMLSchema#decimal>`)
	assert.Contains(t, out, `"true"^^<http://www.w3.org/2001/XMLSchema#boolean>`)
}

func TestVocabTriples(t *testing.T) {
	reg := dqaf.NewRegistry()
	triples := VocabTriples(reg)
	assert.NotEmpty(t, triples)

	out, err := ExportVocab(reg, FormatTurtle)
	require.NoError(t, err)
	assert.Contains(t, out, dqaf.VocabNamespace+"coordinate_precision/High")
	assert.Contains(t, out, "skos/core#prefLabel")
	assert.Contains(t, out, "skos/core#definition")
}
