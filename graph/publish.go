package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// Subject for graph ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// PublishResults publishes the assessment result triples of one run to
// the knowledge graph as a single entity.
func PublishResults(ctx context.Context, nc *natsclient.Client, runID string, triples []message.Triple) error {
	if nc == nil {
		return nil // Skip publishing if no NATS client (graceful degradation)
	}

	payload := NewRunEntityPayload(runID, triples)
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("invalid run entity: %w", err)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal run entity: %w", err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish run entity: %w", err)
	}

	return nil
}
