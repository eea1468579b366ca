// Package storage archives assessment run summaries using NATS KV.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// BucketRuns is the KV bucket holding archived run summaries.
const BucketRuns = "BDRDQ_RUNS"

// SkipRecord notes a dimension that was not assessed in a run.
type SkipRecord struct {
	Dimension string `json:"dimension"`
	Reason    string `json:"reason"`
}

// UseCaseRecord summarises one use case evaluation.
type UseCaseRecord struct {
	Name      string `json:"name"`
	Satisfied int    `json:"satisfied"`
	Total     int    `json:"total"`
	Error     string `json:"error,omitempty"`
}

// MethodRecord summarises one scoring method run.
type MethodRecord struct {
	Name       string         `json:"name"`
	TierCounts map[string]int `json:"tier_counts,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// RunRecord is the archived summary of one assessment run.
type RunRecord struct {
	ID           string          `json:"id"`
	StartedAt    time.Time       `json:"started_at"`
	Inputs       []string        `json:"inputs"`
	Observations int             `json:"observations"`
	Results      int             `json:"results"`
	Skipped      []SkipRecord    `json:"skipped,omitempty"`
	UseCases     []UseCaseRecord `json:"use_cases,omitempty"`
	Methods      []MethodRecord  `json:"methods,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Archive provides run summary storage backed by NATS KV.
type Archive struct {
	runs jetstream.KeyValue
}

// NewArchive creates an Archive with the given JetStream context.
// It creates the runs bucket if it doesn't exist.
func NewArchive(ctx context.Context, js jetstream.JetStream) (*Archive, error) {
	runs, err := getOrCreateBucket(ctx, js, BucketRuns)
	if err != nil {
		return nil, fmt.Errorf("create runs bucket: %w", err)
	}
	return &Archive{runs: runs}, nil
}

func getOrCreateBucket(ctx context.Context, js jetstream.JetStream, name string) (jetstream.KeyValue, error) {
	kv, err := js.KeyValue(ctx, name)
	if err == nil {
		return kv, nil
	}
	// Bucket doesn't exist, create it
	return js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      name,
		Description: "bdrdq assessment run summaries",
		History:     5, // Keep last 5 revisions
	})
}

// SaveRun archives a run summary under its run ID.
func (a *Archive) SaveRun(ctx context.Context, r *RunRecord) error {
	if r.ID == "" {
		return fmt.Errorf("run ID is required")
	}
	r.CreatedAt = time.Now()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal run record: %w", err)
	}

	if _, err := a.runs.Create(ctx, r.ID, data); err != nil {
		return fmt.Errorf("store run record: %w", err)
	}

	return nil
}

// GetRun retrieves an archived run by ID.
func (a *Archive) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	entry, err := a.runs.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get run record: %w", err)
	}

	var r RunRecord
	if err := json.Unmarshal(entry.Value(), &r); err != nil {
		return nil, fmt.Errorf("unmarshal run record: %w", err)
	}

	return &r, nil
}

// ListRuns returns all archived runs, most recent first.
func (a *Archive) ListRuns(ctx context.Context) ([]*RunRecord, error) {
	keys, err := a.runs.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list run keys: %w", err)
	}

	records := make([]*RunRecord, 0, len(keys))
	for _, key := range keys {
		entry, err := a.runs.Get(ctx, key)
		if err != nil {
			continue // Skip entries that fail to load
		}
		var r RunRecord
		if err := json.Unmarshal(entry.Value(), &r); err != nil {
			continue
		}
		records = append(records, &r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].StartedAt.After(records[j].StartedAt)
	})

	return records, nil
}

// isNotFound checks if an error indicates a key was not found.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "key not found")
}
