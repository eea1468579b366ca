package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/component"
	"github.com/c360studio/semstreams/message"
)

func init() {
	err := component.RegisterPayload(&component.PayloadRegistration{
		Domain:      "assessment",
		Category:    "run",
		Version:     "v1",
		Description: "Assessment run payload carrying data-quality result triples",
		Factory:     func() any { return &RunEntityPayload{} },
	})
	if err != nil {
		panic("failed to register RunEntityPayload: " + err.Error())
	}
}

// RunEntityType is the message type for assessment run payloads.
var RunEntityType = message.Type{Domain: "assessment", Category: "run", Version: "v1"}

// RunEntityPayload implements message.Payload and graph.Graphable for
// assessment run ingestion. One payload carries the full results graph
// of a single run.
type RunEntityPayload struct {
	EntityID_  string           `json:"id"`
	RunID      string           `json:"run_id"`
	TripleData []message.Triple `json:"triples"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (p *RunEntityPayload) EntityID() string          { return p.EntityID_ }
func (p *RunEntityPayload) Triples() []message.Triple { return p.TripleData }
func (p *RunEntityPayload) Schema() message.Type      { return RunEntityType }

func (p *RunEntityPayload) Validate() error {
	if p.EntityID_ == "" {
		return errors.New("entity ID is required")
	}
	if p.RunID == "" {
		return errors.New("run ID is required")
	}
	return nil
}

func (p *RunEntityPayload) MarshalJSON() ([]byte, error) {
	type Alias RunEntityPayload
	return json.Marshal((*Alias)(p))
}

func (p *RunEntityPayload) UnmarshalJSON(data []byte) error {
	type Alias RunEntityPayload
	return json.Unmarshal(data, (*Alias)(p))
}

// NewRunEntityPayload creates the graph entity for one assessment run.
func NewRunEntityPayload(runID string, triples []message.Triple) *RunEntityPayload {
	return &RunEntityPayload{
		EntityID_:  RunEntityID(runID),
		RunID:      runID,
		TripleData: triples,
		UpdatedAt:  time.Now(),
	}
}

// RunEntityID generates a consistent entity ID for an assessment run.
// Format: bdrdq.local.assessment.run.<id>
func RunEntityID(runID string) string {
	return fmt.Sprintf("bdrdq.local.assessment.run.%s", runID)
}
