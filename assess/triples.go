package assess

import (
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

func assessmentDateTriple(observation, date string, now time.Time) message.Triple {
	return message.Triple{
		Subject:    observation,
		Predicate:  dqaf.PropAssessmentDate,
		Object:     date,
		Source:     graph.AssessmentSource,
		Timestamp:  now,
		Confidence: 1.0,
	}
}
