// Package report renders the human-readable summary of an assessment
// run.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bdr-au/dataquality/assess"
	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/matrix"
	"github.com/bdr-au/dataquality/scoring"
	"github.com/bdr-au/dataquality/usecase"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// Report collects everything the summary prints.
type Report struct {
	RunTime      time.Time
	InputProfile graph.Profile
	Observations int
	ResultCount  int

	Registry *dqaf.Registry
	Matrix   *matrix.Builder
	Skipped  []assess.Skip

	UseCases []usecase.Evaluation
	Scoring  []scoring.MethodRun
}

// Write renders the report as plain text. Dimensions that were skipped
// still appear, with zero counts and the skip reason.
func (r *Report) Write(w io.Writer) error {
	var sb strings.Builder

	sb.WriteString("Biodiversity Data Quality Assessment Report\n")
	sb.WriteString("===========================================\n\n")
	sb.WriteString(fmt.Sprintf("Run time: %s\n\n", r.RunTime.Format(time.RFC3339)))

	r.writeProfile(&sb)
	r.writeDimensions(&sb)
	r.writeUseCases(&sb)
	r.writeScoring(&sb)

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Report) writeProfile(sb *strings.Builder) {
	sb.WriteString("Input Graph\n")
	sb.WriteString("-----------\n")
	sb.WriteString(fmt.Sprintf("Triples:      %d\n", r.InputProfile.TripleCount))
	sb.WriteString(fmt.Sprintf("Subjects:     %d\n", r.InputProfile.SubjectCount))
	sb.WriteString(fmt.Sprintf("Predicates:   %d\n", r.InputProfile.PredicateCount))
	sb.WriteString(fmt.Sprintf("Observations: %d\n", r.Observations))
	sb.WriteString(fmt.Sprintf("Results:      %d\n\n", r.ResultCount))

	if len(r.InputProfile.Namespaces) > 0 {
		sb.WriteString("Namespaces:\n")
		for _, ns := range r.InputProfile.Namespaces {
			sb.WriteString(fmt.Sprintf("  %-60s %d\n", ns.Namespace, ns.Count))
		}
		sb.WriteString("\n")
	}

	if len(r.InputProfile.Predicates) > 0 {
		sb.WriteString("Predicate completeness:\n")
		for _, p := range r.InputProfile.Predicates {
			sb.WriteString(fmt.Sprintf("  %-40s %d/%d (%.0f%%)\n",
				p.Name, p.NonEmpty, p.Count, p.Completeness()*100))
		}
		sb.WriteString("\n")
	}
}

func (r *Report) writeDimensions(sb *strings.Builder) {
	sb.WriteString("Assessment Outcomes\n")
	sb.WriteString("-------------------\n")

	skipReasons := make(map[dqaf.Dimension]string)
	for _, s := range r.Skipped {
		skipReasons[s.Dimension] = s.Reason
	}

	columns := r.Matrix.Columns()
	totals := r.Matrix.ColumnTotals()
	counts := make(map[string]int, len(columns))
	for i, col := range columns {
		counts[col] = totals[i]
	}

	for _, dim := range r.Registry.Dimensions() {
		sb.WriteString(fmt.Sprintf("%s:\n", dim.Name))
		if reason, skipped := skipReasons[dim.Name]; skipped {
			sb.WriteString(fmt.Sprintf("  skipped: %s\n", reason))
		}
		for _, label := range dim.Labels {
			sb.WriteString(fmt.Sprintf("  %-30s %d\n", label.Name, counts[dim.Name.Column(label.Name)]))
		}
	}
	sb.WriteString("\n")
}

func (r *Report) writeUseCases(sb *strings.Builder) {
	if len(r.UseCases) == 0 {
		return
	}

	sb.WriteString("Use Cases\n")
	sb.WriteString("---------\n")
	for _, eval := range r.UseCases {
		if eval.Err != nil {
			sb.WriteString(fmt.Sprintf("%s: aborted (%v)\n", eval.Name, eval.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s: %d of %d observations satisfy\n",
			eval.Name, eval.Satisfied, eval.Total))
	}
	sb.WriteString("\n")
}

func (r *Report) writeScoring(sb *strings.Builder) {
	if len(r.Scoring) == 0 {
		return
	}

	sb.WriteString("Scoring\n")
	sb.WriteString("-------\n")
	for _, run := range r.Scoring {
		if run.Err != nil {
			sb.WriteString(fmt.Sprintf("%s: aborted (%v)\n", run.Name, run.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", run.Name))
		for _, tier := range []string{scoring.TierHigh, scoring.TierMedium, scoring.TierLow} {
			sb.WriteString(fmt.Sprintf("  %s (%s): %d\n",
				tier, scoring.TierName(tier), run.TierCounts[tier]))
		}
		lo, hi := scoreRange(run)
		sb.WriteString(fmt.Sprintf("  score range: %.4f to %.4f\n", lo, hi))
	}
}

func scoreRange(run scoring.MethodRun) (lo, hi float64) {
	if len(run.Scores) == 0 {
		return 0, 0
	}
	lo, hi = run.Scores[0].Normalized, run.Scores[0].Normalized
	for _, s := range run.Scores {
		if s.Normalized < lo {
			lo = s.Normalized
		}
		if s.Normalized > hi {
			hi = s.Normalized
		}
	}
	return lo, hi
}
