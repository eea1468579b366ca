package scoring

import (
	"fmt"
	"log/slog"

	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/matrix"
	"github.com/bdr-au/dataquality/stats"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// Score is one observation's outcome under one method.
type Score struct {
	Observation string
	Raw         float64
	Normalized  float64
	Tier        string
}

// MethodRun is the outcome of one scoring method over the batch.
type MethodRun struct {
	Name       string
	Scores     []Score
	TierCounts map[string]int
	Err        error
}

// Run applies every method to the matrix, writing a score result per
// observation. A method referencing a column outside the dimension
// catalogue, or producing a batch with no score spread, fails with a
// ConfigurationError recorded in its run; the remaining methods still
// execute. A catalogue column the batch never produced reads as 0.
func Run(methods []Method, registry *dqaf.Registry, mb *matrix.Builder, writer *graph.ResultWriter, logger *slog.Logger) []MethodRun {
	if logger == nil {
		logger = slog.Default()
	}

	runs := make([]MethodRun, 0, len(methods))
	for _, m := range methods {
		run := runOne(m, registry, mb, writer)
		if run.Err != nil {
			logger.Warn("scoring method aborted", "method", m.Name, "error", run.Err)
		} else {
			logger.Info("scoring method applied",
				"method", m.Name,
				"observations", len(run.Scores))
		}
		runs = append(runs, run)
	}
	return runs
}

func runOne(m Method, registry *dqaf.Registry, mb *matrix.Builder, writer *graph.ResultWriter) MethodRun {
	run := MethodRun{Name: m.Name, TierCounts: make(map[string]int)}

	cols := m.Columns()
	for _, wc := range cols {
		if !registry.HasColumn(wc.Column) {
			run.Err = &ConfigurationError{
				Method: m.Name,
				Reason: fmt.Sprintf("references unknown matrix column %q", wc.Column),
			}
			return run
		}
	}

	observations := mb.Observations()
	if len(observations) == 0 {
		run.Err = &ConfigurationError{Method: m.Name, Reason: "no observations to score"}
		return run
	}

	raw := make([]float64, len(observations))
	for i, obs := range observations {
		for _, wc := range cols {
			v, err := mb.ValueOrZero(obs, wc.Column)
			if err != nil {
				run.Err = err
				return run
			}
			raw[i] += wc.Weight * float64(v)
		}
	}

	lo, hi := raw[0], raw[0]
	for _, r := range raw {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	if hi == lo {
		run.Err = &ConfigurationError{
			Method: m.Name,
			Reason: fmt.Sprintf("all raw scores equal (%v), cannot normalize", lo),
		}
		return run
	}

	if err := mb.AppendColumn(m.Name); err != nil {
		run.Err = &ConfigurationError{Method: m.Name, Reason: err.Error()}
		return run
	}

	normalized := stats.MinMaxScale(raw)
	for i, obs := range observations {
		tier := TierFor(normalized[i])
		writer.WriteScore(obs, m.ResolvedIRI(), round4(normalized[i]), tier)
		if err := mb.SetExtra(obs, m.Name, fmt.Sprintf("%.4f", round4(normalized[i]))); err != nil {
			run.Err = err
			return run
		}
		run.Scores = append(run.Scores, Score{
			Observation: obs,
			Raw:         raw[i],
			Normalized:  round4(normalized[i]),
			Tier:        tier,
		})
		run.TierCounts[tier]++
	}
	return run
}

// round4 keeps scores at 4 decimal places end to end, so serialized
// values match reported ones.
func round4(x float64) float64 {
	const scale = 10000
	if x >= 0 {
		return float64(int64(x*scale+0.5)) / scale
	}
	return float64(int64(x*scale-0.5)) / scale
}
