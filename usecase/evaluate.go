package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/bdr-au/dataquality/graph"
	"github.com/bdr-au/dataquality/matrix"
	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// Evaluation holds the outcome of one use case over the batch.
type Evaluation struct {
	Name      string
	Satisfied int
	Total     int
	Err       error
}

// Evaluate runs every definition over the matrix, writing a boolean
// result per observation and use case. A use case referencing a column
// outside the dimension catalogue fails with a ConfigurationError
// recorded in its evaluation; the remaining use cases still run. A
// catalogue column the batch never produced reads as 0.
func Evaluate(defs []Definition, registry *dqaf.Registry, mb *matrix.Builder, writer *graph.ResultWriter, logger *slog.Logger) []Evaluation {
	if logger == nil {
		logger = slog.Default()
	}

	evals := make([]Evaluation, 0, len(defs))
	for _, def := range defs {
		eval := evaluateOne(def, registry, mb, writer)
		if eval.Err != nil {
			logger.Warn("use case aborted", "use_case", def.Name, "error", eval.Err)
		} else {
			logger.Info("use case evaluated",
				"use_case", def.Name,
				"satisfied", eval.Satisfied,
				"total", eval.Total)
		}
		evals = append(evals, eval)
	}
	return evals
}

func evaluateOne(def Definition, registry *dqaf.Registry, mb *matrix.Builder, writer *graph.ResultWriter) Evaluation {
	eval := Evaluation{Name: def.Name}

	for _, col := range def.Columns() {
		if !registry.HasColumn(col) {
			eval.Err = &ConfigurationError{
				UseCase: def.Name,
				Reason:  fmt.Sprintf("references unknown matrix column %q", col),
			}
			return eval
		}
	}

	if err := mb.AppendColumn(def.Name); err != nil {
		eval.Err = &ConfigurationError{UseCase: def.Name, Reason: err.Error()}
		return eval
	}

	// Stable dimension order for deterministic result emission.
	dims := make([]string, 0, len(def.Required))
	for dim := range def.Required {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	for _, obs := range mb.Observations() {
		satisfied, err := satisfies(def, dims, mb, obs)
		if err != nil {
			eval.Err = err
			return eval
		}
		writer.WriteUseCase(obs, def.ResolvedIRI(), satisfied)
		cell := "0"
		if satisfied {
			cell = "1"
		}
		if err := mb.SetExtra(obs, def.Name, cell); err != nil {
			eval.Err = err
			return eval
		}
		eval.Total++
		if satisfied {
			eval.Satisfied++
		}
	}
	return eval
}

// satisfies checks that every constrained dimension produced one of
// its accepted labels for the observation.
func satisfies(def Definition, dims []string, mb *matrix.Builder, obs string) (bool, error) {
	for _, dim := range dims {
		hit := false
		for _, label := range def.Required[dim] {
			v, err := mb.ValueOrZero(obs, dim+":"+label)
			if err != nil {
				return false, err
			}
			if v == 1 {
				hit = true
				break
			}
		}
		if !hit {
			return false, nil
		}
	}
	return true, nil
}

// IsConfigurationError reports whether err is a use-case configuration
// problem rather than a runtime failure.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
