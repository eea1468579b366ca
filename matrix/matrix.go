// Package matrix builds the one-hot assessment matrix: one row per
// observation, one column per "{dimension}:{label}" pair.
package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Builder accumulates assessment outcomes into a dense 0/1 matrix.
// Indicator columns appear when a label is first observed, so the
// column count grows with the distinct (dimension, label) pairs the
// batch actually produces; rows appear as observations are recorded.
type Builder struct {
	columns  []string
	colIndex map[string]int

	rowOrder []string
	rows     map[string][]int8

	// recordNumbers orders rows in the CSV output.
	recordNumbers map[string]int

	// Appended columns carry use-case booleans and method scores next
	// to the indicator cells. Cells default to empty.
	extraCols  []string
	extraIndex map[string]int
	extraRows  map[string][]string
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		colIndex:      make(map[string]int),
		rows:          make(map[string][]int8),
		recordNumbers: make(map[string]int),
		extraIndex:    make(map[string]int),
		extraRows:     make(map[string][]string),
	}
}

// ensureColumn interns an indicator column, backfilling existing rows
// with zeros.
func (b *Builder) ensureColumn(column string) int {
	if i, ok := b.colIndex[column]; ok {
		return i
	}
	i := len(b.columns)
	b.colIndex[column] = i
	b.columns = append(b.columns, column)
	for obs, row := range b.rows {
		b.rows[obs] = append(row, 0)
	}
	return i
}

// AppendColumn declares a free-form column. Use-case evaluation and
// scoring add their outcome columns this way.
func (b *Builder) AppendColumn(name string) error {
	if _, dup := b.colIndex[name]; dup {
		return fmt.Errorf("duplicate matrix column %q", name)
	}
	if _, dup := b.extraIndex[name]; dup {
		return fmt.Errorf("duplicate matrix column %q", name)
	}
	b.extraIndex[name] = len(b.extraCols)
	b.extraCols = append(b.extraCols, name)
	for obs := range b.rows {
		b.extraRows[obs] = append(b.extraRows[obs], "")
	}
	return nil
}

// SetExtra writes a cell in an appended column.
func (b *Builder) SetExtra(observation, column, value string) error {
	if _, ok := b.rows[observation]; !ok {
		return fmt.Errorf("matrix: unknown observation %q", observation)
	}
	i, ok := b.extraIndex[column]
	if !ok {
		return fmt.Errorf("matrix: unknown column %q", column)
	}
	b.extraRows[observation][i] = value
	return nil
}

// Columns returns the indicator column keys in first-observed order.
func (b *Builder) Columns() []string {
	out := make([]string, len(b.columns))
	copy(out, b.columns)
	return out
}

// HasColumn reports whether an indicator column has been observed.
func (b *Builder) HasColumn(column string) bool {
	_, ok := b.colIndex[column]
	return ok
}

// RowCount returns the number of observations recorded.
func (b *Builder) RowCount() int { return len(b.rowOrder) }

// EnsureRow creates an all-zero row for an observation if absent, so
// every observation appears in the matrix even when a dimension never
// fired for it.
func (b *Builder) EnsureRow(observation string, recordNumber int) {
	if _, ok := b.rows[observation]; ok {
		return
	}
	b.rows[observation] = make([]int8, len(b.columns))
	b.extraRows[observation] = make([]string, len(b.extraCols))
	b.rowOrder = append(b.rowOrder, observation)
	b.recordNumbers[observation] = recordNumber
}

// Set marks the column for an observation, creating the column on
// first use. The row must exist.
func (b *Builder) Set(observation, column string) error {
	if _, ok := b.rows[observation]; !ok {
		return fmt.Errorf("matrix: unknown observation %q", observation)
	}
	i := b.ensureColumn(column)
	b.rows[observation][i] = 1
	return nil
}

// Row returns a copy of the row for an observation.
func (b *Builder) Row(observation string) ([]int8, bool) {
	row, ok := b.rows[observation]
	if !ok {
		return nil, false
	}
	out := make([]int8, len(row))
	copy(out, row)
	return out, true
}

// Value returns the cell for an observation and column.
func (b *Builder) Value(observation, column string) (int8, error) {
	row, ok := b.rows[observation]
	if !ok {
		return 0, fmt.Errorf("matrix: unknown observation %q", observation)
	}
	i, ok := b.colIndex[column]
	if !ok {
		return 0, fmt.Errorf("matrix: unknown column %q", column)
	}
	return row[i], nil
}

// ValueOrZero returns the cell for an observation and column, reading
// a column the batch never produced as 0.
func (b *Builder) ValueOrZero(observation, column string) (int8, error) {
	row, ok := b.rows[observation]
	if !ok {
		return 0, fmt.Errorf("matrix: unknown observation %q", observation)
	}
	i, ok := b.colIndex[column]
	if !ok {
		return 0, nil
	}
	return row[i], nil
}

// Observations returns row keys ordered by record number, breaking
// ties on the observation id.
func (b *Builder) Observations() []string {
	out := make([]string, len(b.rowOrder))
	copy(out, b.rowOrder)
	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := b.recordNumbers[out[i]], b.recordNumbers[out[j]]
		if ni != nj {
			return ni < nj
		}
		return out[i] < out[j]
	})
	return out
}

// ColumnTotals sums each indicator column over all rows.
func (b *Builder) ColumnTotals() []int {
	totals := make([]int, len(b.columns))
	for _, row := range b.rows {
		for i, v := range row {
			totals[i] += int(v)
		}
	}
	return totals
}

// WriteCSV writes the matrix with an "observation" id column, the
// observed indicator columns, then any appended columns, rows ordered
// by record number.
func (b *Builder) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, 1+len(b.columns)+len(b.extraCols))
	header = append(header, "observation")
	header = append(header, b.columns...)
	header = append(header, b.extraCols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write matrix header: %w", err)
	}

	for _, obs := range b.Observations() {
		row := b.rows[obs]
		fields := make([]string, 0, len(header))
		fields = append(fields, obs)
		for _, v := range row {
			fields = append(fields, strconv.Itoa(int(v)))
		}
		fields = append(fields, b.extraRows[obs]...)
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("write matrix row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
