package dataset

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Table is an in-memory dataset with named columns. Derived columns are
// appended in place; reordering produces a new Table via Subset.
type Table struct {
	// Name is the base name of the file the table was loaded from.
	Name string
	df   dataframe.DataFrame
}

// FromDataFrame wraps an existing DataFrame.
func FromDataFrame(name string, df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("load %s: %w", name, df.Err)
	}
	return &Table{Name: name, df: df}, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.df.Nrow() }

// Names returns column names in table order.
func (t *Table) Names() []string { return t.df.Names() }

// Has reports whether the column exists.
func (t *Table) Has(col string) bool {
	for _, n := range t.df.Names() {
		if n == col {
			return true
		}
	}
	return false
}

// Kind reports numeric|categorical|bool|unknown for a column.
func (t *Table) Kind(col string) string {
	if !t.Has(col) {
		return "unknown"
	}
	switch t.df.Col(col).Type() {
	case series.Int, series.Float:
		return "numeric"
	case series.Bool:
		return "bool"
	case series.String:
		return "categorical"
	default:
		return "unknown"
	}
}

// Floats returns a numeric column as float64 values. Missing cells are NaN.
func (t *Table) Floats(col string) ([]float64, error) {
	if !t.Has(col) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	if t.Kind(col) != "numeric" {
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotNumeric, col, t.df.Col(col).Type())
	}
	return t.df.Col(col).Float(), nil
}

// Strings returns the column values as strings exactly as stored.
func (t *Table) Strings(col string) ([]string, error) {
	if !t.Has(col) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	return t.df.Col(col).Records(), nil
}

// Missing returns a per-row missing mask for the column. NaN counts as missing.
func (t *Table) Missing(col string) ([]bool, error) {
	if !t.Has(col) {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
	}
	mask := t.df.Col(col).IsNaN()
	if t.Kind(col) == "numeric" {
		for i, v := range t.df.Col(col).Float() {
			mask[i] = mask[i] || math.IsNaN(v)
		}
	}
	return mask, nil
}

// SetFloats appends the column, or replaces it when it already exists.
func (t *Table) SetFloats(col string, vals []float64) error {
	if len(vals) != t.Len() {
		return fmt.Errorf("set %s: got %d values for %d rows", col, len(vals), t.Len())
	}
	out := t.df.Mutate(series.New(vals, series.Float, col))
	if out.Err != nil {
		return fmt.Errorf("set %s: %w", col, out.Err)
	}
	t.df = out
	return nil
}

// Subset returns a new table holding the given rows in the given order.
func (t *Table) Subset(idx []int) (*Table, error) {
	if len(idx) == 0 {
		return nil, fmt.Errorf("subset %s: %w", t.Name, ErrEmpty)
	}
	out := t.df.Subset(idx)
	if out.Err != nil {
		return nil, fmt.Errorf("subset %s: %w", t.Name, out.Err)
	}
	return &Table{Name: t.Name, df: out}, nil
}

// Head returns up to n data rows formatted as strings.
func (t *Table) Head(n int) [][]string {
	recs := t.df.Records()
	if len(recs) <= 1 {
		return nil
	}
	rows := recs[1:]
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// RequireColumns fails on the first absent column.
func RequireColumns(t *Table, cols ...string) error {
	for _, c := range cols {
		if !t.Has(c) {
			return fmt.Errorf("%s: %w: %s", t.Name, ErrMissingColumn, c)
		}
	}
	return nil
}
