// Package dataset holds the categorical data structures the tree is trained on:
// Frame, an ordered rectangular table produced by the loaders and the
// preprocessing helpers, and View, the immutable row/column subset used while
// growing a tree.
package dataset

import (
	"fmt"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// Record maps attribute names to categorical values.
type Record map[string]string

// Frame is an ordered table of categorical values. Columns are unique and
// every row has exactly len(Columns) cells.
type Frame struct {
	Columns []string
	Rows    [][]string
}

// NewFrame validates columns and rows and returns a Frame that owns copies of
// them.
func NewFrame(columns []string, rows [][]string) (*Frame, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			return nil, errors.NewInvalidInputErrorf("NewFrame", "duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}
	out := &Frame{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, len(rows)),
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, errors.NewInvalidInputErrorf("NewFrame", "row %d has %d cells, want %d", i, len(row), len(columns))
		}
		out.Rows[i] = append([]string(nil), row...)
	}
	return out, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Index returns the position of column name, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of the values of column name.
func (f *Frame) Column(name string) ([]string, error) {
	idx := f.Index(name)
	if idx < 0 {
		return nil, errors.Wrapf(errors.ErrUnknownAttribute, "column %q", name)
	}
	out := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// SetColumn replaces the values of column name in place.
func (f *Frame) SetColumn(name string, values []string) error {
	idx := f.Index(name)
	if idx < 0 {
		return errors.Wrapf(errors.ErrUnknownAttribute, "column %q", name)
	}
	if len(values) != len(f.Rows) {
		return errors.NewInvalidInputErrorf("SetColumn", "%d values for %d rows", len(values), len(f.Rows))
	}
	for i := range f.Rows {
		f.Rows[i][idx] = values[i]
	}
	return nil
}

// AddColumn appends a new column in place.
func (f *Frame) AddColumn(name string, values []string) error {
	if f.Index(name) >= 0 {
		return errors.NewInvalidInputErrorf("AddColumn", "column %q already exists", name)
	}
	if len(values) != len(f.Rows) {
		return errors.NewInvalidInputErrorf("AddColumn", "%d values for %d rows", len(values), len(f.Rows))
	}
	f.Columns = append(append([]string(nil), f.Columns...), name)
	for i, row := range f.Rows {
		f.Rows[i] = append(append(make([]string, 0, len(row)+1), row...), values[i])
	}
	return nil
}

// Drop returns a new Frame without the named columns. Unknown names are an
// error so that typos in configuration do not go unnoticed.
func (f *Frame) Drop(names ...string) (*Frame, error) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		if f.Index(n) < 0 {
			return nil, errors.Wrapf(errors.ErrUnknownAttribute, "drop column %q", n)
		}
		drop[n] = struct{}{}
	}
	keep := make([]int, 0, len(f.Columns))
	cols := make([]string, 0, len(f.Columns))
	for i, c := range f.Columns {
		if _, ok := drop[c]; !ok {
			keep = append(keep, i)
			cols = append(cols, c)
		}
	}
	rows := make([][]string, len(f.Rows))
	for r, row := range f.Rows {
		out := make([]string, len(keep))
		for j, idx := range keep {
			out[j] = row[idx]
		}
		rows[r] = out
	}
	return &Frame{Columns: cols, Rows: rows}, nil
}

// Pop splits off column name, returning the remaining features and the
// popped values. It is how a label column is separated from the features.
func (f *Frame) Pop(name string) (*Frame, []string, error) {
	values, err := f.Column(name)
	if err != nil {
		return nil, nil, err
	}
	rest, err := f.Drop(name)
	if err != nil {
		return nil, nil, err
	}
	return rest, values, nil
}

// Take returns a new Frame with the rows at the given indices, in that order.
func (f *Frame) Take(indices []int) (*Frame, error) {
	rows := make([][]string, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= len(f.Rows) {
			return nil, errors.NewInvalidInputErrorf("Take", "row index %d out of range [0,%d)", idx, len(f.Rows))
		}
		rows[i] = append([]string(nil), f.Rows[idx]...)
	}
	return &Frame{Columns: append([]string(nil), f.Columns...), Rows: rows}, nil
}

// Record returns row i as a Record.
func (f *Frame) Record(i int) Record {
	rec := make(Record, len(f.Columns))
	for j, c := range f.Columns {
		rec[c] = f.Rows[i][j]
	}
	return rec
}

// Records returns every row as a Record.
func (f *Frame) Records() []Record {
	out := make([]Record, len(f.Rows))
	for i := range f.Rows {
		out[i] = f.Record(i)
	}
	return out
}

func (f *Frame) String() string {
	return fmt.Sprintf("Frame(%d rows x %d columns)", len(f.Rows), len(f.Columns))
}
