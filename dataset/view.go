package dataset

import (
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// View is an immutable view over categorical feature columns and a label
// column, restricted to a subset of rows. Filter and Drop return new views
// that share the underlying storage; nothing is ever written after
// construction, so views are safe to read from several goroutines.
type View struct {
	attributes []string
	columns    map[string][]string
	labels     []string
	rows       []int
}

// NewView builds a View over every row of X with labels y. It fails with an
// InvalidInputError when the lengths disagree or there are no rows.
func NewView(X *Frame, y []string) (*View, error) {
	if X == nil {
		return nil, errors.NewInvalidInputError("NewView", "nil feature frame")
	}
	if X.Len() != len(y) {
		return nil, errors.NewInvalidInputErrorf("NewView", "%d feature rows but %d labels", X.Len(), len(y))
	}
	if X.Len() == 0 {
		return nil, errors.NewEmptyDataError("NewView")
	}
	columns := make(map[string][]string, len(X.Columns))
	for j, c := range X.Columns {
		col := make([]string, X.Len())
		for i, row := range X.Rows {
			col[i] = row[j]
		}
		columns[c] = col
	}
	rows := make([]int, X.Len())
	for i := range rows {
		rows[i] = i
	}
	return &View{
		attributes: append([]string(nil), X.Columns...),
		columns:    columns,
		labels:     append([]string(nil), y...),
		rows:       rows,
	}, nil
}

// Attributes returns the remaining attribute names in order.
func (v *View) Attributes() []string {
	return append([]string(nil), v.attributes...)
}

// HasAttribute reports whether attribute is still part of the view.
func (v *View) HasAttribute(attribute string) bool {
	for _, a := range v.attributes {
		if a == attribute {
			return true
		}
	}
	return false
}

// RowCount returns the number of rows in the view.
func (v *View) RowCount() int {
	return len(v.rows)
}

// IsEmpty reports whether the view has no rows.
func (v *View) IsEmpty() bool {
	return len(v.rows) == 0
}

// Value returns the value of attribute in the i-th row of the view.
func (v *View) Value(i int, attribute string) string {
	return v.columns[attribute][v.rows[i]]
}

// Label returns the label of the i-th row of the view.
func (v *View) Label(i int) string {
	return v.labels[v.rows[i]]
}

// LabelValues returns the labels of the view's rows in row order.
func (v *View) LabelValues() []string {
	out := make([]string, len(v.rows))
	for i, r := range v.rows {
		out[i] = v.labels[r]
	}
	return out
}

// Record returns the i-th row restricted to the remaining attributes.
func (v *View) Record(i int) Record {
	rec := make(Record, len(v.attributes))
	for _, a := range v.attributes {
		rec[a] = v.columns[a][v.rows[i]]
	}
	return rec
}

// Filter returns the rows where attribute equals value. The attribute stays
// part of the returned view. Filtering on an attribute that is not in the view
// yields an empty view.
func (v *View) Filter(attribute, value string) *View {
	out := &View{attributes: v.attributes, columns: v.columns, labels: v.labels}
	if !v.HasAttribute(attribute) {
		return out
	}
	col := v.columns[attribute]
	for _, r := range v.rows {
		if col[r] == value {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Drop returns a view without the named attributes. Rows are unchanged.
func (v *View) Drop(attributes ...string) *View {
	drop := make(map[string]struct{}, len(attributes))
	for _, a := range attributes {
		drop[a] = struct{}{}
	}
	kept := make([]string, 0, len(v.attributes))
	for _, a := range v.attributes {
		if _, ok := drop[a]; !ok {
			kept = append(kept, a)
		}
	}
	return &View{attributes: kept, columns: v.columns, labels: v.labels, rows: v.rows}
}

// DistinctValues returns the values of attribute present in the view, in order
// of first occurrence.
func (v *View) DistinctValues(attribute string) []string {
	if !v.HasAttribute(attribute) {
		return nil
	}
	return distinct(v.rows, v.columns[attribute])
}

// DistinctLabels returns the labels present in the view, in order of first
// occurrence.
func (v *View) DistinctLabels() []string {
	return distinct(v.rows, v.labels)
}

// LabelCounts counts the rows of each label.
func (v *View) LabelCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range v.rows {
		counts[v.labels[r]]++
	}
	return counts
}

// MajorityLabel returns the most frequent label. Ties go to the label that
// occurs first in the view's rows. An empty view returns "".
func (v *View) MajorityLabel() string {
	counts := v.LabelCounts()
	best, bestCount := "", 0
	for _, l := range v.DistinctLabels() {
		if counts[l] > bestCount {
			best, bestCount = l, counts[l]
		}
	}
	return best
}

func distinct(rows []int, col []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		val := col[r]
		if _, ok := seen[val]; !ok {
			seen[val] = struct{}{}
			out = append(out, val)
		}
	}
	return out
}
