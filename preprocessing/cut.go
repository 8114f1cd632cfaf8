// Package preprocessing turns raw tabular data into the categorical frames the
// tree is trained on: numeric columns are binned into labeled ranges and rows
// are split into training and test sets.
package preprocessing

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// Bins describes a partition of the real line into len(Edges)-1 intervals.
// Intervals are [e_i, e_i+1) by default and (e_i, e_i+1] when Right is set.
// Edges may start at -Inf and end at +Inf.
type Bins struct {
	Edges  []float64
	Labels []string
	Right  bool
}

// Validate checks that the edges are strictly increasing and that Labels, if
// given, has one entry per interval.
func (b Bins) Validate() error {
	if len(b.Edges) < 2 {
		return errors.NewValidationError("edges", "need at least two edges", b.Edges)
	}
	for i := 1; i < len(b.Edges); i++ {
		if !(b.Edges[i] > b.Edges[i-1]) {
			return errors.NewValidationError("edges", "must be strictly increasing", b.Edges)
		}
	}
	if len(b.Labels) != 0 && len(b.Labels) != len(b.Edges)-1 {
		return errors.NewValidationError("labels",
			fmt.Sprintf("need %d labels for %d edges", len(b.Edges)-1, len(b.Edges)), b.Labels)
	}
	return nil
}

// Label returns the label of interval i, or its interval notation when no
// labels are configured.
func (b Bins) Label(i int) string {
	if len(b.Labels) != 0 {
		return b.Labels[i]
	}
	lo, hi := formatEdge(b.Edges[i]), formatEdge(b.Edges[i+1])
	if b.Right {
		return "(" + lo + ", " + hi + "]"
	}
	return "[" + lo + ", " + hi + ")"
}

// Index returns the interval containing v, or -1 when v is outside every
// interval.
func (b Bins) Index(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	if !b.Right {
		return floats.Within(b.Edges, v)
	}
	i := sort.SearchFloat64s(b.Edges, v)
	if i == 0 || i == len(b.Edges) {
		return -1
	}
	return i - 1
}

// Bin maps one numeric string to its interval label. A value that does not
// parse or falls outside the bins is an InvalidInputError.
func (b Bins) Bin(s string) (string, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", errors.NewInvalidInputErrorf("Bin", "%q is not numeric", s)
	}
	idx := b.Index(v)
	if idx < 0 {
		return "", errors.NewInvalidInputErrorf("Bin", "%v is outside the bins", v)
	}
	return b.Label(idx), nil
}

// Discretize maps numeric strings to interval labels. The first value that
// cannot be binned fails the whole call.
func Discretize(values []string, b Bins) ([]string, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	out := make([]string, len(values))
	for i, s := range values {
		label, err := b.Bin(s)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out[i] = label
	}
	return out, nil
}

// Cut returns a copy of f with column replaced by its interval labels.
func Cut(f *dataset.Frame, column string, b Bins) (*dataset.Frame, error) {
	out, rowErrs, err := CutRows(f, column, b)
	if err != nil {
		return nil, err
	}
	for i, rerr := range rowErrs {
		if rerr != nil {
			return nil, errors.Wrapf(rerr, "row %d", i)
		}
	}
	return out, nil
}

// CutRows is Cut without failing on bad cells: a cell that cannot be binned is
// left as it was and its error is stored at its row in the returned slice.
// The error return covers a missing column or invalid bins.
func CutRows(f *dataset.Frame, column string, b Bins) (*dataset.Frame, []error, error) {
	if err := b.Validate(); err != nil {
		return nil, nil, err
	}
	values, err := f.Column(column)
	if err != nil {
		return nil, nil, err
	}
	labels := make([]string, len(values))
	rowErrs := make([]error, len(values))
	for i, s := range values {
		label, err := b.Bin(s)
		if err != nil {
			rowErrs[i] = errors.Wrapf(err, "binning column %q", column)
			label = s
		}
		labels[i] = label
	}
	all := make([]int, f.Len())
	for i := range all {
		all[i] = i
	}
	out, err := f.Take(all)
	if err != nil {
		return nil, nil, err
	}
	if err := out.SetColumn(column, labels); err != nil {
		return nil, nil, err
	}
	return out, rowErrs, nil
}

func formatEdge(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
