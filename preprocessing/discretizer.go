package preprocessing

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// Binning strategies for KBinsDiscretizer.
const (
	StrategyUniform  = "uniform"
	StrategyQuantile = "quantile"
)

// KBinsDiscretizer learns bin edges for a numeric column and bins it.
//
//	d := preprocessing.NewKBinsDiscretizer("Age", 4, preprocessing.StrategyQuantile)
//	if err := d.Fit(train); err != nil { ... }
//	train, err = d.Transform(train)
//	test, err = d.Transform(test)
type KBinsDiscretizer struct {
	state *model.StateManager

	Column   string
	NBins    int
	Strategy string

	// Bins holds the learned edges. The outer edges are widened to -Inf and
	// +Inf so that unseen extremes still fall into the first or last bin.
	Bins Bins
}

// NewKBinsDiscretizer creates an unfitted KBinsDiscretizer.
func NewKBinsDiscretizer(column string, nBins int, strategy string) *KBinsDiscretizer {
	return &KBinsDiscretizer{
		state:    model.NewStateManager(),
		Column:   column,
		NBins:    nBins,
		Strategy: strategy,
	}
}

// Fit learns the edges from the values of Column in X.
func (d *KBinsDiscretizer) Fit(X *dataset.Frame) error {
	if d.NBins < 2 {
		return errors.NewValidationError("n_bins", "must be at least 2", d.NBins)
	}
	raw, err := X.Column(d.Column)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return errors.NewEmptyDataError("KBinsDiscretizer.Fit")
	}
	values := make([]float64, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) {
			return errors.NewInvalidInputErrorf("KBinsDiscretizer.Fit", "row %d: %q is not numeric", i, s)
		}
		values[i] = v
	}

	var edges []float64
	switch d.Strategy {
	case StrategyUniform, "":
		edges = make([]float64, d.NBins+1)
		floats.Span(edges, floats.Min(values), floats.Max(values))
	case StrategyQuantile:
		sort.Float64s(values)
		edges = make([]float64, d.NBins+1)
		for i := range edges {
			edges[i] = stat.Quantile(float64(i)/float64(d.NBins), stat.LinInterp, values, nil)
		}
	default:
		return errors.NewValidationError("strategy", "must be uniform or quantile", d.Strategy)
	}

	edges = dedupe(edges)
	if len(edges) < 2 {
		// a constant column gets a single bin
		edges = []float64{values[0], values[0]}
	}
	edges[0] = math.Inf(-1)
	edges[len(edges)-1] = math.Inf(1)

	d.Bins = Bins{Edges: edges}
	d.state.SetDimensions(1, len(values))
	d.state.SetFitted()
	return nil
}

// Transform returns a copy of X with Column binned by the learned edges.
func (d *KBinsDiscretizer) Transform(X *dataset.Frame) (*dataset.Frame, error) {
	if err := d.state.RequireFitted("KBinsDiscretizer", "Transform"); err != nil {
		return nil, err
	}
	return Cut(X, d.Column, d.Bins)
}

// FitTransform fits on X and transforms it.
func (d *KBinsDiscretizer) FitTransform(X *dataset.Frame) (*dataset.Frame, error) {
	if err := d.Fit(X); err != nil {
		return nil, err
	}
	return d.Transform(X)
}

// GetParams returns the hyperparameters.
func (d *KBinsDiscretizer) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"column":   d.Column,
		"n_bins":   d.NBins,
		"strategy": d.Strategy,
	}
}

// dedupe drops repeated edges from a sorted slice.
func dedupe(edges []float64) []float64 {
	out := edges[:0]
	for i, e := range edges {
		if i == 0 || e > out[len(out)-1] {
			out = append(out, e)
		}
	}
	return out
}
