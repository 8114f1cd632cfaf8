package tree

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/id3tree/dataset"
)

// Entropy returns the Shannon entropy, in bits, of the label distribution of
// view. An empty view has entropy 0.
func Entropy(view *dataset.View) float64 {
	n := view.RowCount()
	if n == 0 {
		return 0
	}
	counts := view.LabelCounts()
	labels := view.DistinctLabels()
	p := make([]float64, len(labels))
	for i, l := range labels {
		p[i] = float64(counts[l]) / float64(n)
	}
	// stat.Entropy uses the natural logarithm
	return stat.Entropy(p) / math.Ln2
}

// InformationGain returns the entropy of view minus the row-weighted entropy
// of the partitions obtained by splitting view on attribute. Entropies are
// recomputed from the given view on every call. An empty view, or an
// attribute that is not part of view, yields 0.
func InformationGain(view *dataset.View, attribute string) float64 {
	n := view.RowCount()
	if n == 0 || !view.HasAttribute(attribute) {
		return 0
	}
	values := view.DistinctValues(attribute)
	weights := make([]float64, len(values))
	entropies := make([]float64, len(values))
	for i, v := range values {
		child := view.Filter(attribute, v)
		weights[i] = float64(child.RowCount()) / float64(n)
		entropies[i] = Entropy(child)
	}
	return Entropy(view) - floats.Dot(weights, entropies)
}
