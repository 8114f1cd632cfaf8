package tree

import (
	"math"

	"github.com/YuminosukeSato/id3tree/core/parallel"
	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// AttributeGain pairs an attribute with its information gain at a node.
type AttributeGain struct {
	Attribute string  `json:"attribute"`
	Gain      float64 `json:"gain"`
}

// gainParallelThreshold is the attribute count up to which gains are
// computed on the calling goroutine whatever the worker count.
const gainParallelThreshold = 4

// AttributeGains computes the information gain of every attribute of view, in
// the view's attribute order. With workers other than 1 and more than
// gainParallelThreshold attributes the gains are computed concurrently
// (workers <= 0 means one per CPU); each goroutine writes only its own slots,
// so the result equals the sequential one.
func AttributeGains(view *dataset.View, workers int) []AttributeGain {
	attrs := view.Attributes()
	gains := make([]AttributeGain, len(attrs))
	parallel.ForEach(len(attrs), gainParallelThreshold, workers, func(i int) {
		gains[i] = AttributeGain{Attribute: attrs[i], Gain: InformationGain(view, attrs[i])}
	})
	return gains
}

// BestAttribute returns the attribute of view with the highest information
// gain, and that gain. Attributes are compared in view order with a strict
// greater-than, so the earliest attribute wins ties. A view without attributes
// is a ValidationError.
func BestAttribute(view *dataset.View, workers int) (string, float64, error) {
	if len(view.Attributes()) == 0 {
		return "", 0, errors.NewValidationError("view", "no attributes left to select from", 0)
	}
	best, bestGain := "", math.Inf(-1)
	for _, g := range AttributeGains(view, workers) {
		if g.Gain > bestGain {
			best, bestGain = g.Attribute, g.Gain
		}
	}
	return best, bestGain, nil
}
