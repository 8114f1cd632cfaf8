package model

import (
	"github.com/YuminosukeSato/id3tree/dataset"
)

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns the accuracy of the predictions on X against y.
	Score(X *dataset.Frame, y []string) (float64, error)
}

// Classifier combines interfaces for classification models.
type Classifier interface {
	Fitter
	Predictor
	Scorer

	// Classes returns the distinct labels seen during fitting, in order of
	// first occurrence.
	Classes() []string
}

// ParameterGetter is the interface for models that expose their parameters.
type ParameterGetter interface {
	GetParams() map[string]interface{}
}
