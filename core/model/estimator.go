package model

import (
	"github.com/YuminosukeSato/id3tree/dataset"
)

// Fitter is a model that learns from a categorical feature frame and its labels.
type Fitter interface {
	Fit(X *dataset.Frame, y []string) error
}

// Predictor classifies records.
type Predictor interface {
	// Predict returns one Prediction per record, in input order. Problems with
	// a single record are reported in Prediction.Err; the returned error is
	// reserved for failures of the model itself.
	Predict(records []dataset.Record) ([]Prediction, error)
}

// Prediction is the outcome of classifying one record.
type Prediction struct {
	Label string `json:"label"`
	// Fallback is set when the record carried a value never seen at some node
	// during training and the node's majority label was returned instead.
	Fallback bool  `json:"fallback"`
	Err      error `json:"-"`
}

// Labels extracts the predicted labels. Failed predictions yield "".
func Labels(preds []Prediction) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		if p.Err == nil {
			out[i] = p.Label
		}
	}
	return out
}
