package tree

import (
	"sort"

	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
)

// PredictRecord classifies a single record. The record must carry exactly the
// attributes the model was trained on; otherwise a SchemaMismatchError is
// returned.
//
// When the record holds a value that no training row had at some internal
// node, the majority label of that node is returned with Fallback set and an
// UnseenCategoryWarning is emitted through errors.Warn.
func (c *ID3Classifier) PredictRecord(record dataset.Record) (model.Prediction, error) {
	if err := c.state.RequireFitted(modelName, "PredictRecord"); err != nil {
		return model.Prediction{}, err
	}
	p := c.predictOne(0, record)
	return p, p.Err
}

// Predict classifies records in order. A record that fails the schema check
// gets a Prediction with Err set and the batch continues. The returned error
// is non-nil only when the model is not fitted.
func (c *ID3Classifier) Predict(records []dataset.Record) ([]model.Prediction, error) {
	if err := c.state.RequireFitted(modelName, "Predict"); err != nil {
		return nil, err
	}
	preds := make([]model.Prediction, len(records))
	fallbacks, failures := 0, 0
	for i, rec := range records {
		preds[i] = c.predictOne(i, rec)
		if preds[i].Err != nil {
			failures++
		}
		if preds[i].Fallback {
			fallbacks++
		}
	}
	c.logger.Debug("Prediction completed",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, len(preds),
		log.FallbacksKey, fallbacks,
		"failures", failures,
	)
	return preds, nil
}

// PredictFrame classifies every row of X.
func (c *ID3Classifier) PredictFrame(X *dataset.Frame) ([]model.Prediction, error) {
	return c.Predict(X.Records())
}

// Score returns the fraction of rows of X whose prediction equals the label in
// y. Rows whose prediction failed count as wrong.
func (c *ID3Classifier) Score(X *dataset.Frame, y []string) (float64, error) {
	if err := c.state.RequireFitted(modelName, "Score"); err != nil {
		return 0, err
	}
	if X.Len() != len(y) {
		return 0, errors.NewInvalidInputErrorf("Score", "%d feature rows but %d labels", X.Len(), len(y))
	}
	if len(y) == 0 {
		return 0, errors.NewEmptyDataError("Score")
	}
	preds, err := c.PredictFrame(X)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i, p := range preds {
		if p.Err == nil && p.Label == y[i] {
			correct++
		}
	}
	score := float64(correct) / float64(len(y))
	c.logger.Debug("Score computed", log.OperationKey, log.OperationScore, log.AccuracyKey, score)
	return score, nil
}

func (c *ID3Classifier) predictOne(row int, record dataset.Record) model.Prediction {
	if err := c.checkSchema(row, record); err != nil {
		return model.Prediction{Err: err}
	}
	node := c.root
	for !node.Leaf {
		value := record[node.Attribute]
		child, ok := node.Child(value)
		if !ok {
			errors.Warn(errors.NewUnseenCategoryWarning(node.Attribute, value, node.Class))
			return model.Prediction{Label: node.Class, Fallback: true}
		}
		node = child
	}
	return model.Prediction{Label: node.Class}
}

func (c *ID3Classifier) checkSchema(row int, record dataset.Record) error {
	for _, a := range c.attributes {
		if _, ok := record[a]; !ok {
			return errors.NewSchemaMismatchError(row, a, "missing attribute")
		}
	}
	if len(record) == len(c.attributes) {
		return nil
	}
	known := make(map[string]struct{}, len(c.attributes))
	for _, a := range c.attributes {
		known[a] = struct{}{}
	}
	var unknown []string
	for k := range record {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return errors.NewSchemaMismatchError(row, unknown[0], "attribute not seen during training")
}
