// Package metrics evaluates categorical predictions against true labels.
package metrics

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// Accuracy returns the fraction of positions where yPred equals yTrue.
func Accuracy(yTrue, yPred []string) (float64, error) {
	if err := checkLabels("Accuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix counts predictions per (true, predicted) label pair. Row i
// and column i both refer to Labels[i].
type ConfusionMatrix struct {
	Labels []string
	Counts *mat.Dense
	index  map[string]int
}

// NewConfusionMatrix builds the confusion matrix of yTrue against yPred.
// Without explicit labels the label set is every label of yTrue followed by
// the labels only seen in yPred, each in order of first occurrence. A label
// outside an explicit label set is a ValueError.
func NewConfusionMatrix(yTrue, yPred []string, labels ...string) (*ConfusionMatrix, error) {
	if err := checkLabels("ConfusionMatrix", yTrue, yPred); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		labels = firstOccurrence(yTrue, yPred)
	}
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		if _, dup := index[l]; dup {
			return nil, errors.NewValueError("ConfusionMatrix", fmt.Sprintf("duplicate label %q", l))
		}
		index[l] = i
	}

	counts := mat.NewDense(len(labels), len(labels), nil)
	for k := range yTrue {
		i, ok := index[yTrue[k]]
		if !ok {
			return nil, errors.NewValueError("ConfusionMatrix", fmt.Sprintf("unknown true label %q", yTrue[k]))
		}
		j, ok := index[yPred[k]]
		if !ok {
			return nil, errors.NewValueError("ConfusionMatrix", fmt.Sprintf("unknown predicted label %q", yPred[k]))
		}
		counts.Set(i, j, counts.At(i, j)+1)
	}
	return &ConfusionMatrix{
		Labels: append([]string(nil), labels...),
		Counts: counts,
		index:  index,
	}, nil
}

// At returns the number of rows with true label trueLabel predicted as
// predLabel.
func (c *ConfusionMatrix) At(trueLabel, predLabel string) int {
	i, ok := c.index[trueLabel]
	if !ok {
		return 0
	}
	j, ok := c.index[predLabel]
	if !ok {
		return 0
	}
	return int(c.Counts.At(i, j))
}

// Total returns the number of counted predictions.
func (c *ConfusionMatrix) Total() int {
	return int(mat.Sum(c.Counts))
}

// Accuracy is the trace of the matrix over its total.
func (c *ConfusionMatrix) Accuracy() float64 {
	total := mat.Sum(c.Counts)
	if total == 0 {
		return 0
	}
	return mat.Trace(c.Counts) / total
}

// Precision returns the precision of label. When label was never predicted
// the value is undefined; 0 is returned and an UndefinedMetricWarning is
// emitted.
func (c *ConfusionMatrix) Precision(label string) float64 {
	j, ok := c.index[label]
	if !ok {
		return 0
	}
	col := mat.Col(nil, j, c.Counts)
	predicted := floats.Sum(col)
	if predicted == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", fmt.Sprintf("no predicted samples for label %q", label), 0))
		return 0
	}
	return col[j] / predicted
}

// Recall returns the recall of label, with the same convention as Precision
// when label has no true samples.
func (c *ConfusionMatrix) Recall(label string) float64 {
	i, ok := c.index[label]
	if !ok {
		return 0
	}
	row := mat.Row(nil, i, c.Counts)
	actual := floats.Sum(row)
	if actual == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", fmt.Sprintf("no true samples for label %q", label), 0))
		return 0
	}
	return row[i] / actual
}

// Render writes the matrix as a table: true labels down, predicted labels
// across, with per-label recall in the last column and precision in the
// footer.
func (c *ConfusionMatrix) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("CONFUSION MATRIX")

	header := table.Row{"true \\ predicted"}
	for _, l := range c.Labels {
		header = append(header, l)
	}
	header = append(header, "recall")
	t.AppendHeader(header)

	for i, l := range c.Labels {
		row := table.Row{l}
		for j := range c.Labels {
			row = append(row, int(c.Counts.At(i, j)))
		}
		row = append(row, fmt.Sprintf("%.3f", c.Recall(l)))
		t.AppendRow(row)
	}

	footer := table.Row{"precision"}
	for _, l := range c.Labels {
		footer = append(footer, fmt.Sprintf("%.3f", c.Precision(l)))
	}
	footer = append(footer, fmt.Sprintf("acc %.3f", c.Accuracy()))
	t.AppendFooter(footer)

	configs := make([]table.ColumnConfig, 0, len(c.Labels)+1)
	for j := range c.Labels {
		configs = append(configs, table.ColumnConfig{Number: j + 2, Align: text.AlignRight})
	}
	configs = append(configs, table.ColumnConfig{Number: len(c.Labels) + 2, Align: text.AlignRight})
	t.SetColumnConfigs(configs)
	t.Render()
}

func checkLabels(op string, yTrue, yPred []string) error {
	if len(yTrue) == 0 {
		return errors.NewValueError(op, "empty label slices")
	}
	if len(yTrue) != len(yPred) {
		return errors.NewValueError(op, fmt.Sprintf("length mismatch: %d true labels, %d predictions", len(yTrue), len(yPred)))
	}
	return nil
}

func firstOccurrence(slices ...[]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range slices {
		for _, v := range s {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	return out
}
