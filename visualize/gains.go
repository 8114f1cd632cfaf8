// Package visualize draws charts of tree diagnostics with gonum/plot.
package visualize

import (
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
)

// Default chart size.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// GainChart builds a bar chart with one bar per attribute, in the order given.
func GainChart(gains []tree.AttributeGain, title string) (*plot.Plot, error) {
	if len(gains) == 0 {
		return nil, errors.NewValueError("GainChart", "no attributes to plot")
	}
	values := make(plotter.Values, len(gains))
	names := make([]string, len(gains))
	for i, g := range gains {
		values[i] = g.Gain
		names[i] = g.Attribute
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "information gain (bits)"
	p.Y.Min = 0

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, errors.Wrap(err, "building bar chart")
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// WriteGainChart renders the chart to w in format ("png", "svg", "pdf", ...).
func WriteGainChart(w io.Writer, format string, gains []tree.AttributeGain, title string) error {
	p, err := GainChart(gains, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(DefaultWidth, DefaultHeight, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported chart format %q", format)
	}
	_, err = wt.WriteTo(w)
	return errors.Wrap(err, "writing chart")
}

// SaveGainChart writes the chart to filename; the format follows the file
// extension.
func SaveGainChart(filename string, gains []tree.AttributeGain, title string) error {
	p, err := GainChart(gains, title)
	if err != nil {
		return err
	}
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext == "" {
		return errors.NewValidationError("filename", "needs an extension such as .png or .svg", filename)
	}
	return errors.Wrap(p.Save(DefaultWidth, DefaultHeight, filename), "saving chart")
}
