package main

import (
	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/preprocessing"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
)

// ColumnBins are the final bins of one column.
type ColumnBins struct {
	Column string
	Bins   preprocessing.Bins
}

// Pipeline is what grow writes to disk: the preparation steps applied to the
// training data and the classifier fitted on the result. Loading it is enough
// to prepare new data the same way.
type Pipeline struct {
	Label       string
	IndexColumn bool
	Drop        []string
	Bins        []ColumnBins
	Model       *tree.ID3Classifier
}

// Prepare drops the configured columns, bins the numeric ones and splits off
// the label. With requireLabel unset a missing label column yields nil labels;
// columns listed in Drop that are absent are ignored. A cell that cannot be
// binned fails the whole frame.
func (p *Pipeline) Prepare(f *dataset.Frame, requireLabel bool) (*dataset.Frame, []string, error) {
	X, y, rowErrs, err := p.prepare(f, requireLabel)
	if err != nil {
		return nil, nil, err
	}
	for i, rerr := range rowErrs {
		if rerr != nil {
			return nil, nil, errors.Wrapf(rerr, "row %d", i)
		}
	}
	return X, y, nil
}

// PrepareRows is Prepare for unlabeled data that keeps going past cells that
// cannot be binned. rowErrs holds, per row, the first binning failure or nil;
// such rows are still in the returned frame with the raw cell in place.
func (p *Pipeline) PrepareRows(f *dataset.Frame) (X *dataset.Frame, rowErrs []error, err error) {
	X, _, rowErrs, err = p.prepare(f, false)
	return X, rowErrs, err
}

func (p *Pipeline) prepare(f *dataset.Frame, requireLabel bool) (*dataset.Frame, []string, []error, error) {
	var drop []string
	for _, d := range p.Drop {
		if f.Index(d) >= 0 {
			drop = append(drop, d)
		}
	}
	f, err := f.Drop(drop...)
	if err != nil {
		return nil, nil, nil, err
	}

	var y []string
	if f.Index(p.Label) >= 0 {
		if f, y, err = f.Pop(p.Label); err != nil {
			return nil, nil, nil, err
		}
	} else if requireLabel {
		return nil, nil, nil, errors.Wrapf(errors.ErrUnknownAttribute, "label column %q", p.Label)
	}

	rowErrs := make([]error, f.Len())
	for _, b := range p.Bins {
		if f.Index(b.Column) < 0 {
			continue
		}
		var colErrs []error
		if f, colErrs, err = preprocessing.CutRows(f, b.Column, b.Bins); err != nil {
			return nil, nil, nil, err
		}
		for i, cerr := range colErrs {
			if rowErrs[i] == nil {
				rowErrs[i] = cerr
			}
		}
	}
	return f, y, rowErrs, nil
}

// SavePipeline writes p to path with gob.
func SavePipeline(p *Pipeline, path string) error {
	return model.SaveModel(p, path)
}

// LoadPipeline reads a pipeline written by SavePipeline.
func LoadPipeline(path string) (*Pipeline, error) {
	p := &Pipeline{}
	if err := model.LoadModel(p, path); err != nil {
		return nil, err
	}
	if p.Model == nil || !p.Model.IsFitted() {
		return nil, errors.NewModelError("LoadPipeline", "no fitted model in "+path, nil)
	}
	return p, nil
}
