package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

// SaveModel writes model to filename with encoding/gob.
//
//	clf := tree.NewID3Classifier()
//	// ... clf.Fit(X, y) ...
//	err := model.SaveModel(clf, "model.gob")
func SaveModel(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.NewModelError("SaveModel", "create file", err)
	}
	defer file.Close()

	if err := SaveModelToWriter(model, file); err != nil {
		return err
	}
	if err := file.Sync(); err != nil {
		return errors.NewModelError("SaveModel", "sync file", err)
	}
	return nil
}

// LoadModel decodes filename into model, which must be a pointer.
//
//	clf := tree.NewID3Classifier()
//	err := model.LoadModel(clf, "model.gob")
func LoadModel(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.NewModelError("LoadModel", "open file", err)
	}
	defer file.Close()
	return LoadModelFromReader(model, file)
}

// SaveModelToWriter gob-encodes model to w.
func SaveModelToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.NewModelError("SaveModel", "encode model", err)
	}
	return nil
}

// LoadModelFromReader gob-decodes a model from r into model.
func LoadModelFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.NewModelError("LoadModel", "decode model", err)
	}
	return nil
}
