package main

import (
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
)

// Columns appended to the input by predict.
const (
	PredictionColumn = "prediction"
	FallbackColumn   = "fallback"
	ErrorColumn      = "error"
)

type predictCmdConfig struct {
	*rootCmdConfig
	modelPath  string
	dataInput  string
	dataOutput string
	table      string
	chunkSize  int
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the labels of a set of data",
		Long:  `Predict the labels of a set of data with a grown tree and write the data back as CSV with prediction, fallback and error columns appended`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			return config.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&config.modelPath, "model", "m", "", "path to a pipeline written by grow (required)")
	cmd.Flags().StringVarP(&config.dataInput, "input", "i", "", "CSV file, SQLite3 (.db) file or PostgreSQL URL (required)")
	cmd.Flags().StringVarP(&config.dataOutput, "output", "o", "", "path to write the CSV to. If empty, stdout")
	cmd.Flags().StringVar(&config.table, "table", "", "table to read when the input is a database")
	cmd.Flags().IntVar(&config.chunkSize, "chunk-size", 10000, "rows of a CSV input classified at a time; 0 reads the whole file")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.modelPath == "" {
		return errors.NewValidationError("model", "required flag was not set", "")
	}
	if pcc.dataInput == "" {
		return errors.NewValidationError("input", "required flag was not set", "")
	}
	if pcc.chunkSize < 0 {
		return errors.NewValidationError("chunk-size", "must not be negative", pcc.chunkSize)
	}
	return nil
}

func (pcc *predictCmdConfig) run(cmd *cobra.Command) error {
	p, err := LoadPipeline(pcc.modelPath)
	if err != nil {
		return err
	}

	var w io.Writer = pcc.stdout
	if pcc.dataOutput != "" {
		file, err := os.Create(pcc.dataOutput)
		if err != nil {
			return errors.Wrapf(err, "creating %s", pcc.dataOutput)
		}
		defer file.Close()
		w = file
	}
	out := dataset.NewCSVWriter(w)

	total, failed := 0, 0
	predictChunk := func(raw *dataset.Frame, _ int) error {
		n, f, err := predictInto(p, raw)
		if err != nil {
			return err
		}
		total += n
		failed += f
		return out.Write(raw)
	}

	if dataset.IsDatabase(pcc.dataInput) {
		raw, err := openData(cmd.Context(), pcc.dataInput, pcc.table, p.IndexColumn)
		if err != nil {
			return err
		}
		err = predictChunk(raw, 0)
	} else {
		err = pcc.streamCSV(p, predictChunk)
	}
	if err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}

	logger := log.GetLoggerWithName("cli.predict")
	if failed > 0 {
		logger.Warn("Some records could not be classified", log.PredsKey, total, "failed", failed)
	}
	logger.Info("Predictions written", log.PredsKey, total)
	return nil
}

func (pcc *predictCmdConfig) streamCSV(p *Pipeline, fn func(*dataset.Frame, int) error) error {
	in, err := os.Open(pcc.dataInput)
	if err != nil {
		return errors.Wrapf(err, "opening %s", pcc.dataInput)
	}
	defer in.Close()
	cr, err := dataset.NewChunkReader(in, pcc.chunkSize, dataset.WithIndexColumn(p.IndexColumn))
	if err != nil {
		return errors.Wrapf(err, "parsing CSV file %s", pcc.dataInput)
	}
	return cr.Each(fn)
}

// predictInto classifies the rows of raw and appends the prediction, fallback
// and error columns to it. A row whose numeric cells cannot be binned is not
// classified; its error column says why.
func predictInto(p *Pipeline, raw *dataset.Frame) (int, int, error) {
	X, rowErrs, err := p.PrepareRows(raw)
	if err != nil {
		return 0, 0, err
	}
	var binned []int
	for i, rerr := range rowErrs {
		if rerr == nil {
			binned = append(binned, i)
		}
	}
	if X, err = X.Take(binned); err != nil {
		return 0, 0, err
	}
	classified, err := p.Model.PredictFrame(X)
	if err != nil {
		return 0, 0, err
	}
	preds := make([]model.Prediction, len(rowErrs))
	for i, pr := range classified {
		preds[binned[i]] = pr
	}
	for i, rerr := range rowErrs {
		if rerr != nil {
			preds[i].Err = rerr
		}
	}

	labels := make([]string, len(preds))
	fallbacks := make([]string, len(preds))
	messages := make([]string, len(preds))
	failed := 0
	for i, pr := range preds {
		labels[i] = pr.Label
		fallbacks[i] = strconv.FormatBool(pr.Fallback)
		if pr.Err == nil {
			continue
		}
		failed++
		// the record index in the error is relative to the chunk
		var mismatch *errors.SchemaMismatchError
		if errors.As(pr.Err, &mismatch) {
			messages[i] = strconv.Quote(mismatch.Attribute) + ": " + mismatch.Reason
		} else {
			messages[i] = pr.Err.Error()
		}
	}
	for _, col := range []struct {
		name   string
		values []string
	}{{PredictionColumn, labels}, {FallbackColumn, fallbacks}, {ErrorColumn, messages}} {
		if err := raw.AddColumn(col.name, col.values); err != nil {
			return 0, 0, err
		}
	}
	return len(preds), failed, nil
}
