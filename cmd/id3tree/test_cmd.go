package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/metrics"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
)

type testCmdConfig struct {
	*rootCmdConfig
	modelPath string
	dataInput string
	table     string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a labelled set of data and print its accuracy and confusion matrix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Validate(); err != nil {
				return err
			}
			return config.run(cmd)
		},
	}
	cmd.Flags().StringVarP(&config.modelPath, "model", "m", "", "path to a pipeline written by grow (required)")
	cmd.Flags().StringVarP(&config.dataInput, "input", "i", "", "CSV file, SQLite3 (.db) file or PostgreSQL URL with labelled data (required)")
	cmd.Flags().StringVar(&config.table, "table", "", "table to read when the input is a database")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.modelPath == "" {
		return errors.NewValidationError("model", "required flag was not set", "")
	}
	if tcc.dataInput == "" {
		return errors.NewValidationError("input", "required flag was not set", "")
	}
	return nil
}

func (tcc *testCmdConfig) run(cmd *cobra.Command) error {
	p, err := LoadPipeline(tcc.modelPath)
	if err != nil {
		return err
	}
	f, err := openData(cmd.Context(), tcc.dataInput, tcc.table, p.IndexColumn)
	if err != nil {
		return err
	}
	X, y, err := p.Prepare(f, true)
	if err != nil {
		return err
	}

	tcc.Logf("Testing tree against %d samples ...", X.Len())
	preds, err := p.Model.PredictFrame(X)
	if err != nil {
		return err
	}
	yPred := model.Labels(preds)
	acc, err := metrics.Accuracy(y, yPred)
	if err != nil {
		return err
	}
	cm, err := metrics.NewConfusionMatrix(y, yPred, p.Model.Classes()...)
	if err != nil {
		return err
	}

	fallbacks, failures := 0, 0
	for _, pr := range preds {
		switch {
		case pr.Err != nil:
			failures++
		case pr.Fallback:
			fallbacks++
		}
	}
	fmt.Fprintf(tcc.stdout, "Accuracy: %.4f (%d samples, %d fallbacks, %d failures)\n", acc, len(y), fallbacks, failures)
	cm.Render(tcc.stdout)
	return nil
}
