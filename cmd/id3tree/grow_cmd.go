package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/id3tree/core/model"
	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/metrics"
	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/pkg/log"
	"github.com/YuminosukeSato/id3tree/preprocessing"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
)

type growCmdConfig struct {
	*rootCmdConfig
	configPath string
	dataInput  string
	output     string
	print      bool
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of data as described by a YAML config: drop columns, bin numeric columns, hold out a test split, fit and save the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.load(cmd)
			if err != nil {
				return err
			}
			return config.run(cmd, cfg)
		},
	}
	cmd.Flags().StringVarP(&config.configPath, "config", "c", "", "path to the YAML config (required)")
	cmd.Flags().StringVarP(&config.dataInput, "input", "i", "", "CSV file, SQLite3 (.db) file or PostgreSQL URL overriding the config data")
	cmd.Flags().StringVarP(&config.output, "output", "o", "model.gob", "path the fitted pipeline is written to")
	cmd.Flags().BoolVar(&config.print, "print", false, "print the tree to stdout")
	return cmd
}

func (gcc *growCmdConfig) load(cmd *cobra.Command) (*Config, error) {
	if gcc.configPath == "" {
		return nil, errors.NewValidationError("config", "required flag was not set", "")
	}
	cfg, err := LoadConfig(gcc.configPath)
	if err != nil {
		return nil, err
	}
	if gcc.dataInput != "" {
		cfg.Data = gcc.dataInput
	}
	if err := gcc.setupLogger(cmd, cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (gcc *growCmdConfig) run(cmd *cobra.Command, cfg *Config) error {
	logger := log.GetLoggerWithName("cli.grow")
	start := time.Now()

	f, err := openData(cmd.Context(), cfg.Data, cfg.Table, cfg.IndexColumn)
	if err != nil {
		return err
	}
	if f, err = f.Drop(cfg.Drop...); err != nil {
		return err
	}
	X, y, err := f.Pop(cfg.Label)
	if err != nil {
		return err
	}

	XTrain, yTrain, XTest, yTest := X, y, (*dataset.Frame)(nil), []string(nil)
	if cfg.Split.TestSize > 0 {
		split, err := preprocessing.TrainTestSplit(X, y, cfg.Split.TestSize, cfg.Split.Seed)
		if err != nil {
			return err
		}
		XTrain, yTrain, XTest, yTest = split.XTrain, split.YTrain, split.XTest, split.YTest
	}

	bins, err := resolveBins(cfg.Bins, XTrain)
	if err != nil {
		return err
	}
	p := &Pipeline{Label: cfg.Label, IndexColumn: cfg.IndexColumn, Drop: cfg.Drop, Bins: bins}
	if XTrain, _, err = p.Prepare(XTrain, false); err != nil {
		return err
	}

	gcc.Logf("Growing tree from a set with %d samples and %d features to predict %s ...", XTrain.Len(), len(XTrain.Columns), cfg.Label)
	clf := tree.NewID3Classifier(
		tree.WithAttributeReuse(cfg.Tree.AttributeReuse),
		tree.WithNJobs(cfg.Tree.NJobs),
	)
	if err := clf.Fit(XTrain, yTrain); err != nil {
		return errors.Wrap(err, "growing the tree")
	}
	p.Model = clf
	gcc.Logf("Done")

	if gcc.print {
		if err := clf.Render(gcc.stdout); err != nil {
			return err
		}
	}

	if XTest != nil {
		if XTest, _, err = p.Prepare(XTest, false); err != nil {
			return err
		}
		preds, err := clf.PredictFrame(XTest)
		if err != nil {
			return err
		}
		acc, err := metrics.Accuracy(yTest, model.Labels(preds))
		if err != nil {
			return err
		}
		logger.Info("Holdout evaluated", log.SamplesKey, len(yTest), log.AccuracyKey, acc)
		gcc.Logf("Holdout accuracy: %.4f on %d samples", acc, len(yTest))
	}

	if err := SavePipeline(p, gcc.output); err != nil {
		return err
	}
	logger.Info("Pipeline saved", "path", gcc.output, log.DurationMsKey, time.Since(start).Milliseconds())
	return nil
}

// resolveBins turns the bin configuration into concrete bins, learning edges
// from X where only a bin count is configured.
func resolveBins(specs []BinConfig, X *dataset.Frame) ([]ColumnBins, error) {
	out := make([]ColumnBins, 0, len(specs))
	for _, s := range specs {
		if len(s.Edges) > 0 {
			out = append(out, ColumnBins{Column: s.Column, Bins: s.fixed()})
			continue
		}
		d := preprocessing.NewKBinsDiscretizer(s.Column, s.NBins, s.Strategy)
		if err := d.Fit(X); err != nil {
			return nil, errors.Wrapf(err, "learning bins for %q", s.Column)
		}
		out = append(out, ColumnBins{Column: s.Column, Bins: d.Bins})
	}
	return out, nil
}
