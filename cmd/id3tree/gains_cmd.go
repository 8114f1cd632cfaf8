package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/sklearn/tree"
	"github.com/YuminosukeSato/id3tree/visualize"
)

type gainsCmdConfig struct {
	growCmdConfig
	plotPath string
}

func gainsCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &gainsCmdConfig{growCmdConfig: growCmdConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "gains",
		Short: "Show the information gain of every attribute",
		Long:  `Prepare a set of data as grow would and print the information gain of every attribute at the root, optionally plotting them as a bar chart`,
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
	cmd.Flags().StringVar(&config.plotPath, "plot", "", "write a bar chart to this file; the extension picks the format (png, svg, pdf)")
	return cmd
}

func (gcc *gainsCmdConfig) run(cmd *cobra.Command, cfg *Config) error {
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
	bins, err := resolveBins(cfg.Bins, X)
	if err != nil {
		return err
	}
	p := &Pipeline{Label: cfg.Label, Bins: bins}
	if X, _, err = p.Prepare(X, false); err != nil {
		return err
	}
	view, err := dataset.NewView(X, y)
	if err != nil {
		return err
	}

	gains := tree.AttributeGains(view, cfg.Tree.NJobs)
	t := table.NewWriter()
	t.SetOutputMirror(gcc.stdout)
	t.SetTitle(fmt.Sprintf("%s: entropy %.4f bits over %d samples", cfg.Label, tree.Entropy(view), view.RowCount()))
	t.AppendHeader(table.Row{"Attribute", "Values", "Gain"})
	for _, g := range gains {
		t.AppendRow(table.Row{g.Attribute, len(view.DistinctValues(g.Attribute)), fmt.Sprintf("%.4f", g.Gain)})
	}
	if best, gain, err := tree.BestAttribute(view, cfg.Tree.NJobs); err == nil {
		t.AppendFooter(table.Row{"Best", best, fmt.Sprintf("%.4f", gain)})
	}
	t.Render()

	if gcc.plotPath != "" {
		return visualize.SaveGainChart(gcc.plotPath, gains, "Information gain of "+cfg.Label)
	}
	return nil
}
