// Command id3tree grows categorical ID3 decision trees from CSV or SQL data,
// evaluates them, predicts with them and serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/id3tree/dataset"
	"github.com/YuminosukeSato/id3tree/pkg/log"
)

type rootCmdConfig struct {
	logLevel string
	verbose  bool
	stdout   io.Writer
	stderr   io.Writer
}

func main() {
	if err := cliParser(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser(stdout, stderr io.Writer) *cobra.Command {
	config := &rootCmdConfig{stdout: stdout, stderr: stderr}
	rootCmd := &cobra.Command{
		Use:           "id3tree",
		Short:         "id3tree grows categorical decision trees",
		Long:          `A tool to grow ID3 decision trees from categorical data, test them, use them to make predictions and serve them over HTTP`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.setupLogger(cmd, "")
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentFlags().StringVar(&config.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&config.verbose, "verbose", "v", false, "shorthand for --log-level=info")
	rootCmd.AddCommand(
		versionCmd(config),
		growCmd(config),
		testCmd(config),
		predictCmd(config),
		gainsCmd(config),
		serveCmd(config),
	)
	return rootCmd
}

// setupLogger installs the zerolog logger. An explicit --log-level wins over
// the config file level, which wins over the default.
func (c *rootCmdConfig) setupLogger(cmd *cobra.Command, fileLevel string) error {
	level := c.logLevel
	if !cmd.Flags().Changed("log-level") {
		if fileLevel != "" {
			level = fileLevel
		}
		if c.verbose {
			level = "info"
		}
	}
	return log.SetupLogger(c.stderr, level)
}

func (c *rootCmdConfig) Logf(format string, args ...interface{}) {
	if c.verbose {
		fmt.Fprintf(c.stderr, format+"\n", args...)
	}
}

// openData loads a frame from input: a CSV path, a SQLite file or a
// PostgreSQL URL.
func openData(ctx context.Context, input, table string, indexColumn bool) (*dataset.Frame, error) {
	opts := []dataset.SourceOption{dataset.WithCSVOptions(dataset.WithIndexColumn(indexColumn))}
	if table != "" {
		opts = append(opts, dataset.WithTable(table))
	}
	f, err := dataset.Open(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	log.GetLoggerWithName("cli").Info("Data loaded",
		log.SourceKey, input,
		log.SamplesKey, f.Len(),
		log.FeaturesKey, len(f.Columns),
	)
	return f, nil
}
