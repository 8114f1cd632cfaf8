package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/id3tree/pkg/errors"
	"github.com/YuminosukeSato/id3tree/server"
)

type serveCmdConfig struct {
	*rootCmdConfig
	modelPath string
	addr      string
	timeout   time.Duration
}

func serveCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &serveCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a tree over HTTP",
		Long:  `Serve a grown tree over HTTP. Records posted to /api/v1/predict must already be prepared: binned columns carry bin labels.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.modelPath == "" {
				return errors.NewValidationError("model", "required flag was not set", "")
			}
			p, err := LoadPipeline(config.modelPath)
			if err != nil {
				return err
			}
			srv, err := server.New(p.Model, server.WithTimeout(config.timeout))
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			config.Logf("Serving model %s on %s", p.Model.ID(), config.addr)
			return srv.ListenAndServe(ctx, config.addr)
		},
	}
	cmd.Flags().StringVarP(&config.modelPath, "model", "m", "", "path to a pipeline written by grow (required)")
	cmd.Flags().StringVar(&config.addr, "addr", ":8080", "address to listen on")
	cmd.Flags().DurationVar(&config.timeout, "timeout", 30*time.Second, "per-request timeout")
	return cmd
}
