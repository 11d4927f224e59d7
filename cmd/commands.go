package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/guttosm/technical/config"
	"github.com/guttosm/technical/internal/app"
	"github.com/guttosm/technical/internal/domain/dto"
	"github.com/guttosm/technical/internal/logger"
)

// rootOptions holds flags shared by every command.
type rootOptions struct {
	envFile string
	dataDir string
	cfg     config.Config
}

// newRootCmd builds the command tree. A fresh tree per call keeps tests isolated.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "technical",
		Short: "Serve per-ticker technical data from flat files",
		Long: `technical exposes the CSV files of a data directory (one file per ticker)
as JSON: a listing of every ticker's latest row and the full daily history of one ticker.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "load environment variables from this file before reading config")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "override DATA_DIR")

	root.AddCommand(newServeCmd(opts), newSummaryCmd(opts), newDailyCmd(opts))
	return root
}

// load applies --env-file, initializes logging and reads configuration.
func (o *rootOptions) load() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", o.envFile, err)
		}
	}

	logger.Init()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if o.dataDir != "" {
		cfg.Dataset.Dir = o.dataDir
	}
	o.cfg = cfg
	return nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if port != "" {
				cfg.Server.Port = port
			}

			logger.L().Info().Str("data_dir", cfg.Dataset.Dir).Msg("starting API server")
			router, cleanup, err := app.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}

			server := startServer(router, cfg.Server.Port, cfg.Server.RequestTimeout+5*time.Second)
			gracefulShutdown(cmd.Context(), server, cleanup)
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "override SERVER_PORT")
	return cmd
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the latest row of every ticker as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.cfg.Server.RequestTimeout)
			defer cancel()

			svc, _ := app.BuildService(opts.cfg)
			stocks, err := svc.ListSummaries(ctx)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewStockListResponse(stocks))
		},
	}
}

func newDailyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "daily <ticker>",
		Short: "Print the full daily history of one ticker as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.cfg.Server.RequestTimeout)
			defer cancel()

			svc, _ := app.BuildService(opts.cfg)
			ds, err := svc.GetDaily(ctx, args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewDailyDataResponse(ds))
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
