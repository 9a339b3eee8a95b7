package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start an HTTP server with an upload form and a JSON endpoint for scoring resumes.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, appConfig.Storage, logger)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}

	srv, err := server.New(appConfig, server.Deps{
		Analyzer: matching.NewDefaultEngine(appConfig.Feedback.Organization, logger),
		Store:    store,
		Fetcher:  postingFetcher(appConfig.Fetch),
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("resume matcher ready",
		zap.String("addr", appConfig.Server.Addr),
		zap.String("storage", appConfig.Storage.Backend),
		zap.Bool("rate_limit", appConfig.RateLimit.Enabled),
		zap.Bool("url_ingest", appConfig.Fetch.AllowURLIngest))

	return srv.Start(ctx)
}

// postingFetcher returns the fetcher behind job_url, or nil when URL ingestion is off.
func postingFetcher(cfg config.FetchConfig) ingestion.PostingFetcher {
	if !cfg.AllowURLIngest {
		return nil
	}
	return newFetchClient(cfg)
}

func newFetchClient(cfg config.FetchConfig) *fetch.Client {
	opts := fetch.DefaultOptions()
	opts.AllowPrivateNetworks = cfg.AllowPrivateNetworks
	if cfg.Timeout > 0 {
		opts.Timeout = cfg.Timeout
	}
	opts.UseBrowser = cfg.UseBrowser
	if cfg.MinTextLength > 0 {
		opts.MinTextLength = cfg.MinTextLength
	}
	return fetch.NewClient(opts, logger)
}
