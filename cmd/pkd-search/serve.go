package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pkd-search/internal/search"
	"github.com/pdiddy/pkd-search/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search API over HTTP",
	Long: `Serve starts an HTTP server exposing the search pipeline as a JSON API.
POST /api/search runs a sweep for a date window; the most recent result
can be retrieved as JSON or downloaded as the Excel or PDF report.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("address", "", "listen address (default: config server.address)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("address"); addr != "" {
		cfg.Server.Address = addr
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	searcher := func(req search.Request) search.Output {
		return search.Search(context.Background(), req,
			search.DefaultBackends(cfg.Search), cfg.Search, os.Stderr)
	}

	s := server.New(cfg.Server, searcher, logger)
	return s.ListenAndServe()
}
