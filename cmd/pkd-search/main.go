// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pkd-search CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pkd-search/internal/secrets"
	"github.com/pdiddy/pkd-search/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the pkd-search CLI.
var rootCmd = &cobra.Command{
	Use:   "pkd-search",
	Short: "Search PubMed, bioRxiv, and medRxiv for PKD literature",
	Long: `pkd-search retrieves recent polycystic kidney disease publications from
PubMed, bioRxiv, and medRxiv over a date window, deduplicates them across
sources, assigns each paper to a topical category, and renders Excel and
PDF reports.

Run a one-off sweep with "search", serve the interactive API with "serve",
or run recurring sweeps with "schedule".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pkd-search.yaml or ~/.config/pkd-search/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pkd-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pkd-search"))
		}
	}

	viper.SetEnvPrefix("PKD_SEARCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the runtime configuration from defaults, the viper
// config file, and loaded secrets.
func loadConfig() types.Config {
	cfg := types.Config{
		Search: types.DefaultSearchConfig(),
		Report: types.ReportConfig{OutputDir: "."},
		Server: types.ServerConfig{
			Address:      ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 5 * time.Minute,
		},
		Schedule: types.ScheduleConfig{Cron: "0 6 * * 1", WindowDays: 7},
	}

	if v := viper.GetDuration("search.timeout"); v > 0 {
		cfg.Search.Timeout = v
	}
	if v := viper.GetString("search.user_agent"); v != "" {
		cfg.Search.UserAgent = v
	}
	if v := viper.GetInt("search.max_results"); v > 0 {
		cfg.Search.MaxResults = v
	}
	if v := viper.GetString("report.output_dir"); v != "" {
		cfg.Report.OutputDir = v
	}
	if v := viper.GetString("server.address"); v != "" {
		cfg.Server.Address = v
	}
	if v := viper.GetString("schedule.cron"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := viper.GetInt("schedule.window_days"); v > 0 {
		cfg.Schedule.WindowDays = v
	}

	if key, ok := loadedSecrets["ncbi-api-key"]; ok {
		cfg.Search.NCBIAPIKey = key
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
