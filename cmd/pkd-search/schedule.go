package main

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pkd-search/internal/search"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run recurring literature sweeps on a cron schedule",
	Long: `Schedule runs the search pipeline on a recurring cron schedule. Each
tick sweeps the trailing window ending on the day of the run and writes
the Excel and PDF reports to the output directory. The default schedule
is every Monday at 06:00.`,
	RunE: runSchedule,
}

func init() {
	scheduleCmd.Flags().String("cron", "", "cron expression (default: config schedule.cron)")
	scheduleCmd.Flags().Int("window-days", 0, "trailing window length in days (default: config schedule.window_days)")
	scheduleCmd.Flags().String("output", "", "directory for report files (default: config report.output_dir)")

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if v, _ := cmd.Flags().GetString("cron"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v, _ := cmd.Flags().GetInt("window-days"); v > 0 {
		cfg.Schedule.WindowDays = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.Report.OutputDir = v
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	c := cron.New()
	_, err := c.AddFunc(cfg.Schedule.Cron, func() {
		end := time.Now()
		req := search.Request{From: end.AddDate(0, 0, -cfg.Schedule.WindowDays), To: end}
		logger.Info().
			Str("start", req.From.Format(dateFmt)).
			Str("end", req.To.Format(dateFmt)).
			Msg("scheduled sweep starting")

		out := search.Search(context.Background(), req,
			search.DefaultBackends(cfg.Search), cfg.Search, os.Stderr)
		if err := writeReports(cmd, cfg.Report.OutputDir, req, out); err != nil {
			logger.Error().Err(err).Msg("scheduled sweep failed")
			return
		}
		logger.Info().
			Int("papers", len(out.Papers)).
			Int("warnings", len(out.Warnings)).
			Msg("scheduled sweep complete")
	})
	if err != nil {
		return err
	}

	logger.Info().Str("cron", cfg.Schedule.Cron).Int("window_days", cfg.Schedule.WindowDays).Msg("scheduler starting")
	c.Run()
	return nil
}
