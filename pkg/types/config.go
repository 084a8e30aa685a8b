// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by the source clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout (default 30s). A timed-out
	// request counts as a failed attempt for retry purposes.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pkd-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the literature search pipeline.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults caps the number of PubMed identifiers retrieved per
	// search (default 1000).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// BatchSize is the number of PMIDs per esummary request (default 100).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// PageSize is the preprint server page size; the pagination cursor
	// advances by this amount (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxAttempts is the total number of tries for one metadata batch or
	// one pagination page before that unit of work is dropped (default 3).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// BatchDelay paces esummary batches (default 500ms).
	BatchDelay time.Duration `json:"batch_delay" yaml:"batch_delay"`

	// PageDelay paces preprint page fetches (default 300ms).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`

	// NCBIAPIKey is an optional E-utilities API key for the higher rate tier.
	NCBIAPIKey string `json:"ncbi_api_key,omitempty" yaml:"ncbi_api_key,omitempty"`
}

// DefaultSearchConfig returns the pipeline settings used when no config
// file overrides them. The delays are the only rate limiting applied to
// the public APIs, so zeroing them outside tests is unfriendly.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "pkd-search/0.1",
		},
		MaxResults:  1000,
		BatchSize:   100,
		PageSize:    100,
		MaxAttempts: 3,
		BatchDelay:  500 * time.Millisecond,
		PageDelay:   300 * time.Millisecond,
	}
}

// ReportConfig holds settings for report generation.
type ReportConfig struct {
	// OutputDir is the directory reports are written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}

// ServerConfig holds settings for the HTTP presentation layer.
type ServerConfig struct {
	// Address is the listen address (default ":8080").
	Address string `json:"address" yaml:"address"`

	// ReadTimeout and WriteTimeout bound request handling. The write
	// timeout must cover a full search run (default 5m).
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
}

// ScheduleConfig holds settings for recurring searches.
type ScheduleConfig struct {
	// Cron is a cron expression for when to run the sweep
	// (default "0 6 * * 1", Mondays at 06:00).
	Cron string `json:"cron" yaml:"cron"`

	// WindowDays is the trailing window each scheduled run covers (default 7).
	WindowDays int `json:"window_days" yaml:"window_days"`
}

// Config groups all pkd-search settings.
type Config struct {
	Search   SearchConfig   `json:"search" yaml:"search"`
	Report   ReportConfig   `json:"report" yaml:"report"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Schedule ScheduleConfig `json:"schedule" yaml:"schedule"`
}
