// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the source clients.
package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay controls the base duration for the linear backoff between
// attempts. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxAttempts = 3

// Backoff returns the wait before the next attempt. attempt counts from 1
// (the attempt that just failed).
type Backoff func(attempt int) time.Duration

// Linear waits attempt times RetryBaseDelay: 2s after the first failure, 4s
// after the second with the default base.
func Linear(attempt int) time.Duration {
	return time.Duration(attempt) * RetryBaseDelay
}

// Do runs op up to maxAttempts times total, sleeping backoff(attempt)
// between attempts. Any error from op (transport, status, or decode) is
// retryable. When maxAttempts is 0 the default (3) is used.
//
// After exhausting attempts the last error is returned; the caller must
// treat that as "this unit of work produced nothing" and carry on with
// already-collected data rather than abort the run. If the context is
// cancelled during a backoff wait, Do returns ctx.Err().
func Do(ctx context.Context, maxAttempts int, backoff Backoff, op func() error) error {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if backoff == nil {
		backoff = Linear
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}
	return err
}

// GetJSON performs one GET against url and decodes the JSON response body
// into v. A non-2xx status or a malformed body is an error, so a unit of
// work wrapped in Do is retried on decode failures too.
func GetJSON(ctx context.Context, client *http.Client, url, userAgent string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
