package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// FetchConfig controls download retry behavior.
type FetchConfig struct {
	Client      *http.Client
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultFetchConfig returns the retry settings used by the drivers.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		Client:      &http.Client{Timeout: 2 * time.Minute},
		MaxAttempts: 4,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    15 * time.Second,
	}
}

// HTTPError carries the status of a non-2xx response so callers can decide
// whether the failure was worth retrying.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("dataset: GET %s: status %d", e.URL, e.StatusCode)
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	}
	return status >= 500
}

// Fetch downloads url into dest, creating parent directories as needed.
// Transient failures (5xx, 429, network errors) are retried with exponential
// backoff; 4xx responses fail immediately. If dest already exists the
// download is skipped.
func Fetch(ctx context.Context, url, dest string, cfg FetchConfig) error {
	if _, err := os.Stat(dest); err == nil {
		slog.Info("dataset cached, skipping download", "path", dest)
		return nil
	}
	if cfg.Client == nil {
		cfg.Client = http.DefaultClient
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("dataset: create cache dir: %w", err)
	}

	var lastErr error
	delay := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			slog.Warn("retrying download", "url", url, "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
			if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}

		err := fetchOnce(ctx, cfg.Client, url, dest)
		if err == nil {
			slog.Info("downloaded dataset", "url", url, "path", dest)
			return nil
		}
		lastErr = err
		if httpErr, ok := err.(*HTTPError); ok && !retryable(httpErr.StatusCode) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("dataset: download failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}

func fetchOnce(ctx context.Context, client *http.Client, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("dataset: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("dataset: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused across retries.
		io.Copy(io.Discard, resp.Body)
		return &HTTPError{URL: url, StatusCode: resp.StatusCode}
	}

	tmp := dest + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", tmp, err)
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("dataset: write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("dataset: close %s: %w", tmp, err)
	}
	return os.Rename(tmp, dest)
}
