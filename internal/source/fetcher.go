// Package source retrieves raw course and building data. It tries the
// source directly and, when configured, retries through a proxy prefix.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps a single download.
const maxBodyBytes = 64 << 20

// ErrUnavailable wraps every failure to obtain a source.
var ErrUnavailable = errors.New("source unavailable")

// ErrTooLarge is returned, wrapped in ErrUnavailable, for a body over the cap.
// A truncated export would parse as a shorter valid one, so it is rejected.
var ErrTooLarge = errors.New("body too large")

// Fetcher downloads course exports over HTTP or reads them from disk.
type Fetcher struct {
	httpClient *http.Client
	proxyURL   string
	maxBody    int64
	log        zerolog.Logger
}

// NewFetcher creates a Fetcher. proxyURL is prefixed to the escaped target
// URL for the fallback attempt; empty disables the fallback.
func NewFetcher(timeout time.Duration, proxyURL string, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		proxyURL:   strings.TrimSpace(proxyURL),
		maxBody:    maxBodyBytes,
		log:        log.With().Str("component", "source_fetcher").Logger(),
	}
}

// Fetch returns the body of target. Local paths and file:// URLs are read
// from disk; http(s) URLs are fetched directly and then through the proxy.
func (f *Fetcher) Fetch(ctx context.Context, target string) ([]byte, error) {
	if isLocal(target) {
		data, err := f.readFile(strings.TrimPrefix(target, "file://"))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return data, nil
	}

	data, err := f.get(ctx, target)
	if err == nil {
		return data, nil
	}
	if errors.Is(err, ErrTooLarge) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if f.proxyURL == "" || ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	f.log.Warn().Err(err).Str("url", target).Msg("Direct fetch failed, retrying through proxy")

	data, perr := f.get(ctx, f.proxyURL+url.QueryEscape(target))
	if perr != nil {
		return nil, fmt.Errorf("%w: direct: %v; proxy: %v", ErrUnavailable, err, perr)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/csv, application/json;q=0.9, */*;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d when fetching %s", resp.StatusCode, target)
	}

	return f.readLimited(resp.Body, target)
}

func (f *Fetcher) readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return f.readLimited(file, path)
}

// readLimited reads at most maxBody bytes and fails when r holds more.
func (f *Fetcher) readLimited(r io.Reader, target string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if int64(len(data)) > f.maxBody {
		return nil, fmt.Errorf("%s exceeds %d bytes: %w", target, f.maxBody, ErrTooLarge)
	}
	return data, nil
}

func isLocal(target string) bool {
	if strings.HasPrefix(target, "file://") {
		return true
	}
	return !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://")
}
