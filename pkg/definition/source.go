package definition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"
)

// ErrHTTPDisabled is returned when a URL is read without HTTP enabled.
var ErrHTTPDisabled = errors.New("definition: http sources disabled")

const maxSourceBytes = 8 << 20

type sourceConfig struct {
	fsys    fs.FS
	client  *http.Client
	timeout time.Duration
}

// SourceOption configures ReadSource.
type SourceOption func(*sourceConfig)

// WithFileSystem reads non-URL locations from fsys instead of the operating
// system.
func WithFileSystem(fsys fs.FS) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.fsys = fsys
	}
}

// WithHTTPClient enables http(s) locations using client.
func WithHTTPClient(client *http.Client) SourceOption {
	return func(cfg *sourceConfig) {
		cfg.client = client
	}
}

// WithHTTPFallback enables http(s) locations with a default client capped at
// timeout (no cap when zero).
func WithHTTPFallback(timeout time.Duration) SourceOption {
	return func(cfg *sourceConfig) {
		if cfg.client == nil {
			cfg.client = &http.Client{}
		}
		cfg.timeout = timeout
	}
}

// ReadSource reads a schema document from a file path, an fs.FS entry, or an
// http(s) URL. Reading stays offline unless an HTTP option is given.
func ReadSource(ctx context.Context, location string, options ...SourceOption) ([]byte, error) {
	cfg := sourceConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("definition: source location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if cfg.client == nil {
			return nil, fmt.Errorf("%w: %s", ErrHTTPDisabled, location)
		}
		return readHTTP(ctx, cfg.client, location, cfg.timeout)
	}

	var (
		data []byte
		err  error
	)
	if cfg.fsys != nil {
		data, err = fs.ReadFile(cfg.fsys, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", location, err)
	}
	return data, nil
}

func readHTTP(ctx context.Context, client *http.Client, location string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("definition: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("definition: fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("definition: fetch %s: unexpected status %d", location, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("definition: read %s: %w", location, err)
	}
	return data, nil
}
