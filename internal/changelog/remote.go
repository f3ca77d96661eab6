package changelog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	xlog "github.com/ariel-frischer/changelint/internal/log"
)

// DefaultRemoteTimeout is the default timeout for remote changelog fetches.
const DefaultRemoteTimeout = 10 * time.Second

// maxRemoteSize caps the body read from a remote changelog. Larger
// responses are rejected rather than parsed in part.
var maxRemoteSize int64 = 16 << 20

// FetchURL downloads and parses a changelog over HTTP. A zero timeout uses
// DefaultRemoteTimeout; the context can cancel the request earlier.
func FetchURL(ctx context.Context, url string, timeout time.Duration) (*Changelog, error) {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	logger := xlog.WithComponent("remote")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.5")

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	logger.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("fetched remote changelog")

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status code: %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if int64(len(body)) > maxRemoteSize {
		return nil, fmt.Errorf("fetching %s: response body exceeds %d bytes", url, maxRemoteSize)
	}

	c, err := ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("parsing remote changelog: %w", err)
	}
	return c, nil
}
