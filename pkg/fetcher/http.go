package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTP fetches symbols from an HTTP(S) symbol server.
type HTTP struct {
	client    *http.Client
	userAgent string
}

func NewHTTP(client *http.Client, userAgent string) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{
		client:    client,
		userAgent: userAgent,
	}
}

func (h *HTTP) Fetch(ctx context.Context, remote string, dst io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", remote, err)
	}
	defer resp.Body.Close()

	// Only an exact 200 counts; 204, 206 and unfollowed redirects fail.
	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{Code: resp.StatusCode, Path: remote}
	}

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copy body: %w", err)
	}

	return n, nil
}
