package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// HTTPPreloader confirma que uma imagem remota pode ser baixada antes da troca do src.
type HTTPPreloader struct {
	client *http.Client
}

// NewHTTPPreloader creates a preloader. A nil client uses http.DefaultClient.
func NewHTTPPreloader(client *http.Client) *HTTPPreloader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPPreloader{client: client}
}

// Preload downloads src and checks that it answers 2xx with an image content type.
func (p *HTTPPreloader) Preload(ctx context.Context, src string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("invalid image source: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("image request failed: HTTP %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return fmt.Errorf("unexpected content type %q", ct)
	}
	return nil
}
