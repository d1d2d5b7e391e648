package devtools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Prober checks whether a URL answers.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// HTTPProber succeeds when a GET returns a 2xx status.
type HTTPProber struct {
	Client *http.Client
}

// NewHTTPProber creates an HTTPProber whose requests time out after timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{Client: &http.Client{Timeout: timeout}}
}

// Probe implements Prober.
func (p *HTTPProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe %s: status %d", url, resp.StatusCode)
	}
	return nil
}
