// Package net fetches remote byte sources through a shared HTTP client
// with a browser TLS fingerprint.
package net

import (
	"context"
	"fmt"
	"io"
	"sync"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

// TimeoutSeconds bounds a whole request, body included. Change it before the
// first fetch.
var TimeoutSeconds = 30

// shared client (keep-alive, TLS session reuse).
var (
	clientOnce sync.Once
	client     tls_client.HttpClient
	clientErr  error
)

func sharedClient() (tls_client.HttpClient, error) {
	clientOnce.Do(func() {
		client, clientErr = tls_client.NewHttpClient(tls_client.NewNoopLogger(),
			tls_client.WithTimeoutSeconds(TimeoutSeconds),
			tls_client.WithClientProfile(profiles.DefaultClientProfile),
		)
	})
	return client, clientErr
}

// NewGET builds a pre-populated request.
func NewGET(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "*/*")
	return req, nil
}

// Do forwards to the shared client.
func Do(req *http.Request) (*http.Response, error) {
	c, err := sharedClient()
	if err != nil {
		return nil, fmt.Errorf("net: client init: %w", err)
	}
	return c.Do(req)
}

// Open GETs url and returns the response body. Non-2xx responses are errors.
func Open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := NewGET(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("net: %s: %w", url, err)
	}
	resp, err := Do(req)
	if err != nil {
		return nil, fmt.Errorf("net: %s: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("net: %s: unexpected status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

const ua = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"
