// Package fetch retrieves static listing pages over plain HTTP. It backs
// the discovery fallback for sites that also serve a non-hash-routed
// listing document.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

const userAgent = "classdir/1.0 (+https://github.com/afriesen/classdir)"

// Client fetches HTML documents with bounded retry on transient failures.
type Client struct {
	http          *resty.Client
	maxRetries    uint64
	retryInterval time.Duration
}

// New creates a client with the given per-request timeout.
func New(timeout time.Duration) *Client {
	c := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &Client{
		http:          c,
		maxRetries:    3,
		retryInterval: 500 * time.Millisecond,
	}
}

// GetHTML fetches url and returns the response body. Transport errors and
// 5xx responses are retried with exponential backoff; any other non-200
// status fails immediately.
func (c *Client) GetHTML(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	attempt := func() error {
		res, err := c.http.R().SetContext(ctx).Get(url)
		if err != nil {
			return err
		}
		switch {
		case res.StatusCode() >= 500:
			return fmt.Errorf("server error: %d", res.StatusCode())
		case res.StatusCode() != 200:
			return backoff.Permanent(fmt.Errorf("unexpected status: %d", res.StatusCode()))
		}
		body = res.Body()
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	if err := backoff.Retry(attempt, backoff.WithMaxRetries(backoff.WithContext(policy, ctx), c.maxRetries)); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	return body, nil
}
