// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the NCBI clients.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

// RetryBaseDelay is the base duration for exponential backoff when a
// response carries no Retry-After header. Tests override this to avoid real
// sleeps.
var RetryBaseDelay = time.Second

const defaultMaxRetries = 3

// retryable reports whether the status is one the NCBI endpoints return
// transiently: 429 when the per-key request rate is exceeded, 503 during
// maintenance windows.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// DoWithRetry executes req and retries transient NCBI failures. The wait
// before each retry honors the response's Retry-After header when it carries
// the seconds form; otherwise the wait starts at RetryBaseDelay and doubles
// per attempt.
//
// When maxRetries is 0 the default (3) is used. The body of a retried
// response is drained and closed before sleeping. If ctx is cancelled during
// a wait the function returns ctx.Err(). After exhausting retries the last
// response is returned as-is so the caller can inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	wait := RetryBaseDelay
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		delay := wait
		if after := retryAfter(resp); after > 0 {
			delay = after
		} else {
			wait *= 2
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		log.WithFields(log.Fields{
			"status":  resp.StatusCode,
			"wait":    delay,
			"attempt": attempt + 1,
			"max":     maxRetries,
		}).Debug("transient response, backing off")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// retryAfter reads the seconds form of the Retry-After header. Zero means
// absent or unusable.
func retryAfter(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
