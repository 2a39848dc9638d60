package install

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xmit-co/xmit-npm/internal/messages"
)

var retryDelay = 250 * time.Millisecond

const fetchRetryCount = 1

// fetch issues the GET request and returns the response when it is a 200.
// Network errors and 5xx responses are retried once. The caller closes the body.
func (in *Installer) fetch(ctx context.Context, url string, headers http.Header) (*http.Response, error) {
	for attempt := 0; attempt <= fetchRetryCount; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf(messages.InstallCreateRequestFmt, err)
		}
		req.Header.Set("User-Agent", DefaultUserAgent)
		for key, values := range headers {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}

		resp, err := in.client.Do(req)
		if err != nil {
			if shouldRetry(err, 0, attempt) {
				in.log.Debug("retrying download", "attempt", attempt+1, "error", err)
				if err := waitRetry(ctx); err != nil {
					return nil, fmt.Errorf(messages.InstallRequestFailedFmt, url, err)
				}
				continue
			}
			return nil, fmt.Errorf(messages.InstallRequestFailedFmt, url, err)
		}
		if resp.StatusCode == http.StatusOK {
			return resp, nil
		}

		if rateLimitErr := rateLimitErrorFromResponse(resp); rateLimitErr != nil {
			_ = resp.Body.Close()
			return nil, rateLimitErr
		}
		status, statusText := resp.StatusCode, resp.Status
		_ = resp.Body.Close()
		if shouldRetry(nil, status, attempt) {
			in.log.Debug("retrying download", "attempt", attempt+1, "status", statusText)
			if err := waitRetry(ctx); err != nil {
				return nil, fmt.Errorf(messages.InstallRequestFailedFmt, url, err)
			}
			continue
		}
		return nil, fmt.Errorf(messages.InstallUnexpectedStatusFmt, statusText)
	}
	return nil, fmt.Errorf(messages.InstallRequestFailedFmt, url, errors.New(messages.InstallRetryExhausted))
}

// waitRetry sleeps for retryDelay unless ctx ends first.
func waitRetry(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(retryDelay):
		return nil
	}
}

func rateLimitErrorFromResponse(resp *http.Response) *RateLimitError {
	if resp == nil {
		return nil
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	// GitHub answers 403 when the unauthenticated quota is spent; the header confirms it.
	if resp.StatusCode == http.StatusForbidden {
		remaining, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("X-RateLimit-Remaining")))
		if err != nil {
			return nil
		}
		if remaining == 0 {
			return &RateLimitError{StatusCode: resp.StatusCode, Status: resp.Status, Remaining: &remaining}
		}
	}
	return nil
}

func shouldRetry(err error, statusCode int, attempt int) bool {
	if attempt >= fetchRetryCount {
		return false
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}
		var netErr net.Error
		return errors.As(err, &netErr)
	}
	return statusCode >= 500 && statusCode <= 599
}
