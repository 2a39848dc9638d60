package install

import (
	"bytes"
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xmit-co/xmit-npm/internal/testutil"
)

func noRetryDelay(t *testing.T) {
	t.Helper()
	orig := retryDelay
	retryDelay = 0
	t.Cleanup(func() { retryDelay = orig })
}

func TestFetchRetriesServerErrorOnce(t *testing.T) {
	noRetryDelay(t)
	archive := testutil.ReleaseArchive(t, "pkg", "xmit", testScript)
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(archive)
	}))
	t.Cleanup(server.Close)
	cfg := testConfig(t, server.URL)

	result, err := New(Config{Stderr: &bytes.Buffer{}}).EnsureInstalled(context.Background(), cfg, Options{Quiet: true})
	require.NoError(t, err)
	assert.Equal(t, StatusInstalled, result.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetchGivesUpAfterRetry(t *testing.T) {
	noRetryDelay(t)
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	_, err := New(Config{}).fetch(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetchRetryWaitHonorsContext(t *testing.T) {
	orig := retryDelay
	retryDelay = 10 * time.Second
	t.Cleanup(func() { retryDelay = orig })
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	_, err := New(Config{}).fetch(ctx, server.URL, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	noRetryDelay(t)
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	_, err := New(Config{}).fetch(context.Background(), server.URL, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchReportsRateLimit(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		remaining string
		limited   bool
	}{
		{name: "too many requests", status: http.StatusTooManyRequests, limited: true},
		{name: "forbidden with exhausted quota", status: http.StatusForbidden, remaining: "0", limited: true},
		{name: "forbidden with quota left", status: http.StatusForbidden, remaining: "12"},
		{name: "plain forbidden", status: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.remaining != "" {
					w.Header().Set("X-RateLimit-Remaining", tt.remaining)
				}
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(server.Close)

			_, err := New(Config{}).fetch(context.Background(), server.URL, nil)
			require.Error(t, err)
			var rl *RateLimitError
			assert.Equal(t, tt.limited, errors.As(err, &rl))
		})
	}
}

func TestRateLimitErrorMessage(t *testing.T) {
	remaining := 0
	err := &RateLimitError{StatusCode: http.StatusForbidden, Status: "403 Forbidden", Remaining: &remaining}
	assert.Equal(t, "release host rate limit exceeded (403 Forbidden, remaining=0)", err.Error())

	err = &RateLimitError{StatusCode: http.StatusTooManyRequests, Status: "429 Too Many Requests"}
	assert.Contains(t, err.Error(), "remaining=unknown")
}

func TestShouldRetry(t *testing.T) {
	netErr := &net.OpError{Op: "dial", Err: errors.New("refused")}
	assert.True(t, shouldRetry(netErr, 0, 0))
	assert.False(t, shouldRetry(netErr, 0, fetchRetryCount))
	assert.False(t, shouldRetry(context.Canceled, 0, 0))
	assert.False(t, shouldRetry(errors.New("plain"), 0, 0))
	assert.True(t, shouldRetry(nil, http.StatusInternalServerError, 0))
	assert.False(t, shouldRetry(nil, http.StatusNotFound, 0))
}
