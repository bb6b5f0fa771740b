package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.UserAgent = "test-agent"
	opts.RetryCooldown = 0.001
	opts.RetryExponent = 1
	opts.RequestsPerSecond = 0
	opts.Timeout = 5 * time.Second
	return opts
}

func TestClient_GetString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c, err := NewClientWithOptions(testOptions())
	require.NoError(t, err)

	body, err := c.GetString(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", body)
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("third time lucky"))
	}))
	defer srv.Close()

	c, err := NewClientWithOptions(testOptions())
	require.NoError(t, err)

	body, err := c.GetString(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "third time lucky", body)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestClient_GivesUpAfterMaxRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	opts := testOptions()
	opts.MaxRetries = 2
	c, err := NewClientWithOptions(opts)
	require.NoError(t, err)

	_, err = c.GetString(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestClient_DoesNotRetryNotFound(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c, err := NewClientWithOptions(testOptions())
	require.NoError(t, err)

	_, err = c.GetString(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrStatus)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := NewClientWithOptions(testOptions())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.GetString(ctx, srv.URL)
	assert.Error(t, err)
}

func TestNewClientWithOptions_InvalidProxy(t *testing.T) {
	opts := testOptions()
	opts.Proxy = "://bad"
	_, err := NewClientWithOptions(opts)
	assert.Error(t, err)
}
