package apicheck

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastClient(baseURL string, retries int) *Client {
	c := NewClient(baseURL, 2*time.Second, retries)
	c.backoffBase = time.Millisecond
	return c
}

func TestDoRetriesTransientStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	status, body, err := fastClient(srv.URL, 3).Get("/health")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestDoDoesNotRetryDefinitiveStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	status, _, err := fastClient(srv.URL, 3).Get("/whatever")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestDoReturnsLastTransientStatusAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	status, _, err := fastClient(srv.URL, 2).Get("/flaky")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls), "initial attempt plus two retries")
}

func TestDoSendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := fastClient(srv.URL, 0)
	c.SetToken("tok-123")
	status, _, err := c.Get("/admin/vehicles")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
}

func TestBackoffSchedule(t *testing.T) {
	c := NewClient("http://unused", time.Second, 3)
	assert.Equal(t, 500*time.Millisecond, c.backoffFor(1))
	assert.Equal(t, 1*time.Second, c.backoffFor(2))
	assert.Equal(t, 2*time.Second, c.backoffFor(3))
}
