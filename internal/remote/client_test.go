package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instantTimer fires immediately and remembers the requested delays.
type instantTimer struct {
	delays *[]time.Duration
	c      chan time.Time
}

func (t *instantTimer) Start(d time.Duration) {
	*t.delays = append(*t.delays, d)
	t.c <- time.Time{}
}

func (t *instantTimer) Stop() {}

func (t *instantTimer) C() <-chan time.Time {
	return t.c
}

func newTestClient(delays *[]time.Duration) *Client {
	return New(
		WithBaseDelay(time.Second),
		WithTimer(func() backoff.Timer {
			return &instantTimer{delays: delays, c: make(chan time.Time, 1)}
		}),
	)
}

type payload struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
}

func TestClient_RetriesPersistentFailureLinearly(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var delays []time.Duration
	client := newTestClient(&delays)

	var out payload
	err := client.Get(context.Background(), srv.URL+"?action=getAllExams", 3, &out)
	require.Error(t, err)

	httpErr, ok := IsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	assert.Equal(t, int32(4), atomic.LoadInt32(&calls), "one attempt plus three retries")
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, delays)
}

func TestClient_RecoversAfterTransientFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(payload{Success: true, Action: r.URL.Query().Get("action")})
	}))
	defer srv.Close()

	var delays []time.Duration
	client := newTestClient(&delays)

	var out payload
	require.NoError(t, client.Get(context.Background(), srv.URL+"?action=getAllExams", 3, &out))
	assert.True(t, out.Success)
	assert.Equal(t, "getAllExams", out.Action)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)

	t.Run("next call starts with a fresh budget", func(t *testing.T) {
		atomic.StoreInt32(&calls, 0)
		delays = nil
		require.NoError(t, client.Get(context.Background(), srv.URL, 3, &out))
		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, delays)
	})
}

func TestClient_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	var delays []time.Duration
	client := newTestClient(&delays)

	err := client.PostJSON(context.Background(), srv.URL, map[string]string{"action": "addNewExam"}, 0, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, delays)
}

func TestClient_PostJSONSendsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(payload{Success: true, Action: body["action"].(string)})
	}))
	defer srv.Close()

	var delays []time.Duration
	client := newTestClient(&delays)

	var out payload
	require.NoError(t, client.PostJSON(context.Background(), srv.URL, map[string]string{"action": "sendTestEmail"}, 3, &out))
	assert.Equal(t, "sendTestEmail", out.Action)
}

func TestClient_BadJSONIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("<html>login required</html>"))
	}))
	defer srv.Close()

	var delays []time.Duration
	client := newTestClient(&delays)

	var out payload
	err := client.Get(context.Background(), srv.URL, 3, &out)
	require.Error(t, err)
	_, isHTTP := IsHTTPError(err)
	assert.False(t, isHTTP)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_TransportErrorIsRetried(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	var delays []time.Duration
	client := newTestClient(&delays)

	err := client.Get(context.Background(), addr, 2, nil)
	require.Error(t, err)
	assert.Len(t, delays, 2)
}

func TestClient_CancelledContextStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(WithBaseDelay(time.Millisecond))
	err := client.Get(ctx, srv.URL, 3, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLinearBackOff(t *testing.T) {
	b := &linearBackOff{base: 100 * time.Millisecond}
	assert.Equal(t, 100*time.Millisecond, b.NextBackOff())
	assert.Equal(t, 200*time.Millisecond, b.NextBackOff())
	b.Reset()
	assert.Equal(t, 100*time.Millisecond, b.NextBackOff())
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "https://script.example/exec?action=findExam",
		redact("https://script.example/exec?action=findExam&searchValue=secret"))
	assert.Equal(t, "https://script.example/exec", redact("https://script.example/exec"))
}
