package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func successBody(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func newTestClient(baseURL string, retryMax int) *Client {
	return NewClientWithBaseURL("test-key", "gemini-test", time.Second, retryMax,
		time.Millisecond, 2*time.Millisecond, baseURL)
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		_ = json.NewEncoder(w).Encode(successBody("# Report"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	text, err := c.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "# Report", text)
	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
}

func TestGenerateRetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"code": 429, "status": "UNAVAILABLE", "message": "slow down"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(successBody("ok"))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 3)
	text, err := c.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestGenerateAuthErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "status": "PERMISSION_DENIED", "message": "bad key"},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 3)
	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestGenerateServerErrorExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 3)
	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	var srvErr *ServerError
	assert.ErrorAs(t, err, &srvErr)
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, 1)
	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestGenerateMissingAPIKey(t *testing.T) {
	c := NewClient("", "gemini-test", 0, 0, 0, 0)
	_, err := c.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key")
}
