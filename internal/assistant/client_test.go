package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(upstream *httptest.Server) *Client {
	return NewClient(upstream.URL, "test-model", "test-key")
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Inputs, "hello")

		json.NewEncoder(w).Encode([]generateResponse{{GeneratedText: "hi there"}})
	}))
	defer srv.Close()

	reply := newTestClient(srv).Generate(context.Background(), "hello")
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, "/test-model", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)
}

func TestGenerateFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"model loading", http.StatusServiceUnavailable, `{"error":"loading"}`, ModelLoadingReply},
		{"bad credentials", http.StatusUnauthorized, `{"error":"unauthorized"}`, AuthFailureReply},
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, GenericReply},
		{"unparseable body", http.StatusOK, `not json`, EmptyReply},
		{"empty result list", http.StatusOK, `[]`, EmptyReply},
		{"blank generated text", http.StatusOK, `[{"generated_text":""}]`, EmptyReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			reply := newTestClient(srv).Generate(context.Background(), "hello")
			assert.Equal(t, tt.want, reply)
		})
	}
}

func TestGenerateTimeout(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	c := newTestClient(srv)
	c.http.Timeout = 50 * time.Millisecond

	reply := c.Generate(context.Background(), "hello")
	assert.Equal(t, ModelLoadingReply, reply)
}

func TestGenerateContextDeadline(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	reply := newTestClient(srv).Generate(ctx, "hello")
	assert.Equal(t, ModelLoadingReply, reply)
}

func TestGenerateUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	reply := newTestClient(srv).Generate(context.Background(), "hello")
	assert.Equal(t, GenericReply, reply)
}
