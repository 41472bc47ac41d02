package bitquery

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

func TestDo_SendsBearerAuthAndDecodesData(t *testing.T) {
	var gotAuth, gotContentType string
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"data":{"EVM":{"Transfers":[{"total_transferred_amount":"12.5"}]}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", 5*time.Second)

	var out struct {
		EVM struct {
			Transfers []map[string]any `json:"Transfers"`
		} `json:"EVM"`
	}
	err := c.Do(context.Background(), "query { x }", map[string]any{"token": "0xabc"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "query { x }", gotReq["query"])
	assert.Equal(t, map[string]any{"token": "0xabc"}, gotReq["variables"])
	require.Len(t, out.EVM.Transfers, 1)
}

func TestDo_SurfacesGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"rate limit exceeded"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", 5*time.Second)
	err := c.Do(context.Background(), "q", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestDo_SurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-key", 5*time.Second)
	err := c.Do(context.Background(), "q", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestDo_ContextCancellationAbortsRequest(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := New(srv.URL, "k", 30*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := c.Do(ctx, "q", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
