package rvk

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fachref/rvkc/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(
		WithBaseURL(server.URL),
		WithRequestsPerSecond(1000),
		WithRetry(1, time.Millisecond),
	)
}

func TestClientTop(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/top", r.URL.Path)
		w.Write([]byte(`{"node": [
			{"notation": "A", "benennung": "Allgemeines", "has_children": "yes"},
			{"notation": "B", "benennung": "Theologie und Religionswissenschaften", "has_children": "yes"}
		]}`))
	})

	nodes, err := client.Top(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "A", nodes[0].Notation)
	assert.Equal(t, "Allgemeines", nodes[0].Label)
	assert.True(t, nodes[0].HasChildren)
}

func TestClientChildren(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/children/AN", r.URL.Path)
		w.Write([]byte(`{"node": [
			{"notation": "AN 1000", "benennung": "Buch- und Bibliothekswesen allgemein", "has_children": "no"}
		]}`))
	})

	nodes, err := client.Children(context.Background(), "AN")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "AN 1000", nodes[0].Notation)
	assert.False(t, nodes[0].HasChildren)
}

func TestClientChildrenLeaf(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"node": []}`))
	})

	nodes, err := client.Children(context.Background(), "AN 1000")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestClientAncestors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ancestors/AN 1000", r.URL.Path)
		w.Write([]byte(`{"ancestor": [
			{"notation": "A", "benennung": "Allgemeines", "has_children": "yes"},
			{"notation": "AN", "benennung": "Buch- und Bibliothekswesen", "has_children": "yes"},
			{"notation": "AN 1000", "benennung": "Allgemeines", "has_children": "no"}
		]}`))
	})

	nodes, err := client.Ancestors(context.Background(), "AN 1000")
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "A", nodes[0].Notation)
	assert.Equal(t, "AN 1000", nodes[2].Notation)
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"not found", http.StatusNotFound, core.ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, core.ErrUpstreamUnavailable},
		{"server error", http.StatusInternalServerError, core.ErrUpstreamUnavailable},
		{"bad gateway", http.StatusBadGateway, core.ErrUpstreamUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := client.Node(context.Background(), "XX 999")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClientAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.Node(context.Background(), "XX 999")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClientInvalidResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.Top(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClientRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"node": [{"notation": "A", "benennung": "Allgemeines", "has_children": "yes"}]}`))
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithRequestsPerSecond(1000),
		WithRetry(3, time.Millisecond),
	)

	nodes, err := client.Top(context.Background())
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithRequestsPerSecond(1000),
		WithRetry(5, time.Millisecond),
	)

	_, err := client.Node(context.Background(), "XX 999")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientNotationEscaping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/node/AN%201000", r.URL.EscapedPath())
		w.Write([]byte(`{"node": {"notation": "AN 1000", "benennung": "Allgemeines", "has_children": "no"}}`))
	})

	node, err := client.Node(context.Background(), "AN 1000")
	require.NoError(t, err)
	assert.Equal(t, "AN 1000", node.Notation)
}
