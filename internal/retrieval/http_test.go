package retrieval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryReturnsSnippets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "how do sessions work", req.Query)
		assert.Equal(t, 3, req.TopK)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(searchResponse{Snippets: []string{"snippet a", "snippet b"}}); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer server.Close()

	retriever := NewHTTPRetriever(server.URL, 3)
	snippets, err := retriever.Query(context.Background(), "how do sessions work")
	require.NoError(t, err)
	assert.Equal(t, []string{"snippet a", "snippet b"}, snippets)
}

func TestQueryServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	retriever := NewHTTPRetriever(server.URL, 3)
	_, err := retriever.Query(context.Background(), "anything")
	assert.Error(t, err)
}

func TestQueryUnreachableService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	retriever := NewHTTPRetriever(server.URL, 3)
	_, err := retriever.Query(context.Background(), "anything")
	assert.Error(t, err)
}
