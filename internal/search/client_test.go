package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/suggest.json", r.URL.Path)
		assert.Equal(t, "mug", r.URL.Query().Get("q"))
		io.WriteString(w, `{
			"products": [{"url": "/products/mug", "title": "Coffee Mug", "price": 1200}],
			"pages": [{"url": "/pages/mug-care", "title": "Mug care"}]
		}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, "")
	results, err := c.Suggest(context.Background(), "mug")

	require.NoError(t, err)
	require.Len(t, results["products"], 1)
	assert.Equal(t, "Coffee Mug", results["products"][0].Title)
	assert.Equal(t, int64(1200), results["products"][0].Price)
	require.Len(t, results["pages"], 1)
}

func TestSuggest_QueryEscaped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "blue mug & saucer", r.URL.Query().Get("q"))
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, "")
	_, err := c.Suggest(context.Background(), "blue mug & saucer")
	require.NoError(t, err)
}

func TestSuggest_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, "")
	_, err := c.Suggest(context.Background(), "mug")
	require.Error(t, err)
}

func TestSuggest_CustomPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/suggest", r.URL.Path)
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, "/api/suggest")
	_, err := c.Suggest(context.Background(), "x")
	require.NoError(t, err)
}
