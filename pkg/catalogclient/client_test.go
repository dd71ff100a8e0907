package catalogclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientListDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/categories", r.URL.Path)
		assert.Equal(t, "act", r.URL.Query().Get("search"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
            "data": [{"id": "1", "name": "Action"}],
            "meta": {"total": 1, "page": 1, "per_page": 15, "last_page": 1}
        }`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api/v1", nil)

	q := url.Values{}
	q.Set("search", "act")

	page, err := client.List(context.Background(), "categories", q)
	require.NoError(t, err)

	assert.Equal(t, int64(1), page.Meta.Total)
	assert.Equal(t, 15, page.Meta.PerPage)
	assert.JSONEq(t, `[{"id": "1", "name": "Action"}]`, string(page.Data))
}

func TestClientListReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "category not found"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	_, err := client.List(context.Background(), "categories", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "category not found", apiErr.Message)
}
