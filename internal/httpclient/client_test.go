package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usermanagement/internal/logging"
)

type item struct {
	Name string `json:"name"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, 5*time.Second, logging.NewNop())
	require.NoError(t, err)
	return c
}

func TestGetJSON_DecodesAndSendsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"name":"first"}`))
	})

	var out item
	require.NoError(t, c.GetJSON(context.Background(), "/items", map[string][]string{"page": {"2"}}, &out))
	assert.Equal(t, "first", out.Name)
}

func TestPutJSON_SendsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"put"}`, string(body))
		_ = json.NewEncoder(w).Encode(item{Name: "stored"})
	})

	var out item
	require.NoError(t, c.PutJSON(context.Background(), "/items/1", item{Name: "put"}, &out))
	assert.Equal(t, "stored", out.Name)
}

func TestPostJSON_ErrorBodyMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"status":409,"message":"taken"}`))
	})

	err := c.PostJSON(context.Background(), "/items", item{Name: "x"}, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, "taken", httpErr.Message)
	assert.Equal(t, "http 409: taken", httpErr.Error())
}

func TestGetJSON_EmptyErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.GetJSON(context.Background(), "/items/9", nil, &item{})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Empty(t, httpErr.Body)
	assert.Equal(t, "http 404", httpErr.Error())
}
