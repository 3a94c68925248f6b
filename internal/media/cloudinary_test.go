package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRemover points the SDK's upload API at a local server.
func newTestRemover(t *testing.T, h http.HandlerFunc) *cloudinaryRemover {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	r, err := NewCloudinaryRemover("demo", "key-1", "shh")
	require.NoError(t, err)
	c := r.(*cloudinaryRemover)
	c.upload.Config.API.UploadPrefix = srv.URL
	return c
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func TestCloudinaryRemover_Remove(t *testing.T) {
	t.Run("Signed destroy request", func(t *testing.T) {
		c := newTestRemover(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.True(t, strings.HasSuffix(r.URL.Path, "/demo/image/destroy"), r.URL.Path)

			assert.Equal(t, "products/abc", r.FormValue("public_id"))
			assert.Equal(t, "key-1", r.FormValue("api_key"))
			assert.NotEmpty(t, r.FormValue("timestamp"))
			assert.NotEmpty(t, r.FormValue("signature"))

			writeJSON(w, http.StatusOK, `{"result":"ok"}`)
		})

		assert.NoError(t, c.Remove(context.Background(), "products/abc"))
	})

	t.Run("Already gone", func(t *testing.T) {
		c := newTestRemover(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"result":"not found"}`)
		})
		assert.NoError(t, c.Remove(context.Background(), "x"))
	})

	t.Run("API error", func(t *testing.T) {
		c := newTestRemover(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"error":{"message":"Invalid Signature"}}`)
		})
		assert.Error(t, c.Remove(context.Background(), "x"))
	})

	t.Run("Unexpected result", func(t *testing.T) {
		c := newTestRemover(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"result":"error"}`)
		})
		assert.Error(t, c.Remove(context.Background(), "x"))
	})

	t.Run("Host unreachable", func(t *testing.T) {
		r, err := NewCloudinaryRemover("demo", "key-1", "shh")
		require.NoError(t, err)
		c := r.(*cloudinaryRemover)
		c.upload.Config.API.UploadPrefix = "http://127.0.0.1:1"

		assert.Error(t, c.Remove(context.Background(), "x"))
	})
}

func TestNewCloudinaryRemover(t *testing.T) {
	r, err := NewCloudinaryRemover("demo", "key", "secret")
	require.NoError(t, err)
	assert.Equal(t, "demo", r.(*cloudinaryRemover).upload.Config.Cloud.CloudName)
}

func TestNoopRemover(t *testing.T) {
	assert.NoError(t, NewNoopRemover().Remove(context.Background(), "anything"))
}
