package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocrm/autocrm/internal/shared/config"
	"github.com/autocrm/autocrm/internal/shared/logger"
)

func newTestStorageClient(t *testing.T, handler http.HandlerFunc) (*StorageClient, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewStorageClient(&config.BackendConfig{
		URL:        srv.URL,
		AnonKey:    "anon-key",
		ServiceKey: "service-key",
	}, logger.NewNopLogger()), srv.URL
}

func TestStorageClient_Upload(t *testing.T) {
	client, _ := newTestStorageClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/storage/v1/object/files/owner/report-1.pdf", r.URL.Path)
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		assert.Equal(t, "max-age=3600", r.Header.Get("Cache-Control"))
		assert.Equal(t, "application/pdf", r.Header.Get("Content-Type"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(body))
		_, _ = w.Write([]byte(`{"Key":"files/owner/report-1.pdf"}`))
	})

	err := client.Upload(context.Background(), "files", "owner/report-1.pdf", "application/pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)
}

func TestStorageClient_UploadFailure(t *testing.T) {
	client, _ := newTestStorageClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte(`{"error":"Payload too large","message":"The object exceeded the maximum allowed size"}`))
	})

	err := client.Upload(context.Background(), "files", "a/b.bin", "", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload files/a/b.bin")
	assert.Contains(t, err.Error(), "maximum allowed size")
}

func TestStorageClient_PublicURL(t *testing.T) {
	client, base := newTestStorageClient(t, func(w http.ResponseWriter, r *http.Request) {})

	assert.Equal(t,
		base+"/storage/v1/object/public/pics/u1/profile-1.png",
		client.PublicURL("pics", "u1/profile-1.png"))
	assert.Equal(t,
		base+"/storage/v1/object/public/pics/u1/my%20file.png",
		client.PublicURL("pics", "/u1/my file.png"))
}

func TestStorageClient_Remove(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestStorageClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/storage/v1/object/files", r.URL.Path)

		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"o/a.txt", "o/b.txt"}, body["prefixes"])
		_, _ = w.Write([]byte(`[]`))
	})

	require.NoError(t, client.Remove(context.Background(), "files", "o/a.txt", "o/b.txt"))
	require.NoError(t, client.Remove(context.Background(), "files"))
	assert.Equal(t, int32(1), calls.Load())
}
