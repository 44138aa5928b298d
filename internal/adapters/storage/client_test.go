package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collabhub/collabhub-api/internal/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, ServiceKey: "service-key"})
	require.NoError(t, err)
	return c, srv
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
}

func TestEnsureBucketCreates(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bucket", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.EnsureBucket(context.Background(), "profile-images"))
	assert.Equal(t, "Bearer service-key", gotAuth)
}

func TestEnsureBucketAlreadyExistsIsSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	})
	require.NoError(t, c.EnsureBucket(context.Background(), "profile-images"))

	c2, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Bucket already exists"}`))
	})
	require.NoError(t, c2.EnsureBucket(context.Background(), "profile-images"))
}

func TestEnsureBucketFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"not allowed"}`))
	})
	err := c.EnsureBucket(context.Background(), "profile-images")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestUpload(t *testing.T) {
	var gotPath, gotUpsert, gotContentType string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUpsert = r.Header.Get("x-upsert")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	})

	err := c.Upload(context.Background(), ports.UploadInput{
		Bucket:      "profile-images",
		Path:        "user-1/12345.png",
		ContentType: "image/png",
		Data:        []byte{1, 2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "/object/profile-images/user-1/12345.png", gotPath)
	assert.Equal(t, "true", gotUpsert)
	assert.Equal(t, "image/png", gotContentType)
}

func TestUploadFailureIncludesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"disk full"}`))
	})
	err := c.Upload(context.Background(), ports.UploadInput{Bucket: "b", Path: "p", Data: []byte{1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestPublicURL(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "https://storage.example.com/storage/v1/"})
	require.NoError(t, err)
	assert.Equal(t,
		"https://storage.example.com/storage/v1/object/public/profile-images/user-1/a.png",
		c.PublicURL("profile-images", "user-1/a.png"))
}
