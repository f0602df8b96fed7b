package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/alignedempire/aligned/internal/content"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func catalogYAML(t *testing.T) []byte {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	data, err := c.Marshal()
	require.NoError(t, err)
	return data
}

func TestNewClientValidatesURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://localhost:8080/site/", false},
		{"example.com", true},
		{"ftp://example.com", true},
		{"https://", true},
		{"://bad", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			_, err := NewClient(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	c, err := NewClient("http://localhost:8080/site/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/site", c.BaseURL())
}

func TestFetchCatalog(t *testing.T) {
	data := catalogYAML(t)
	var gotPath, gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(data)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/", WithAPIKey("k-123"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	cat, err := c.FetchCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/catalog.yaml", gotPath)
	assert.Equal(t, "k-123", gotKey)
	assert.Len(t, cat.Posts, 6)
	srv.Client().CloseIdleConnections()
}

func TestFetchCatalogStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.FetchCatalog(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "/catalog.yaml")
	srv.Client().CloseIdleConnections()
}

func TestFetchCatalogInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("brand: x\nposts:\n  - id: 1\n    category: Podcasts\n    title: t\n"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.FetchCatalog(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, content.ErrInvalidCatalog)
	assert.False(t, IsNotFound(err))
	srv.Client().CloseIdleConnections()
}

func TestFetchCatalogTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("brand: \""))
		w.Write([]byte(strings.Repeat("x", maxCatalogSize)))
		w.Write([]byte("\"\n"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.FetchCatalog(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
	srv.Client().CloseIdleConnections()
}

func TestFetchCatalogHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.FetchCatalog(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	srv.Client().CloseIdleConnections()
}
