package imageproxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peopleconnect/internal/infrastructure/cache"
	"peopleconnect/pkg/errors"
)

func imageServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte("pngbytes"))
		case "/big.png":
			_, _ = w.Write(make([]byte, 64))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestFetchCachesInRedis(t *testing.T) {
	var hits int32
	server := imageServer(t, &hits)
	defer server.Close()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	f := NewFetcher(cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "pc:"), Options{CacheTTL: time.Hour})

	for i := 0; i < 2; i++ {
		img, err := f.Fetch(context.Background(), server.URL+"/ok.png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.ContentType)
		assert.Equal(t, []byte("pngbytes"), img.Data)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchErrors(t *testing.T) {
	var hits int32
	server := imageServer(t, &hits)
	defer server.Close()

	f := NewFetcher(nil, Options{MaxBytes: 32})
	ctx := context.Background()

	_, err := f.Fetch(ctx, "")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))

	_, err = f.Fetch(ctx, "file:///etc/passwd")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = f.Fetch(ctx, server.URL+"/missing.png")
	assert.True(t, errors.Is(err, "BAD_GATEWAY"))

	_, err = f.Fetch(ctx, server.URL+"/big.png")
	assert.True(t, errors.Is(err, "BAD_GATEWAY"))
}

func TestFetchRespectsAllowedHosts(t *testing.T) {
	f := NewFetcher(nil, Options{AllowedHosts: []string{"firebasestorage.googleapis.com"}})

	_, err := f.Fetch(context.Background(), "https://evil.example.com/a.png")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestFetchRefusesRedirectToDisallowedHost(t *testing.T) {
	var hits int32
	var port string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path == "/hop" {
			// Same listener, different host name.
			http.Redirect(w, r, "http://localhost:"+port+"/secret", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("SECRET-METADATA"))
	}))
	defer server.Close()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	port = u.Port()

	f := NewFetcher(nil, Options{AllowedHosts: []string{"127.0.0.1"}})

	img, err := f.Fetch(context.Background(), server.URL+"/hop")
	assert.Nil(t, img)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
