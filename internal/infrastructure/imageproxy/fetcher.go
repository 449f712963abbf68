package imageproxy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"peopleconnect/internal/domain/service"
	"peopleconnect/internal/infrastructure/cache"
	"peopleconnect/internal/infrastructure/metrics"
	"peopleconnect/pkg/errors"
	"peopleconnect/pkg/logger"
)

type Options struct {
	Timeout      time.Duration
	MaxBytes     int64
	CacheTTL     time.Duration
	AllowedHosts []string
}

// Fetcher downloads remote images for the proxy endpoint and the moderation
// scanner, caching bodies in Redis when a cache is configured.
type Fetcher struct {
	httpClient   *http.Client
	cache        *cache.Cache
	maxBytes     int64
	cacheTTL     time.Duration
	allowedHosts map[string]bool
}

var _ service.ImageFetcher = (*Fetcher)(nil)

func NewFetcher(c *cache.Cache, opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 10 * 1024 * 1024
	}

	var allowed map[string]bool
	if len(opts.AllowedHosts) > 0 {
		allowed = make(map[string]bool, len(opts.AllowedHosts))
		for _, h := range opts.AllowedHosts {
			allowed[strings.ToLower(h)] = true
		}
	}

	f := &Fetcher{
		cache:        c,
		maxBytes:     opts.MaxBytes,
		cacheTTL:     opts.CacheTTL,
		allowedHosts: allowed,
	}
	f.httpClient = &http.Client{Timeout: opts.Timeout, CheckRedirect: f.checkRedirect}
	return f
}

const maxRedirects = 10

// checkRedirect holds every hop to the same rules as the requested URL.
func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.BadGateway(fmt.Sprintf("Stopped after %d redirects", maxRedirects), nil)
	}
	if _, err := f.validate(req.URL.String()); err != nil {
		return errors.Forbidden("Image redirect target is not allowed", err)
	}
	return nil
}

type cachedImage struct {
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

func cacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "img:" + hex.EncodeToString(sum[:])
}

func (f *Fetcher) validate(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, errors.Validation("url is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, errors.BadRequest("url must be an absolute http(s) URL", err)
	}
	if f.allowedHosts != nil && !f.allowedHosts[strings.ToLower(u.Hostname())] {
		return nil, errors.Forbidden("Image host is not allowed", nil)
	}
	return u, nil
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*service.FetchedImage, error) {
	u, err := f.validate(rawURL)
	if err != nil {
		return nil, err
	}

	key := cacheKey(u.String())
	var cached cachedImage
	if hit, err := f.cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Warn("Image cache read failed: %v", err)
	} else if hit {
		metrics.ImageProxyRequests.WithLabelValues("hit").Inc()
		return &service.FetchedImage{Data: cached.Data, ContentType: cached.ContentType}, nil
	}

	img, err := f.download(ctx, u.String())
	if err != nil {
		metrics.ImageProxyRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ImageProxyRequests.WithLabelValues("miss").Inc()

	if f.cacheTTL > 0 {
		if err := f.cache.SetJSON(ctx, key, cachedImage{ContentType: img.ContentType, Data: img.Data}, f.cacheTTL); err != nil {
			logger.Warn("Image cache write failed: %v", err)
		}
	}
	return img, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) (*service.FetchedImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.BadRequest("Invalid image URL", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, "FORBIDDEN") {
			return nil, errors.Forbidden("Image redirect target is not allowed", err)
		}
		return nil, errors.BadGateway("Failed to fetch image", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.BadGateway(fmt.Sprintf("Image host responded %d", resp.StatusCode), nil)
	}

	// Read one byte past the limit to tell "exactly max" from "too large".
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, errors.BadGateway("Failed to read image body", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, errors.BadGateway("Image exceeds size limit", nil)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &service.FetchedImage{Data: data, ContentType: contentType}, nil
}
