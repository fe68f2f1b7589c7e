// Package cache provides an in-memory HTTP response cache middleware
// backed by patrickmn/go-cache, adapted from the teacher's cache
// middleware but swapped onto go-cache (whose own per-entry TTL maps
// directly onto response freshness) rather than the LRU used for the
// router's own dispatch cache (kedge.WithDispatchCache) — two different
// eviction needs, two different libraries, exactly as the teacher's own
// session store and router-cache middleware each reach for the library
// suited to their own eviction policy.
package cache

import (
	"bytes"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ResponseCache memoizes GET response bodies, status codes, and headers
// keyed by a caller-supplied function of the request.
type ResponseCache struct {
	store *gocache.Cache
}

type cachedResponse struct {
	body    []byte
	status  int
	headers http.Header
}

// New builds a ResponseCache whose entries expire after ttl and are swept
// every cleanupInterval.
func New(ttl, cleanupInterval time.Duration) *ResponseCache {
	return &ResponseCache{store: gocache.New(ttl, cleanupInterval)}
}

// KeyFunc derives a cache key from a request.
type KeyFunc func(*http.Request) string

// URLKey is a KeyFunc that uses the full request URL as the cache key.
func URLKey(r *http.Request) string { return r.URL.String() }

// Middleware caches GET responses under keyFunc(request); non-GET
// requests, and any GET response outside the 2xx range, bypass the cache
// entirely.
func (c *ResponseCache) Middleware(keyFunc KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if cached, ok := c.store.Get(key); ok {
				resp := cached.(*cachedResponse)
				for k, values := range resp.headers {
					for _, v := range values {
						w.Header().Add(k, v)
					}
				}
				w.WriteHeader(resp.status)
				w.Write(resp.body)
				return
			}

			rec := &recorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status >= 200 && rec.status < 300 {
				c.store.SetDefault(key, &cachedResponse{
					body:    bytes.Clone(rec.body.Bytes()),
					status:  rec.status,
					headers: w.Header().Clone(),
				})
			}
		})
	}
}

// Purge empties the cache.
func (c *ResponseCache) Purge() { c.store.Flush() }

type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(data []byte) (int, error) {
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
