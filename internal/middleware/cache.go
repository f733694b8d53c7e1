package middleware

// cache.go provides a Redis-backed response cache for the read-heavy device
// listing, lookup and report endpoints.  Only successful GET responses are
// cached, keyed by route plus query string; a write anywhere in the system
// ages out naturally with the configured TTL.

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/config"
)

// cacheWriter captures the response body and status while forwarding bytes to
// the client, up to the configured size limit.
type cacheWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int
	limit  int
}

func (w *cacheWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	if w.size+len(b) <= w.limit {
		w.buf.Write(b)
	}
	w.size += len(b)
	return w.ResponseWriter.Write(b)
}

// cacheKey hashes route + raw query under the configured prefix.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum)
}

// ResponseCache returns middleware that serves cached JSON bodies for GET
// requests.  A nil Redis client or a disabled config yields a pass-through.
// Cache failures are never surfaced; the request simply falls through to the
// handler.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := cacheKey(cfg.Prefix, c)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
			cached, err := rdb.Get(ctx, key).Bytes()
			cancel()
			if err == nil && len(cached) > 0 {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, cached)
			}

			w := &cacheWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = w
			if err := next(c); err != nil {
				return err
			}

			if w.status == http.StatusOK && w.size <= w.limit {
				ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
				_ = rdb.Set(ctx, key, w.buf.Bytes(), cfg.TTL).Err()
				cancel()
			}
			return nil
		}
	}
}
