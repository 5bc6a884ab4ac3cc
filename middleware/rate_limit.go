package middleware

import (
	"net/http"
	"sync"
	"time"

	"attorney_directory_go/services/i18n"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Skipper lets requests through without counting them
	Skipper func(c echo.Context) bool
	// MessageKey is the i18n key of the error returned when the limit is exceeded
	MessageKey string
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a fixed-window limiter keyed per client
type RateLimiter struct {
	config RateLimitConfig
	store  map[string]*rateLimitEntry
	mu     sync.RWMutex
	done   chan struct{}
	once   sync.Once
}

// NewRateLimiter creates a new rate limiter with the given configuration.
// Call Stop to release its cleanup goroutine.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.MessageKey == "" {
		config.MessageKey = "errors.rate_limited"
	}

	rl := &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
		done:   make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// NewWriteRateLimiter limits POST, PUT and DELETE to perMinute requests per IP.
// Reads are never limited.
func NewWriteRateLimiter(perMinute int) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Requests: perMinute,
		Window:   time.Minute,
		Skipper: func(c echo.Context) bool {
			switch c.Request().Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete:
				return false
			}
			return true
		},
	})
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.config.Skipper != nil && rl.config.Skipper(c) {
				return next(c)
			}
			key := rl.config.KeyFunc(c)

			rl.mu.Lock()
			entry, exists := rl.store[key]
			now := time.Now()

			if !exists || now.After(entry.expiresAt) {
				rl.store[key] = &rateLimitEntry{
					count:     1,
					expiresAt: now.Add(rl.config.Window),
				}
				rl.mu.Unlock()
				return next(c)
			}

			if entry.count >= rl.config.Requests {
				rl.mu.Unlock()
				return echo.NewHTTPError(http.StatusTooManyRequests, i18n.T(c.Request().Context(), rl.config.MessageKey))
			}

			entry.count++
			rl.mu.Unlock()
			return next(c)
		}
	}
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.done) })
}

// cleanup removes expired entries every minute
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := time.Now()
			for key, entry := range rl.store {
				if now.After(entry.expiresAt) {
					delete(rl.store, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}
