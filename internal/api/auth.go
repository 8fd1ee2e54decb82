package api

import (
	"crypto/subtle"
	"net/http"
	"sync"

	"ammarstationary/internal/config"

	"golang.org/x/time/rate"
)

// HTTPAuth validates API keys and rate-limits each key independently.
type HTTPAuth struct {
	header   string
	keys     map[string]config.APIClientKey
	rps      float64
	burst    int
	limiters sync.Map
}

func NewHTTPAuth(cfg config.APIConfig) *HTTPAuth {
	keys := make(map[string]config.APIClientKey, len(cfg.Auth.APIKeys))
	for _, k := range cfg.Auth.APIKeys {
		keys[k.Key] = k
	}
	return &HTTPAuth{
		header: cfg.Auth.HeaderAPIKey,
		keys:   keys,
		rps:    cfg.RateLimit.RPS,
		burst:  cfg.RateLimit.Burst,
	}
}

// Wrap rate-limits authenticated requests. Authorization itself is
// enforced per route, since public endpoints accept anonymous calls.
func (a *HTTPAuth) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(a.header)
		if key != "" {
			if _, ok := a.lookup(key); !ok {
				writeError(w, http.StatusUnauthorized, "invalid api key")
				return
			}
			if !a.getLimiter(key).Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		} else if !a.getLimiter("anonymous:"+clientIP(r)).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Client resolves the request's API key to its configured client.
func (a *HTTPAuth) Client(r *http.Request) (config.APIClientKey, bool) {
	return a.lookup(r.Header.Get(a.header))
}

func (a *HTTPAuth) lookup(key string) (config.APIClientKey, bool) {
	if key == "" {
		return config.APIClientKey{}, false
	}
	for configured, client := range a.keys {
		if subtle.ConstantTimeCompare([]byte(configured), []byte(key)) == 1 {
			return client, true
		}
	}
	return config.APIClientKey{}, false
}

func (a *HTTPAuth) getLimiter(key string) *rate.Limiter {
	if v, ok := a.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rate.Limit(a.rps), a.burst)
	actual, _ := a.limiters.LoadOrStore(key, limiter)
	return actual.(*rate.Limiter)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
