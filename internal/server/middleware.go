package server

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// throttle applies a token-bucket limit per client IP. Entries idle for
// longer than ten minutes are dropped on the next pass.
type throttle struct {
	mu      sync.Mutex
	clients map[string]*ipLimiter
	cfg     RateLimitConfig
}

func newThrottle(cfg RateLimitConfig) *throttle {
	return &throttle{
		clients: make(map[string]*ipLimiter),
		cfg:     cfg,
	}
}

func (t *throttle) allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.clients[ip]
	if !ok {
		entry = &ipLimiter{
			limiter: rate.NewLimiter(rate.Every(time.Second/time.Duration(t.cfg.PerSecond)), t.cfg.Burst),
		}
		t.clients[ip] = entry
	}
	entry.lastSeen = time.Now()

	for addr, client := range t.clients {
		if time.Since(client.lastSeen) > 10*time.Minute {
			delete(t.clients, addr)
		}
	}

	return entry.limiter.Allow()
}

func (t *throttle) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.allow(clientIP(r)) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
