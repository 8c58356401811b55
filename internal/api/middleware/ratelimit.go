package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/carolcampos22/chatterbox/internal/api/handlers"
)

// RateLimiter is a fixed-window, per-client-IP in-memory limiter
type RateLimiter struct {
	clients  map[string]*clientWindow
	done     chan struct{}
	now      func() time.Time
	requests   int
	window     time.Duration
	mu         sync.Mutex
	stopOnce   sync.Once
	trustProxy bool
}

type clientWindow struct {
	resetAt time.Time
	count   int
}

// NewRateLimiter allows up to requests per window for each client IP.
// Forwarding headers are only honored when trustProxy is set, which should
// be the case only behind a reverse proxy that overwrites them.
// Call Stop to end the background sweep.
func NewRateLimiter(requests int, window time.Duration, trustProxy bool) *RateLimiter {
	rl := &RateLimiter{
		clients:    make(map[string]*clientWindow),
		done:       make(chan struct{}),
		now:        time.Now,
		requests:   requests,
		window:     window,
		trustProxy: trustProxy,
	}

	go rl.sweep()

	return rl
}

// Middleware returns 429 once a client exhausts its window
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r, rl.trustProxy)) {
			handlers.WriteError(w, http.StatusTooManyRequests, "RateLimitExceeded",
				"Rate limit exceeded. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Stop ends the sweep goroutine
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

func (rl *RateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	client, exists := rl.clients[clientID]
	if !exists || now.After(client.resetAt) {
		rl.clients[clientID] = &clientWindow{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if client.count < rl.requests {
		client.count++
		return true
	}
	return false
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.mu.Lock()
			now := rl.now()
			for clientID, client := range rl.clients {
				if now.After(client.resetAt) {
					delete(rl.clients, clientID)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// clientIP keys on the socket address. With trustProxy it prefers the first
// X-Forwarded-For hop, then X-Real-IP.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if ip := forwardedIP(r); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func forwardedIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	return strings.TrimSpace(r.Header.Get("X-Real-IP"))
}
