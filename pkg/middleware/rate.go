package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/beshgebeya/pos/pkg/response"
)

// window is one client's fixed-window request count.
type window struct {
	count   int
	resetAt time.Time
}

// limiter counts requests per client address. Expired windows are swept
// when a new window opens, so idle terminals do not accumulate.
type limiter struct {
	mu      sync.Mutex
	max     int
	period  time.Duration
	now     func() time.Time
	clients map[string]*window
	sweepAt time.Time
}

func newLimiter(max int, period time.Duration) *limiter {
	return &limiter{max: max, period: period, now: time.Now, clients: map[string]*window{}}
}

func (l *limiter) allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.sweepAt) {
		for k, w := range l.clients {
			if now.After(w.resetAt) {
				delete(l.clients, k)
			}
		}
		l.sweepAt = now.Add(l.period)
	}

	w, ok := l.clients[client]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.clients[client] = w
	}
	w.count++
	return w.count <= l.max
}

// RateLimit allows each client address at most max requests per period and
// answers 429 beyond that.
func RateLimit(max int, period time.Duration) func(http.Handler) http.Handler {
	l := newLimiter(max, period)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.allow(clientIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(int(period.Seconds())))
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop, then the remote host.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
