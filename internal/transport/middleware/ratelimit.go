package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter implements per-IP token bucket rate limiting.
type RateLimiter struct {
	limiters sync.Map // map[string]*ipLimiter
	limit    rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once

	allowed  prometheus.Counter
	rejected prometheus.Counter
}

type ipLimiter struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// NewRateLimiter creates a limiter allowing rps requests per second with the
// given burst per client IP, with background cleanup of idle clients.
// Call Stop() on shutdown.
func NewRateLimiter(rps float64, burst int, cleanupInterval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit: rate.Limit(rps),
		burst: burst,
		stop:  make(chan struct{}),
		allowed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notes",
			Subsystem: "http",
			Name:      "rate_limit_allowed_total",
			Help:      "Requests admitted by the per-IP rate limiter.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "notes",
			Subsystem: "http",
			Name:      "rate_limit_rejected_total",
			Help:      "Requests rejected by the per-IP rate limiter.",
		}),
	}
	go rl.cleanup(cleanupInterval)
	return rl
}

// RegisterCollectors registers the limiter counters with reg.
func (rl *RateLimiter) RegisterCollectors(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{rl.allowed, rl.rejected} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Limit returns middleware that answers 429 with Retry-After once a client
// IP has exhausted its bucket.
func (rl *RateLimiter) Limit() Middleware {
	retryAfter := strconv.Itoa(int(math.Ceil(1 / math.Max(float64(rl.limit), 1e-3))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.get(clientIP(r)).Allow() {
				rl.rejected.Inc()
				w.Header().Set("Retry-After", retryAfter)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"}) //nolint:errcheck
				return
			}

			rl.allowed.Inc()
			next.ServeHTTP(w, r)
		})
	}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	val, ok := rl.limiters.Load(key)
	if !ok {
		val, _ = rl.limiters.LoadOrStore(key, &ipLimiter{lim: rate.NewLimiter(rl.limit, rl.burst)})
	}
	l := val.(*ipLimiter)
	l.lastSeen.Store(time.Now().UnixNano())
	return l.lim
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-limiterIdleTTL).UnixNano()
			rl.limiters.Range(func(key, value any) bool {
				if value.(*ipLimiter).lastSeen.Load() < cutoff {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

// clientIP strips the port from RemoteAddr. Forwarded headers are not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		if r.RemoteAddr == "" {
			return "unknown"
		}
		return r.RemoteAddr
	}
	return host
}
