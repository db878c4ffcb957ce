package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/esimly/backend/internal/contextkeys"
	"github.com/esimly/backend/internal/domain"
	"github.com/esimly/backend/internal/handler"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

// ByIP counts requests per client IP.
func ByIP(r *http.Request) string { return "ip:" + extractClientIP(r) }

// ByUser counts requests per signed-in user, falling back to the client IP.
func ByUser(r *http.Request) string {
	if uid, ok := r.Context().Value(contextkeys.UserID).(string); ok && uid != "" {
		return "user:" + uid
	}
	return ByIP(r)
}

// RateLimiter is a keyed token bucket limiter. Idle buckets are dropped after a few minutes.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     rate.Limit
	burst    int
	key      KeyFunc
	idle     time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter creates a per-IP limiter allowing rps requests per second with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(rps),
		burst:    burst,
		key:      ByIP,
		idle:     3 * time.Minute,
		stop:     make(chan struct{}),
	}
	go rl.cleanup(time.Minute)
	return rl
}

// WithKey changes how requests are grouped into buckets.
func (rl *RateLimiter) WithKey(fn KeyFunc) *RateLimiter {
	rl.key = fn
	return rl
}

// Middleware rejects requests over the limit with 429 and a Retry-After hint.
func (rl *RateLimiter) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if wait := rl.reserve(rl.key(r)); wait > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				handler.Error(w, domain.ErrRateLimited("rate limit exceeded, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Allow reports whether key may make another request now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.reserve(key) == 0
}

// Stop ends the background cleanup.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// reserve takes a token for key, or returns how long until one is available without taking it.
func (rl *RateLimiter) reserve(key string) time.Duration {
	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	res := v.limiter.Reserve()
	if !res.OK() {
		return time.Second
	}
	wait := res.Delay()
	if wait > 0 {
		res.Cancel()
	}
	return wait
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, v := range rl.visitors {
				if now.Sub(v.lastSeen) > rl.idle {
					delete(rl.visitors, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// extractClientIP returns the client IP, preferring proxy headers if available.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	// First X-Forwarded-For entry is the original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
