package httpx

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/gatepass/pkg/slogx"
	"github.com/caarlos0/env/v11"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int `env:"REQUESTS"`
	// Window is the time window for rate limiting
	Window time.Duration `env:"WINDOW"`
	// Burst allows for temporary bursts above the rate limit
	Burst int `env:"BURST"`
}

func (c RateLimitConfig) valid() bool {
	return c.RequestsPerWindow > 0 && c.Window > 0 && c.Burst > 0
}

// Rate limit profiles. Each can be overridden through
// RATELIMIT_<PROFILE>_REQUESTS, RATELIMIT_<PROFILE>_WINDOW (a Go duration)
// and RATELIMIT_<PROFILE>_BURST.
var (
	// IssueLimit for the issuing desk and operator reads.
	IssueLimit = RateLimitConfig{
		RequestsPerWindow: 60,
		Window:            time.Minute,
		Burst:             20,
	}

	// RedeemLimit for door scanners. A scanner re-reading the same QR a few
	// times a second must not be locked out.
	RedeemLimit = RateLimitConfig{
		RequestsPerWindow: 300,
		Window:            time.Minute,
		Burst:             30,
	}

	// HealthLimit for probes.
	HealthLimit = RateLimitConfig{
		RequestsPerWindow: 600,
		Window:            time.Minute,
		Burst:             60,
	}
)

func init() {
	IssueLimit = ParseRateLimitFromEnv("ISSUE", IssueLimit)
	RedeemLimit = ParseRateLimitFromEnv("REDEEM", RedeemLimit)
	HealthLimit = ParseRateLimitFromEnv("HEALTH", HealthLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_<profile>_* environment
// variables onto def. Invalid or non-positive overrides leave def intact.
func ParseRateLimitFromEnv(profile string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "RATELIMIT_" + profile + "_"}); err != nil {
		return def
	}
	if !cfg.valid() {
		return def
	}
	return cfg
}

// KeyExtractor returns the bucket key for a request. An empty key bypasses
// the limiter.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor keys on the connection's remote address.
func IPKeyExtractor(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// ForwardedIPKeyExtractor prefers the first X-Forwarded-For hop, then
// X-Real-IP. Only use it behind a proxy that sets those headers.
func ForwardedIPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return IPKeyExtractor(r)
}

// StationKeyExtractor keys on the authenticated station, falling back to
// the remote IP for anonymous requests.
func StationKeyExtractor(r *http.Request) string {
	if s := StationFromContext(r.Context()); s != "" {
		return "station:" + s
	}
	return "ip:" + IPKeyExtractor(r)
}

type bucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// limiterSet holds one token bucket per key and drops buckets that have
// been idle for longer than idleTTL.
type limiterSet struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{
		buckets:   make(map[string]*bucket),
		rate:      rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:     cfg.Burst,
		idleTTL:   max(cfg.Window, 5*time.Minute),
		lastSweep: time.Now(),
	}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > s.idleTTL {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) > s.idleTTL {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(s.rate, s.burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.lim
}

func (s *limiterSet) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// RateLimitMiddleware rejects requests with 429 once the bucket for their
// key is empty.
func RateLimitMiddleware(cfg RateLimitConfig, key KeyExtractor) Middleware {
	set := newLimiterSet(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			lim := set.get(k, now)
			if lim.AllowN(now, 1) {
				next.ServeHTTP(w, r)
				return
			}

			res := lim.ReserveN(now, 1)
			retryAfter := max(int(res.DelayFrom(now).Seconds()+0.5), 1)
			res.CancelAt(now)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				slog.String("key", k),
				slog.Int("retry_after", retryAfter),
			)

			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits by remote IP address.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByStation limits by authenticated station, or by IP when the
// API runs without station tokens.
func RateLimitByStation(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, StationKeyExtractor)
}
