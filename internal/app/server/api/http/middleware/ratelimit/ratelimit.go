package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

const (
	idleTTL      = 15 * time.Minute
	cleanupEvery = 2 * time.Minute
	retryAfter   = time.Second
)

// Limiter keeps one token bucket per client address.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	rps     rate.Limit
	burst   int
	now     func() time.Time
	log     *slog.Logger
}

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func New(rps float64, burst int, log *slog.Logger) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		entries: make(map[string]*entry),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		log:     log.With(slog.String("component", "rate_limiter")),
	}
}

// Allow reports whether key may make a request now.
func (l *Limiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	ent, ok := l.entries[key]
	if !ok {
		ent = &entry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.entries[key] = ent
	}
	ent.lastSeen = now
	l.mu.Unlock()

	return ent.lim.AllowN(now, 1)
}

// Cleanup forgets clients idle for longer than the TTL.
func (l *Limiter) Cleanup() {
	cutoff := l.now().Add(-idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, ent := range l.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}

// StartJanitor runs Cleanup periodically until ctx is done.
func (l *Limiter) StartJanitor(ctx context.Context) {
	t := time.NewTicker(cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}

func (l *Limiter) Middleware(api huma.API) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := clientKey(ctx.RemoteAddr())
		if l.Allow(key) {
			next(ctx)
			return
		}

		l.log.Warn("rate limit exceeded", slog.String("client", key), slog.String("path", ctx.URL().Path))
		ctx.SetHeader("Retry-After", strconv.Itoa(int(retryAfter/time.Second)))
		_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")
	}
}

func clientKey(remoteAddr string) string {
	remoteAddr = strings.TrimSpace(remoteAddr)
	host, _, err := net.SplitHostPort(remoteAddr)
	if err == nil && host != "" {
		return host
	}
	if remoteAddr != "" {
		return remoteAddr
	}
	return "unknown"
}
