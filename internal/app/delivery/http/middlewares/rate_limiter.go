package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"
	"wellness-availability-service/internal/pkg/exceptions"
	"wellness-availability-service/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per-IP token bucket for booking submissions. A client that
// drains its bucket is blocked for blockTime. Idle clients are swept at most
// once per refill period.
type RateLimiter struct {
	visitors  map[string]*visitor
	blocked   map[string]time.Time
	lastSweep time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	log       *zap.Logger
	now       func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(requests int, per, blockTime time.Duration, log *zap.Logger) *RateLimiter {
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		log:       log,
		now:       time.Now,
	}
}

// BookingRateLimiter builds the limiter from App.BookingRequestsPerMinute.
func (m *Middlewares) BookingRateLimiter() *RateLimiter {
	app := m.InternalConfig.App
	return NewRateLimiter(
		app.BookingRequestsPerMinute,
		time.Minute,
		time.Duration(app.BookingBlockTimeInSeconds)*time.Second,
		m.Log,
	)
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	if r.requests <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if !r.allow(ip) {
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(ip))
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)

	if blockedUntil, found := r.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false
		}
		delete(r.blocked, ip)
	}

	v, exists := r.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(r.per/time.Duration(r.requests)), r.requests)}
		r.visitors[ip] = v
	}
	v.lastSeen = now
	if !v.limiter.AllowN(now, 1) {
		r.blocked[ip] = now.Add(r.blockTime)
		return false
	}
	return true
}

// sweep drops expired blocks and visitors idle for a full refill period,
// whose buckets are indistinguishable from new ones.
func (r *RateLimiter) sweep(now time.Time) {
	if now.Sub(r.lastSweep) < r.per {
		return
	}
	r.lastSweep = now
	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) >= r.per {
			delete(r.visitors, ip)
		}
	}
	for ip, until := range r.blocked {
		if !now.Before(until) {
			delete(r.blocked, ip)
		}
	}
}
