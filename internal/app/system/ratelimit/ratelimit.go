// internal/app/system/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter counts requests per key in fixed windows. Expired windows are
// swept lazily while Allow runs. It is safe for concurrent use.
type Limiter struct {
	mu        sync.Mutex
	windows   map[string]*window
	limit     int
	duration  time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type window struct {
	count     int
	expiresAt time.Time
}

// New creates a limiter allowing limit requests per key every duration.
func New(limit int, duration time.Duration) *Limiter {
	return &Limiter{
		windows:  make(map[string]*window),
		limit:    limit,
		duration: duration,
		now:      time.Now,
	}
}

// Allow records one request for key and reports whether it is within the
// limit.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	w, ok := l.windows[key]
	if !ok || now.After(w.expiresAt) {
		l.windows[key] = &window{count: 1, expiresAt: now.Add(l.duration)}
		return true
	}
	if w.count >= l.limit {
		return false
	}
	w.count++
	return true
}

// Remaining returns how many requests key has left in its current window.
func (l *Limiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || l.now().After(w.expiresAt) {
		return l.limit
	}
	return max(l.limit-w.count, 0)
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}

// sweep drops expired windows at most once per two window lengths.
// Callers hold l.mu.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < 2*l.duration {
		return
	}
	l.lastSweep = now
	for key, w := range l.windows {
		if now.After(w.expiresAt) {
			delete(l.windows, key)
		}
	}
}

// ClientIP extracts the client IP from an HTTP request. X-Forwarded-For and
// X-Real-IP win over RemoteAddr for proxied requests.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Messages shown on the sign-in form when a limit trips.
const (
	TooManyFromAddress = "Too many login attempts. Please wait a minute before trying again."
	TooManyForAccount  = "Too many login attempts for this account. Please wait a few minutes."
)

// LoginLimiter throttles sign-in attempts per client address and per
// employee ID, so neither one address nor one account can be hammered.
type LoginLimiter struct {
	byIP      *Limiter
	byAccount *Limiter
}

// NewLoginLimiter allows 10 attempts per address per minute and 5 per
// employee ID per 5 minutes.
func NewLoginLimiter() *LoginLimiter {
	return NewLoginLimiterWithConfig(10, time.Minute, 5, 5*time.Minute)
}

// NewLoginLimiterWithConfig creates a login limiter with custom limits.
func NewLoginLimiterWithConfig(ipLimit int, ipDuration time.Duration, accountLimit int, accountDuration time.Duration) *LoginLimiter {
	return &LoginLimiter{
		byIP:      New(ipLimit, ipDuration),
		byAccount: New(accountLimit, accountDuration),
	}
}

// Check records an attempt for r's address and employeeID. When the attempt
// is over a limit it returns false and the message to show.
func (ll *LoginLimiter) Check(r *http.Request, employeeID string) (bool, string) {
	if !ll.byIP.Allow(ClientIP(r)) {
		return false, TooManyFromAddress
	}
	if key := accountKey(employeeID); key != "" && !ll.byAccount.Allow(key) {
		return false, TooManyForAccount
	}
	return true, ""
}

// ResetAccount clears the per-account count after a successful sign-in.
func (ll *LoginLimiter) ResetAccount(employeeID string) {
	if key := accountKey(employeeID); key != "" {
		ll.byAccount.Reset(key)
	}
}

func accountKey(employeeID string) string {
	return strings.ToUpper(strings.TrimSpace(employeeID))
}
