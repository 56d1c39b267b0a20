package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig tunes the per-client token bucket guarding the login form.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained refill rate per client.
	RequestsPerSecond float64
	// Burst is how many attempts a client may make back to back.
	Burst int
}

const (
	limiterSweepEvery = 5 * time.Minute
	limiterStaleAfter = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles each client address independently, so a host
// hammering the login form pays alone and a distributed credential guess
// pays per address. Over-limit requests get 429 with a Retry-After hint.
func RateLimiter(cfg RateLimitConfig) func(http.Handler) http.Handler {
	var visitors sync.Map // client IP -> *visitor

	go func() {
		for {
			time.Sleep(limiterSweepEvery)
			visitors.Range(func(key, value any) bool {
				if time.Since(value.(*visitor).lastSeen) > limiterStaleAfter {
					visitors.Delete(key)
				}
				return true
			})
		}
	}()

	bucketFor := func(ip string) *rate.Limiter {
		if v, ok := visitors.Load(ip); ok {
			vis := v.(*visitor)
			vis.lastSeen = time.Now()
			return vis.limiter
		}
		vis := &visitor{
			limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
			lastSeen: time.Now(),
		}
		visitors.Store(ip, vis)
		return vis.limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reservation := bucketFor(clientIP(r)).Reserve()
			if !reservation.OK() {
				writeTooManyRequests(w, 0)
				return
			}
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				writeTooManyRequests(w, int(delay.Seconds())+1)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP identifies the client by RemoteAddr alone. X-Forwarded-For is
// attacker-controlled and would let one host spread its attempts across
// made-up addresses.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeTooManyRequests(w http.ResponseWriter, retryAfterSecs int) {
	if retryAfterSecs > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSecs))
	}
	http.Error(w, "too many attempts, slow down", http.StatusTooManyRequests)
}
