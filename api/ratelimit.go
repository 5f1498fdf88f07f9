package api

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/linesmerrill/fir-document-api/config"
)

var errRateLimited = errors.New("rate limit exceeded")

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	limiters map[string]*clientLimiter
	mu       sync.Mutex
	requests int
	window   time.Duration
	trusted  []*net.IPNet
}

// NewRateLimiter allows each client requests per window, in bursts of up
// to requests
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		requests: requests,
		window:   window,
	}
}

// TrustProxies sets the proxies whose X-Forwarded-For header is believed.
// Entries are IPs or CIDR ranges. It must be called before serving.
func (rl *RateLimiter) TrustProxies(proxies []string) error {
	trusted := make([]*net.IPNet, 0, len(proxies))
	for _, p := range proxies {
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return fmt.Errorf("invalid trusted proxy %q", p)
			}
			bits := 8 * net.IPv6len
			if ip.To4() != nil {
				ip, bits = ip.To4(), 8*net.IPv4len
			}
			trusted = append(trusted, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		trusted = append(trusted, n)
	}
	rl.trusted = trusted
	return nil
}

// GetLimiter returns the limiter of a client, creating it on first use
func (rl *RateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cl, exists := rl.limiters[ip]
	if !exists {
		perSecond := float64(rl.requests) / rl.window.Seconds()
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), rl.requests)}
		rl.limiters[ip] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.GetLimiter(rl.clientIP(r)).Allow() {
				w.Header().Set("Retry-After", "1")
				config.ErrorStatus("rate limit exceeded, please try again later", http.StatusTooManyRequests, w, errRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Evict forgets clients not seen since before and reports how many were
// dropped
func (rl *RateLimiter) Evict(before time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	n := 0
	for ip, cl := range rl.limiters {
		if cl.lastSeen.Before(before) {
			delete(rl.limiters, ip)
			n++
		}
	}
	return n
}

// clientIP is the connection peer, unless the peer is a trusted proxy. Then
// X-Forwarded-For is walked from the right and the first hop that is not a
// trusted proxy is the client.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if !rl.isTrusted(peer) {
		return peer
	}
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if !rl.isTrusted(hop) {
			return hop
		}
		peer = hop
	}
	return peer
}

func (rl *RateLimiter) isTrusted(addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range rl.trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
