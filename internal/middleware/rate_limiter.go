package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Acedi-a/app-ferreteria-pos-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
)

// ventana is a per-IP sliding window counter.
type ventana struct {
	count int
	hasta time.Time
}

type limiter struct {
	mu      sync.Mutex
	ips     map[string]*ventana
	limit   int
	window  time.Duration
	mensaje string
}

func newLimiter(limit int, window time.Duration, mensaje string) *limiter {
	l := &limiter{
		ips:     make(map[string]*ventana),
		limit:   limit,
		window:  window,
		mensaje: mensaje,
	}
	go l.purge()
	return l
}

func (l *limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	v, ok := l.ips[ip]
	if !ok || now.After(v.hasta) {
		v = &ventana{hasta: now.Add(l.window)}
		l.ips[ip] = v
	}
	v.count++
	return v.count <= l.limit, v.hasta
}

// purge drops expired windows so IPs that never return don't accumulate.
func (l *limiter) purge() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		l.mu.Lock()
		for ip, v := range l.ips {
			if now.After(v.hasta) {
				delete(l.ips, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *limiter) handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, hasta := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", hasta.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.mensaje))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP API limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return newLimiter(limit, window, "Demasiadas solicitudes. Intente nuevamente en un momento.").handler()
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return newLimiter(20, time.Minute, "Demasiados intentos de login. Intente en 1 minuto.").handler()
}
