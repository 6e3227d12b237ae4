package httpx

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/MikeMC777/storefront-catalog/internal/logx"
)

const userIDKey = "userID"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get("rid")
		logx.Info().
			Interface("rid", rid).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Msg("[http]")
	}
}

// Identity reads an optional bearer token. A valid HS256 token puts its
// subject in the context as the user id; a missing or bad token leaves the
// request anonymous. Handlers decide what anonymous means.
func Identity(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			c.Next()
			return
		}
		var claims jwt.RegisteredClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || claims.Subject == "" {
			logx.Debug().Err(err).Msg("ignoring bearer token")
			c.Next()
			return
		}
		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

// UserID returns the identity set by Identity, or "".
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// limiterIdle is how long a visitor's limiter survives without requests.
const limiterIdle = 10 * time.Minute

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// limiterSet hands out one token bucket per visitor key and forgets keys
// idle for longer than idle, sweeping at most once per idle period.
type limiterSet struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newLimiterSet(perMinute int, idle time.Duration, now func() time.Time) *limiterSet {
	perMinute = max(perMinute, 1)
	return &limiterSet{
		visitors:  map[string]*visitor{},
		limit:     rate.Every(time.Minute / time.Duration(perMinute)),
		burst:     perMinute,
		idle:      idle,
		lastSweep: now(),
		now:       now,
	}
}

func (s *limiterSet) allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= s.idle {
		for k, v := range s.visitors {
			if now.Sub(v.seen) >= s.idle {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}
	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.seen = now
	return v.lim.AllowN(now, 1)
}

// RateLimit allows perMinute requests per visitor (user id, or client IP
// for anonymous requests) with a burst of the same size.
func RateLimit(perMinute int) gin.HandlerFunc {
	return rateLimit(newLimiterSet(perMinute, limiterIdle, time.Now))
}

func rateLimit(set *limiterSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := UserID(c)
		if key == "" {
			key = c.ClientIP()
		}
		if !set.allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
