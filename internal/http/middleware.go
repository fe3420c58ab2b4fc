package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hopepulse/hopepulse-api/internal/domain"
	"github.com/hopepulse/hopepulse-api/internal/log"
	"github.com/hopepulse/hopepulse-api/internal/metrics"
	"github.com/hopepulse/hopepulse-api/internal/repo"
	"github.com/hopepulse/hopepulse-api/internal/security"
)

const (
	claimsKey    = "claims"
	emailKey     = "email"
	requestIDKey = "X-Request-ID"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDKey)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDKey, id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.InFlight.Inc()
		start := time.Now()

		c.Next()

		metrics.InFlight.Dec()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// AuthJWT rejects the request unless a Bearer token signed with secret is
// present and unexpired. Missing header and bad token get the same body.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		parts := strings.Fields(h)
		if len(parts) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		claims, err := security.ParseAccess(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
			return
		}
		c.Set(claimsKey, claims)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin runs after AuthJWT. The stored role must be exactly
// "Admin"; a missing record is non-privileged like any other role.
func RequireAdmin(users UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(emailKey)
		u, err := users.FindUserByEmail(c.Request.Context(), email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
			return
		}
		if u == nil || u.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		c.Next()
	}
}

// RateLimit throttles a public endpoint per client IP using a fixed
// one-minute window in Redis. Without Redis it is a pass-through, and a
// Redis error fails open.
func RateLimit(rds *repo.Redis, perMin int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rds == nil || perMin <= 0 {
			c.Next()
			return
		}
		key := "rl:" + c.FullPath() + ":" + c.ClientIP()
		ok, err := rds.Allow(c.Request.Context(), key, perMin, time.Minute)
		if err != nil {
			log.Errorf("rate limit check: %v", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
