package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/simpleblog/backend/internal/model"
	"github.com/simpleblog/backend/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	authUserKey  = "auth_user"
	requestIDKey = "request_id"

	RequestIDHeader = "X-Request-ID"
)

// AuthMiddleware is the gate in front of every admin route. The session token
// comes from the auth cookie, or from a Bearer header for API clients; a
// cookie that fails to verify does not hide a valid Bearer token.
// Any failure aborts with 401 before the handler runs.
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	cookieName := authService.CookieConfig().Name

	return func(c *gin.Context) {
		var candidates []string
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			candidates = append(candidates, token)
		}
		if token := bearerToken(c.GetHeader("Authorization")); token != "" {
			candidates = append(candidates, token)
		}

		for _, token := range candidates {
			user, err := authService.Authorize(token)
			if err != nil {
				continue
			}
			c.Set(authUserKey, user)
			c.Next()
			return
		}

		denyUnauthorized(c)
	}
}

func GetAuthUser(c *gin.Context) *model.AuthUser {
	if value, ok := c.Get(authUserKey); ok {
		if user, ok := value.(*model.AuthUser); ok {
			return user
		}
	}
	return nil
}

func bearerToken(header string) string {
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func denyUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.MessageResponse{Message: "Unauthorized"})
}

// RequestID reuses an inbound X-Request-ID or generates a UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger logs one entry per request, leveled by status class.
func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			"request_id":  GetRequestID(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			"client_ip":   c.ClientIP(),
		})

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("http request")
		case status >= http.StatusBadRequest:
			entry.Warn("http request")
		default:
			entry.Info("http request")
		}
	}
}

// Recovery turns a panic into a logged 500.
func Recovery(log logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithFields(logrus.Fields{
			"request_id": GetRequestID(c),
			"panic":      recovered,
		}).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.MessageResponse{Message: "internal server error"})
	})
}

// SecurityHeaders sets the browser hardening headers served with every page.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
