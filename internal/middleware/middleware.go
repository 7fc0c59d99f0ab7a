package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/logger"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "RequestID"
)

// RequestID tags every request with an id, reusing the caller's header
// when present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger logs one line per request, at a level chosen by status class.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()
		requestID := c.GetString(requestIDKey)
		latency := time.Since(start)

		switch {
		case status >= 500:
			logger.Errorf("%s %s %d %v request_id=%s errors=%s", c.Request.Method, path, status, latency, requestID, c.Errors.String())
		case status >= 400:
			logger.Warningf("%s %s %d %v request_id=%s", c.Request.Method, path, status, latency, requestID)
		default:
			logger.Infof("%s %s %d %v request_id=%s", c.Request.Method, path, status, latency, requestID)
		}
	}
}

// CORS allows browser clients from the configured origins.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// Stack returns the application middleware in order. CORS answers preflight
// requests without calling the next handler, so it runs after the request id
// and access log are in place.
func Stack(allowedOrigins []string) []gin.HandlerFunc {
	return []gin.HandlerFunc{RequestID(), RequestLogger(), CORS(allowedOrigins)}
}
