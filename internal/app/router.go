package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/joshu-sajeev/contactrelay/internal/config"
	"github.com/joshu-sajeev/contactrelay/internal/contact"
	"github.com/joshu-sajeev/contactrelay/middleware"
	"go.uber.org/zap"
)

var corsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	AllowedHeaders: []string{"*"},
	ExposedHeaders: []string{middleware.RequestIDHeader},
	MaxAge:         300,
}

// NewRouter mounts the relay endpoints under /api and wraps the engine with
// CORS so preflight requests never reach gin.
func NewRouter(cfg *config.Config, h contact.HandlerInterface, log *zap.Logger) http.Handler {
	if cfg.Development() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			log.Error("panic while handling request",
				zap.Any("panic", recovered),
				zap.String("request_id", middleware.GetRequestID(c)),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   config.MsgSendFailed,
			})
		}),
		middleware.ErrorHandler(),
	)

	api := r.Group("/api")
	api.GET("/health", h.Health)

	submit := []gin.HandlerFunc{}
	if cfg.RateLimit.Requests > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
		submit = append(submit, limiter.Limit())
	}
	submit = append(submit, h.Submit)
	api.POST("/contact", submit...)

	return cors.Handler(corsOptions)(r)
}
