package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"notekeeper/backend/internal/auth"
	"notekeeper/backend/internal/middleware"
	"notekeeper/backend/internal/reporting"
)

// RouterConfig carries everything the router wires besides the handler.
type RouterConfig struct {
	Verifier       auth.Verifier
	Limiter        *middleware.RateLimiter
	Recorder       middleware.RequestRecorder
	MetricsHandler http.Handler
	CORSOrigin     string
	RequestTimeout time.Duration
	Log            *zap.Logger
	Reporter       reporting.Reporter
}

// NewRouter builds the gin engine. /health and /metrics are public; every
// /api route requires a verified bearer token.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	rep := cfg.Reporter
	if rep == nil {
		rep = reporting.Nop{}
	}

	r := gin.New()
	r.Use(middleware.Recovery(cfg.Log, rep))
	r.Use(middleware.RequestLogger(cfg.Log))
	if cfg.Recorder != nil {
		r.Use(middleware.Metrics(cfg.Recorder))
	}
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.SecurityHeaders())

	r.GET("/health", h.Health)
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api")
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	api.Use(middleware.AuthMiddleware(cfg.Verifier, h.users, cfg.Log, rep))
	if cfg.Limiter != nil {
		api.Use(cfg.Limiter.Middleware())
	}
	{
		notes := api.Group("/notes")
		notes.GET("", h.ListNotes)
		notes.POST("", h.CreateNote)
		notes.PUT("/:id", h.UpdateNote)
		notes.DELETE("/:id", h.DeleteNote)

		reminders := api.Group("/reminders")
		reminders.GET("", h.ListReminders)
		reminders.POST("", h.CreateReminder)
		reminders.PUT("/:id", h.UpdateReminder)
		reminders.DELETE("/:id", h.DeleteReminder)
		reminders.PATCH("/:id/complete", h.CompleteReminder)

		users := api.Group("/users")
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
		users.PUT("/settings", h.UpdateSettings)
		users.DELETE("/account", h.DeleteAccount)

		api.GET("/search", h.Search)
		api.POST("/uploads", h.Upload)
	}

	return r
}
