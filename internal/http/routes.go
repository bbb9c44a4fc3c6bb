package http

import (
	"wordle_duel/internal/config"
	"wordle_duel/internal/http/handlers"
	"wordle_duel/internal/http/middleware"
	"wordle_duel/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the wired services the routes serve.
type Deps struct {
	Handler *handlers.Handler
	Health  *handlers.HealthHandler
	Hub     *ws.Hub
}

func RegisterRoutes(r *gin.Engine, d Deps, cfg *config.Config) {
	h := d.Handler

	// Health checks (no rate limiting)
	r.GET("/health", d.Health.Health)
	r.GET("/healthz", d.Health.Liveness)
	r.GET("/readyz", d.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Push channel for turn events
	r.GET("/ws", ws.HandleWS(d.Hub, cfg.AllowedOrigin))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow))

	// Auth
	authRL := middleware.RedisRateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow)
	v1.POST("/auth/register", authRL, h.Register)
	v1.POST("/auth/login", authRL, h.Login)

	// Dictionary lookup is public
	v1.GET("/words/check", h.CheckWord)

	authed := v1.Group("")
	authed.Use(middleware.JWT())

	authed.GET("/me", h.Me)
	authed.GET("/me/activity", h.MyActivity)

	// Game rate limiter (per player, not per IP) guards writes only; polling is not counted
	gameRL := middleware.GameRateLimit(cfg.GameRateLimit, cfg.GameRateWindow)

	g := authed.Group("/game")
	g.POST("/single", gameRL, h.SinglePlayer)
	g.POST("/single/complete", gameRL, h.CompleteSinglePlayer)
	g.GET("/single/hint", h.Hint)

	g.POST("/multiplayer", gameRL, h.Multiplayer)
	g.GET("/multiplayer/words", h.WordChoices)
	g.POST("/multiplayer/word", gameRL, h.ChooseWord)
	g.POST("/multiplayer/complete", gameRL, h.CompleteTurn)
	g.GET("/multiplayer/status", h.TurnStatus)

	g.POST("/attempts", gameRL, h.SubmitAttempt)
	g.GET("/attempts", h.ListAttempts)
}
