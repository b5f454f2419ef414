package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pandeptwidyaop/agents-rest/internal/config"
	"github.com/pandeptwidyaop/agents-rest/internal/events"
	"github.com/pandeptwidyaop/agents-rest/internal/handlers"
	"github.com/pandeptwidyaop/agents-rest/internal/metrics"
	"github.com/pandeptwidyaop/agents-rest/internal/middleware"
	"github.com/pandeptwidyaop/agents-rest/internal/services"
)

// Services are the collaborators the routes are wired to.
type Services struct {
	Auth     *services.AuthService
	Agents   handlers.AgentService
	Targets  handlers.TargetService
	Missions handlers.MissionService
	Hub      *events.Hub
}

// New builds the engine with every route mounted under the configured path
// prefix. The returned stop func releases the login rate limiter and must be
// called once the engine is no longer serving.
func New(cfg *config.Config, svc Services) (*gin.Engine, func()) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())

	prefix := r.Group(cfg.Server.PathPrefix)

	authHandler := handlers.NewAuthHandler(svc.Auth)
	agentsHandler := handlers.NewAgentsHandler(svc.Agents)
	targetsHandler := handlers.NewTargetsHandler(svc.Targets)
	missionsHandler := handlers.NewMissionsHandler(svc.Missions)
	feedHandler := handlers.NewFeedHandler(svc.Hub)
	versionHandler := handlers.NewVersionHandler()

	loginLimiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRequests, cfg.RateLimit.GetWindow())

	// Public endpoints
	prefix.GET("/version", versionHandler.Get)
	prefix.GET("/metrics", gin.WrapH(metrics.Handler()))
	prefix.POST("/login",
		loginLimiter.Middleware(),
		middleware.BodySizeLimit(4<<10),
		authHandler.Login,
	)

	protected := prefix.Group("")
	if svc.Auth.Enabled() {
		protected.Use(middleware.AuthRequired(svc.Auth))
	}

	// The live feed is long-lived and must not inherit the request timeout.
	protected.GET("/ws", feedHandler.HandleWebSocket)

	api := protected.Group("")
	api.Use(middleware.Timeout(cfg.Server.GetRequestTimeout()))
	api.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	{
		api.GET("/agents", agentsHandler.List)
		api.POST("/agents", agentsHandler.Create)
		api.GET("/agents/:id", agentsHandler.Get)
		api.PUT("/agents/:id/pin", agentsHandler.Pin)
		api.PUT("/agents/:id/move", agentsHandler.Move)

		api.GET("/targets", targetsHandler.List)
		api.POST("/targets", targetsHandler.Create)
		api.GET("/targets/:id", targetsHandler.Get)
		api.PUT("/targets/:id/pin", targetsHandler.Pin)
		api.PUT("/targets/:id/move", targetsHandler.Move)

		api.GET("/missions", missionsHandler.List)
		api.GET("/missions/:id", missionsHandler.Get)
		api.POST("/missions/propose", missionsHandler.Propose)
		api.PUT("/missions/:id/assign", missionsHandler.Assign)
		api.POST("/missions/update", missionsHandler.Update)
	}

	return r, loginLimiter.Stop
}
