package http

import (
	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/interfaces/http/middleware"
	"github.com/autocrm/autocrm/internal/interfaces/http/routes"
)

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	c := r.container

	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.CustomLogger(c.log.Named("http")))
	r.engine.Use(middleware.Recovery(c.log.Named("http")))
	r.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	r.engine.MaxMultipartMemory = 8 << 20

	api := r.engine.Group(apiPrefix)
	api.Use(middleware.APIVersion())

	routes.SetupSystemRoutes(r.engine, api, &routes.SystemRouteConfig{
		DiagnosticsHandler: c.hdlrs.diagnosticsHandler,
		AuthMiddleware:     c.authMiddleware,
	})
	routes.SetupAuthRoutes(api, &routes.AuthRouteConfig{
		AuthHandler:    c.hdlrs.authHandler,
		AuthMiddleware: c.authMiddleware,
		RateLimiter:    c.rateLimiter,
	})
	routes.SetupTicketRoutes(api, &routes.TicketRouteConfig{
		TicketHandler:        c.hdlrs.ticketHandler,
		DashboardHandler:     c.hdlrs.dashboardHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupUserRoutes(api, &routes.UserRouteConfig{
		UserHandler:          c.hdlrs.userHandler,
		ProfileHandler:       c.hdlrs.profileHandler,
		QueueHandler:         c.hdlrs.queueHandler,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Shutdown releases resources held by the container.
func (r *Router) Shutdown() {
	r.container.Shutdown()
}
