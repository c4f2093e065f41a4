package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/autocrm/autocrm/internal/domain/permission"
	"github.com/autocrm/autocrm/internal/interfaces/http/handlers"
	"github.com/autocrm/autocrm/internal/interfaces/http/middleware"
)

// UserRouteConfig holds dependencies for user, profile and queue routes.
type UserRouteConfig struct {
	UserHandler          *handlers.UserHandler
	ProfileHandler       *handlers.ProfileHandler
	QueueHandler         *handlers.QueueHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupUserRoutes configures user, profile and queue routes.
func SetupUserRoutes(api gin.IRouter, cfg *UserRouteConfig) {
	require := cfg.PermissionMiddleware.RequirePermission

	authed := api.Group("")
	authed.Use(cfg.AuthMiddleware.RequireAuth())

	profile := authed.Group("/profile")
	{
		profile.PUT("", cfg.ProfileHandler.UpdateProfile)
		profile.POST("/picture", cfg.ProfileHandler.UploadPicture)
	}

	users := authed.Group("/users")
	{
		users.GET("",
			require(permission.ObjectUser, permission.ActionRead),
			cfg.UserHandler.ListUsers)

		users.GET("/:id/queues",
			require(permission.ObjectUserQueue, permission.ActionRead),
			cfg.QueueHandler.ListUserQueues)
		users.POST("/:id/queues/:queue_id",
			require(permission.ObjectUserQueue, permission.ActionManage),
			cfg.QueueHandler.AssignUser)
		users.DELETE("/:id/queues/:queue_id",
			require(permission.ObjectUserQueue, permission.ActionManage),
			cfg.QueueHandler.UnassignUser)
		users.PATCH("/:id/role",
			require(permission.ObjectUser, permission.ActionUpdate),
			cfg.UserHandler.UpdateRole)

		users.GET("/:id", cfg.UserHandler.GetUser)
	}

	queues := authed.Group("/queues")
	{
		queues.GET("",
			require(permission.ObjectQueue, permission.ActionRead),
			cfg.QueueHandler.ListQueues)
		queues.POST("",
			require(permission.ObjectQueue, permission.ActionManage),
			cfg.QueueHandler.CreateQueue)
	}
}
