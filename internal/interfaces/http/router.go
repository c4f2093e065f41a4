// Package http serves the JSON API under /api.
package http

import (
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

// Router represents the HTTP router configuration
type Router struct {
	container *Container
	engine    *gin.Engine
}

// NewRouter builds a router over a wired container.
func NewRouter(container *Container) *Router {
	return &Router{
		container: container,
		engine:    container.engine,
	}
}
