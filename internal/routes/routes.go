package routes

import (
	"creatordna_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every handler group under /api/v1.
func SetupRoutes(router *gin.Engine, h *handlers.AppHandlers) {
	RegisterPublicRoutes(router)

	api := router.Group("/api/v1")

	h.Auth.RegisterRoutes(api)
	h.Creator.RegisterRoutes(api)
	h.Project.RegisterRoutes(api)
	h.Collab.RegisterRoutes(api)
	h.Notification.RegisterRoutes(api)
}
