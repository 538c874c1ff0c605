package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes mounts endpoints that need no authentication.
func RegisterPublicRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
