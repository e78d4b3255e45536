package router

import (
	"github.com/tejas-exe/droply/internal/handlers"

	"github.com/gin-gonic/gin"
)

// ImageKitRoutes defines routes for the upload sink passthrough.
func ImageKitRoutes(rg *gin.RouterGroup, imageKitHandler *handlers.ImageKitHandler) {
	rg.GET("/imagekit-auth", imageKitHandler.AuthParams)
}
