package router

import (
	"github.com/tejas-exe/droply/internal/handlers"
	"github.com/tejas-exe/droply/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRouter mounts all API routes behind the auth middleware.
func SetupRouter(router *gin.Engine, fileHandler *handlers.FileHandler, folderHandler *handlers.FolderHandler, imageKitHandler *handlers.ImageKitHandler) {

	//v1 api
	v1 := router.Group("/api/v1")

	protectedRoutes := v1.Group("/")
	protectedRoutes.Use(middleware.AuthMiddleware())

	FileRoutes(protectedRoutes, fileHandler)
	FolderRoutes(protectedRoutes, folderHandler)
	ImageKitRoutes(protectedRoutes, imageKitHandler)
}
