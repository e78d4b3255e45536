package router

import (
	"github.com/tejas-exe/droply/internal/handlers"

	"github.com/gin-gonic/gin"
)

// FolderRoutes defines routes for folder management.
func FolderRoutes(rg *gin.RouterGroup, folderHandler *handlers.FolderHandler) {
	folders := rg.Group("/folders")
	{
		folders.POST("", folderHandler.CreateFolder)
	}
}
