package router

import (
	"github.com/tejas-exe/droply/internal/handlers"

	"github.com/gin-gonic/gin"
)

// FileRoutes defines routes for file records.
func FileRoutes(rg *gin.RouterGroup, fileHandler *handlers.FileHandler) {
	files := rg.Group("/files")
	{
		files.GET("", fileHandler.ListFiles)
		files.POST("/upload", fileHandler.UploadFile)
		files.PATCH("/:fileId/star", fileHandler.ToggleStar)
	}
}
