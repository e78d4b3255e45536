package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/tejas-exe/droply/internal/events"
	"github.com/tejas-exe/droply/internal/kafka"
	"github.com/tejas-exe/droply/internal/middleware"
	"github.com/tejas-exe/droply/internal/redis"
	"github.com/tejas-exe/droply/internal/services"
	"github.com/tejas-exe/droply/pkg/responses"

	"github.com/gin-gonic/gin"
)

type FolderHandler struct {
	service       *services.FileService
	kafkaProducer *kafka.Producer
	redisService  *redis.Service
}

func NewFolderHandler(service *services.FileService, kafkaProducer *kafka.Producer, redisService *redis.Service) *FolderHandler {
	return &FolderHandler{
		service:       service,
		kafkaProducer: kafkaProducer,
		redisService:  redisService,
	}
}

// CreateFolder creates a new folder record for the authenticated user. The
// validated, constructed record is what gets persisted, never the raw body.
func (h *FolderHandler) CreateFolder(c *gin.Context) {
	currentUserID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "Unauthorized: User not authenticated.")
		return
	}

	var req struct {
		Name       string `json:"name"`
		UserAuthID string `json:"userAuthId"`
		ParentID   string `json:"parentId"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid request format.")
		return
	}

	if req.UserAuthID != currentUserID {
		responses.Error(c, http.StatusForbidden, "User ID mismatch: Provided userAuthId does not match the authenticated user.")
		return
	}

	parentID, ok := parseOptionalID(c, req.ParentID)
	if !ok {
		return
	}

	folder, err := h.service.CreateFolder(c.Request.Context(), currentUserID, req.Name, parentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidName):
			responses.Error(c, http.StatusBadRequest, "Invalid name: Folder name must be a non-empty string.")
		case errors.Is(err, services.ErrParentNotFound):
			responses.Error(c, http.StatusNotFound, "Parent folder not found or not accessible.")
		default:
			log.Printf("Failed to create folder: %v", err)
			responses.Error(c, http.StatusInternalServerError, "Internal Server Error: Unable to process the request.")
		}
		return
	}

	if h.kafkaProducer != nil {
		fileEvent := events.NewFileEvent(events.FolderCreated, events.RecordTypeFolder, folder.ID, folder.UserID, folder.ParentID)
		if err := h.kafkaProducer.PublishFileEvent(c.Request.Context(), fileEvent); err != nil {
			log.Printf("Failed to publish folder created event: %v", err)
		}
	}

	if h.redisService != nil {
		if err := h.redisService.SetFileMetadata(c.Request.Context(), folder); err != nil {
			log.Printf("Failed to cache folder metadata: %v", err)
		}
	}

	c.JSON(http.StatusOK, folder)
}
