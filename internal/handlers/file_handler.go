package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/tejas-exe/droply/internal/events"
	"github.com/tejas-exe/droply/internal/kafka"
	"github.com/tejas-exe/droply/internal/middleware"
	"github.com/tejas-exe/droply/internal/models"
	"github.com/tejas-exe/droply/internal/redis"
	"github.com/tejas-exe/droply/internal/services"
	"github.com/tejas-exe/droply/pkg/responses"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FileHandler struct {
	service       *services.FileService
	kafkaProducer *kafka.Producer
	redisService  *redis.Service
}

func NewFileHandler(service *services.FileService, kafkaProducer *kafka.Producer, redisService *redis.Service) *FileHandler {
	return &FileHandler{
		service:       service,
		kafkaProducer: kafkaProducer,
		redisService:  redisService,
	}
}

// ListFiles returns the caller's records under a parent folder, or the root
// scope when no parentId is given.
func (h *FileHandler) ListFiles(c *gin.Context) {
	currentUserID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "Unauthorized: User not authenticated.")
		return
	}

	if queryUserID := c.Query("userId"); queryUserID != currentUserID {
		responses.Error(c, http.StatusForbidden, "User ID mismatch: Provided userId does not match the authenticated user.")
		return
	}

	parentID, ok := parseOptionalID(c, c.Query("parentId"))
	if !ok {
		return
	}

	files, err := h.service.List(c.Request.Context(), currentUserID, parentID)
	if err != nil {
		log.Printf("Failed to list files: %v", err)
		responses.Error(c, http.StatusInternalServerError, "Internal Server Error: Unable to process the request.")
		return
	}

	c.JSON(http.StatusOK, files)
}

// UploadFile accepts a multipart payload, delegates storage to ImageKit and
// persists the resulting record.
func (h *FileHandler) UploadFile(c *gin.Context) {
	currentUserID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "Unauthorized: User not authenticated.")
		return
	}

	if formUserID := c.PostForm("userId"); formUserID != currentUserID {
		responses.Error(c, http.StatusForbidden, "User ID mismatch: Provided userId does not match the authenticated user.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Bad Request: No file provided in form data.")
		return
	}

	parentID, ok := parseOptionalID(c, c.PostForm("parentId"))
	if !ok {
		return
	}

	opened, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		responses.Error(c, http.StatusInternalServerError, "Internal Server Error: File upload failed.")
		return
	}
	defer opened.Close()

	data, err := io.ReadAll(opened)
	if err != nil {
		log.Printf("Failed to read uploaded file: %v", err)
		responses.Error(c, http.StatusInternalServerError, "Internal Server Error: File upload failed.")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	file, err := h.service.Upload(c.Request.Context(), currentUserID, parentID, fileHeader.Filename, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyUpload):
			responses.Error(c, http.StatusBadRequest, "Bad Request: No file provided in form data.")
		case errors.Is(err, services.ErrUnsupportedType):
			responses.Error(c, http.StatusBadRequest, "Unsupported file type.")
		case errors.Is(err, services.ErrParentNotFound):
			responses.Error(c, http.StatusNotFound, "Parent folder not found or not accessible by the user.")
		default:
			log.Printf("File upload failed: %v", err)
			responses.Error(c, http.StatusInternalServerError, "Internal Server Error: File upload failed.")
		}
		return
	}

	h.publishEvent(c.Request.Context(), events.NewFileEvent(events.FileUploaded, events.RecordTypeFile, file.ID, file.UserID, file.ParentID))
	h.cacheFile(c.Request.Context(), file)

	c.JSON(http.StatusOK, file)
}

// ToggleStar flips is_starred on one record owned by the caller.
func (h *FileHandler) ToggleStar(c *gin.Context) {
	currentUserID, ok := middleware.CurrentUserID(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "Unauthorized: User not authenticated.")
		return
	}

	fileIDStr := c.Param("fileId")
	fileID, err := uuid.Parse(fileIDStr)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid file ID format.")
		return
	}

	file, err := h.service.ToggleStar(c.Request.Context(), fileID, currentUserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			responses.Error(c, http.StatusNotFound, "File not found")
			return
		}
		log.Printf("Failed to toggle star on %s: %v", fileID, err)
		responses.Error(c, http.StatusInternalServerError, "Internal Server Error: Unable to process the request.")
		return
	}

	eventType := events.FileUnstarred
	if file.IsStarred {
		eventType = events.FileStarred
	}
	h.publishEvent(c.Request.Context(), events.NewFileEvent(eventType, recordType(file), file.ID, file.UserID, file.ParentID))
	h.cacheFile(c.Request.Context(), file)

	c.JSON(http.StatusOK, file)
}

// publishEvent emits a file activity event. Producer failures are logged and
// never fail the request.
func (h *FileHandler) publishEvent(ctx context.Context, event *events.FileEvent) {
	if h.kafkaProducer == nil {
		return
	}
	if err := h.kafkaProducer.PublishFileEvent(ctx, event); err != nil {
		log.Printf("Failed to publish %s event: %v", event.EventType, err)
	}
}

// cacheFile refreshes the record's cache entry, best effort.
func (h *FileHandler) cacheFile(ctx context.Context, file *models.File) {
	if h.redisService == nil {
		return
	}
	if err := h.redisService.SetFileMetadata(ctx, file); err != nil {
		log.Printf("Failed to cache file metadata: %v", err)
	}
}

func recordType(file *models.File) string {
	if file.IsFolder {
		return events.RecordTypeFolder
	}
	return events.RecordTypeFile
}

// parseOptionalID parses an optional uuid parameter. On malformed input it
// writes a 400 response and reports false.
func parseOptionalID(c *gin.Context, raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Invalid parent folder ID format.")
		return nil, false
	}
	return &id, true
}
