package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/tejas-exe/droply/internal/models"
	"github.com/tejas-exe/droply/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadResult is what the upload sink returns for a stored payload.
type UploadResult struct {
	URL          string
	FilePath     string
	ThumbnailURL string
}

// Uploader stores a binary payload under the given name and folder and
// returns where it ended up. Implemented by the ImageKit client; tests
// substitute a fake.
type Uploader interface {
	Upload(ctx context.Context, data []byte, fileName, folder string) (*UploadResult, error)
}

// MetadataCache is the read-through cache for file records. Implemented by
// the Redis service; a nil cache disables caching.
type MetadataCache interface {
	GetFileMetadata(ctx context.Context, fileID uuid.UUID) (*models.File, error)
	SetFileMetadata(ctx context.Context, file *models.File) error
}

// FileService enforces the ownership and hierarchy rules for file records.
type FileService struct {
	repo         repositories.FileRepository
	uploader     Uploader
	cache        MetadataCache
	allowedTypes []string
}

// NewFileService wires the service with its repository, upload sink, an
// optional metadata cache and the configured content-type allowlist.
func NewFileService(repo repositories.FileRepository, uploader Uploader, cache MetadataCache, allowedTypes []string) *FileService {
	return &FileService{
		repo:         repo,
		uploader:     uploader,
		cache:        cache,
		allowedTypes: allowedTypes,
	}
}

// List returns the caller's records under the given parent folder, or the
// root scope when parentID is nil.
func (s *FileService) List(ctx context.Context, userID string, parentID *uuid.UUID) ([]models.File, error) {
	return s.repo.ListByParent(ctx, userID, parentID)
}

// CreateFolder inserts a folder record owned by userID. The name must be
// non-blank and parentID, when set, must resolve to a folder owned by the
// same user.
func (s *FileService) CreateFolder(ctx context.Context, userID, name string, parentID *uuid.UUID) (*models.File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if parentID != nil {
		if err := s.validateParentFolder(ctx, *parentID, userID); err != nil {
			return nil, err
		}
	}

	folder := &models.File{
		ID:        uuid.New(),
		Name:      name,
		Path:      fmt.Sprintf("/folders/%s/%s", userID, uuid.New()),
		Size:      0,
		Type:      models.TypeFolder,
		FileURL:   "",
		UserID:    userID,
		ParentID:  parentID,
		IsFolder:  true,
		IsStarred: false,
		IsTrash:   false,
	}

	if err := s.repo.CreateWithParentCheck(ctx, folder); err != nil {
		if errors.Is(err, repositories.ErrParentNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return folder, nil
}

// Upload validates the payload, delegates storage to the upload sink and
// inserts the resulting record. Sink failures are not retried and leave no
// record behind.
func (s *FileService) Upload(ctx context.Context, userID string, parentID *uuid.UUID, name, contentType string, data []byte) (*models.File, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	if parentID != nil {
		if err := s.validateParentFolder(ctx, *parentID, userID); err != nil {
			return nil, err
		}
	}
	if !s.TypeAllowed(contentType) {
		return nil, ErrUnsupportedType
	}

	folder := fmt.Sprintf("/droply/%s", userID)
	if parentID != nil {
		folder = fmt.Sprintf("/droply/%s/folders/%s", userID, *parentID)
	}
	uploaded, err := s.uploader.Upload(ctx, data, uniqueFilename(name), folder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	file := &models.File{
		ID:        uuid.New(),
		Name:      name,
		Path:      uploaded.FilePath,
		Size:      int64(len(data)),
		Type:      contentType,
		FileURL:   uploaded.URL,
		UserID:    userID,
		ParentID:  parentID,
		IsFolder:  false,
		IsStarred: false,
		IsTrash:   false,
	}
	if uploaded.ThumbnailURL != "" {
		thumb := uploaded.ThumbnailURL
		file.ThumbnailURL = &thumb
	}

	if err := s.repo.CreateWithParentCheck(ctx, file); err != nil {
		if errors.Is(err, repositories.ErrParentNotFound) {
			return nil, ErrParentNotFound
		}
		return nil, err
	}
	return file, nil
}

// ToggleStar flips is_starred on the record owned by userID.
func (s *FileService) ToggleStar(ctx context.Context, id uuid.UUID, userID string) (*models.File, error) {
	file, err := s.repo.ToggleStar(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

// validateParentFolder checks that parentID resolves to a folder owned by
// userID, consulting the metadata cache before the store and repopulating it
// on a miss. A hit from another user or a non-folder record never passes.
func (s *FileService) validateParentFolder(ctx context.Context, parentID uuid.UUID, userID string) error {
	parent, err := s.lookupFile(ctx, parentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParentNotFound
		}
		return err
	}
	if !parent.IsFolder {
		return ErrParentNotFound
	}
	return nil
}

// lookupFile reads a record through the cache, falling back to the
// repository and refreshing the cache entry on a miss.
func (s *FileService) lookupFile(ctx context.Context, id uuid.UUID, userID string) (*models.File, error) {
	if s.cache != nil {
		cached, err := s.cache.GetFileMetadata(ctx, id)
		if err != nil {
			log.Printf("Cache error when getting file metadata: %v", err)
		} else if cached != nil && cached.UserID == userID {
			return cached, nil
		}
	}

	file, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetFileMetadata(ctx, file); err != nil {
			log.Printf("Failed to cache file metadata: %v", err)
		}
	}
	return file, nil
}

// TypeAllowed reports whether a content type passes the configured
// allowlist. Entries are exact types or "prefix/*" wildcards.
func (s *FileService) TypeAllowed(contentType string) bool {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	for _, allowed := range s.allowedTypes {
		allowed = strings.ToLower(allowed)
		if strings.HasSuffix(allowed, "/*") {
			if strings.HasPrefix(mediaType, strings.TrimSuffix(allowed, "*")) {
				return true
			}
			continue
		}
		if mediaType == allowed {
			return true
		}
	}
	return false
}

// uniqueFilename keeps the original extension but replaces the basename with
// a fresh UUID, so sink paths never collide on user-chosen names.
func uniqueFilename(original string) string {
	ext := strings.TrimPrefix(filepath.Ext(original), ".")
	if ext == "" {
		return uuid.New().String()
	}
	return fmt.Sprintf("%s.%s", uuid.New(), ext)
}
