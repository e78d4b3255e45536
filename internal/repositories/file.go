package repositories

import (
	"context"
	"errors"

	"github.com/tejas-exe/droply/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrParentNotFound is returned when a supplied parentId does not resolve to a
// folder owned by the same user.
var ErrParentNotFound = errors.New("parent folder not found")

// FileRepository defines data access for file records. Every query is scoped
// by user_id so callers can only ever touch rows they own.
type FileRepository interface {
	ListByParent(ctx context.Context, userID string, parentID *uuid.UUID) ([]models.File, error)
	FindOwned(ctx context.Context, id uuid.UUID, userID string) (*models.File, error)
	// CreateWithParentCheck validates the parent folder (when set) and inserts
	// the record in a single transaction, so the folder cannot disappear
	// between the check and the insert.
	CreateWithParentCheck(ctx context.Context, file *models.File) error
	// ToggleStar flips is_starred on the record matching both id and user_id
	// and returns the updated row.
	ToggleStar(ctx context.Context, id uuid.UUID, userID string) (*models.File, error)
}

type fileRepository struct {
	db *gorm.DB
}

// NewFileRepository creates a gorm-backed FileRepository.
func NewFileRepository(db *gorm.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) ListByParent(ctx context.Context, userID string, parentID *uuid.UUID) ([]models.File, error) {
	var files []models.File
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if parentID != nil {
		q = q.Where("parent_id = ?", *parentID)
	} else {
		q = q.Where("parent_id IS NULL")
	}
	err := q.Find(&files).Error
	return files, err
}

func (r *fileRepository) FindOwned(ctx context.Context, id uuid.UUID, userID string) (*models.File, error) {
	var file models.File
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *fileRepository) CreateWithParentCheck(ctx context.Context, file *models.File) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if file.ParentID != nil {
			var parent models.File
			err := tx.Where("id = ? AND user_id = ? AND is_folder = ?", *file.ParentID, file.UserID, true).
				First(&parent).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrParentNotFound
			}
			if err != nil {
				return err
			}
		}
		return tx.Create(file).Error
	})
}

func (r *fileRepository) ToggleStar(ctx context.Context, id uuid.UUID, userID string) (*models.File, error) {
	var file models.File
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.File{}).
			Where("id = ? AND user_id = ?", id, userID).
			Update("is_starred", gorm.Expr("NOT is_starred"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&file).Error
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}
