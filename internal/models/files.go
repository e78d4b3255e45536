package models

import (
	"time"

	"github.com/google/uuid"
)

// TypeFolder is the record type stored for folders.
const TypeFolder = "folder"

// File represents a single record in the files table. A record is either an
// uploaded file or a folder, discriminated by IsFolder.
type File struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name         string     `gorm:"size:255;not null" json:"name"`
	Path         string     `gorm:"size:1024;not null" json:"path"`
	Size         int64      `gorm:"not null;default:0" json:"size"`
	Type         string     `gorm:"size:128;not null" json:"type"`
	FileURL      string     `gorm:"column:file_url" json:"fileUrl"`
	ThumbnailURL *string    `gorm:"column:thumbnail_url" json:"thumbnailUrl,omitempty"`
	UserID       string     `gorm:"size:255;not null;index" json:"userId"`
	ParentID     *uuid.UUID `gorm:"type:uuid;index" json:"parentId"`
	IsFolder     bool       `gorm:"not null;default:false" json:"isFolder"`
	IsStarred    bool       `gorm:"not null;default:false" json:"isStarred"`
	// IsTrash is reserved for a future trash workflow; no route mutates it yet.
	IsTrash   bool      `gorm:"not null;default:false" json:"isTrash"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
