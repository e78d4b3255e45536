package events

import (
	"time"

	"github.com/google/uuid"
)

// FileEvent represents a single file or folder activity on the stream.
type FileEvent struct {
	EventType  string    `json:"eventType"`
	RecordType string    `json:"recordType"`
	FileID     string    `json:"fileId"`
	OwnerID    string    `json:"ownerId"`
	ParentID   string    `json:"parentId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewFileEvent creates a file activity event.
func NewFileEvent(eventType, recordType string, fileID uuid.UUID, ownerID string, parentID *uuid.UUID) *FileEvent {
	event := &FileEvent{
		EventType:  eventType,
		RecordType: recordType,
		FileID:     fileID.String(),
		OwnerID:    ownerID,
		Timestamp:  time.Now(),
	}
	if parentID != nil {
		event.ParentID = parentID.String()
	}
	return event
}
