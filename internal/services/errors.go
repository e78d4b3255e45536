package services

import "errors"

var (
	// ErrInvalidName is returned when a folder name is blank after trimming.
	ErrInvalidName = errors.New("folder name must be a non-empty string")
	// ErrEmptyUpload is returned when an upload carries no payload.
	ErrEmptyUpload = errors.New("no file provided")
	// ErrUnsupportedType is returned when the payload's content type is not
	// on the configured allowlist.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrNotFound is returned when a record does not exist or is not owned by
	// the caller.
	ErrNotFound = errors.New("file not found")
	// ErrParentNotFound is returned when a parentId does not resolve to a
	// folder owned by the caller.
	ErrParentNotFound = errors.New("parent folder not found or not accessible")
	// ErrUploadFailed is returned when the upload sink rejects or fails the
	// delegated upload. No record is inserted in that case.
	ErrUploadFailed = errors.New("file upload failed")
)
