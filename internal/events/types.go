package events

// File Event Types
const (
	FileUploaded  = "FILE_UPLOADED"
	FolderCreated = "FOLDER_CREATED"
	FileStarred   = "FILE_STARRED"
	FileUnstarred = "FILE_UNSTARRED"
)

// Kafka Topics
const (
	FileActivityTopic = "file.activity"
)

// Record Types
const (
	RecordTypeFile   = "file"
	RecordTypeFolder = "folder"
)
