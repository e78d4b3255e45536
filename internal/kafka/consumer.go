package kafka

import (
	"context"
	"encoding/json"
	"log"

	"github.com/tejas-exe/droply/internal/events"
	"github.com/tejas-exe/droply/internal/redis"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	fileReader   *kafka.Reader
	redisService *redis.Service
}

// NewConsumer creates a Kafka consumer for the file activity topic.
func NewConsumer(brokers []string, groupID string, redisService *redis.Service) *Consumer {
	fileReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    events.FileActivityTopic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &Consumer{
		fileReader:   fileReader,
		redisService: redisService,
	}
}

// StartFileEventConsumer consumes file events until the context is cancelled,
// keeping the Redis file-metadata cache consistent with the stream.
func (c *Consumer) StartFileEventConsumer(ctx context.Context) {
	log.Printf("Starting file event consumer on topic %s", events.FileActivityTopic)

	for {
		message, err := c.fileReader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("File event consumer stopped")
				return
			}
			log.Printf("Error reading file event: %v", err)
			continue
		}

		var event events.FileEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Failed to unmarshal file event: %v", err)
			continue
		}

		if err := c.handleFileEvent(ctx, &event); err != nil {
			log.Printf("Error handling event %s: %v", event.EventType, err)
		}
	}
}

// handleFileEvent invalidates cached metadata for the affected record. The
// next read repopulates the cache from the database, so a consumer restart
// can never leave stale entries behind.
func (c *Consumer) handleFileEvent(ctx context.Context, event *events.FileEvent) error {
	fileID, err := uuid.Parse(event.FileID)
	if err != nil {
		log.Printf("Invalid file ID in event: %s", event.FileID)
		return err
	}

	switch event.EventType {
	case events.FileUploaded, events.FolderCreated, events.FileStarred, events.FileUnstarred:
		return c.redisService.InvalidateFileMetadata(ctx, fileID)
	default:
		log.Printf("Ignoring unknown event type: %s", event.EventType)
		return nil
	}
}

// Close closes the Kafka reader.
func (c *Consumer) Close() error {
	if c.fileReader != nil {
		return c.fileReader.Close()
	}
	return nil
}
