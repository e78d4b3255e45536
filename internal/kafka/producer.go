package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/tejas-exe/droply/internal/events"

	"github.com/segmentio/kafka-go"
)

type Producer struct {
	fileWriter *kafka.Writer
}

// NewProducer creates a Kafka producer for the file activity topic.
func NewProducer(brokers []string) *Producer {
	fileWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        events.FileActivityTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &Producer{
		fileWriter: fileWriter,
	}
}

// PublishFileEvent publishes a file event to the file.activity topic.
func (p *Producer) PublishFileEvent(ctx context.Context, event *events.FileEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal file event: %v", err)
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.FileID),
		Value: value,
		Time:  event.Timestamp,
	}

	err = p.fileWriter.WriteMessages(ctx, message)
	if err != nil {
		log.Printf("Failed to publish file event: %v", err)
		return err
	}

	log.Printf("Published file event: %s for %s %s", event.EventType, event.RecordType, event.FileID)
	return nil
}

// Close closes the Kafka writer.
func (p *Producer) Close() error {
	if p.fileWriter != nil {
		return p.fileWriter.Close()
	}
	return nil
}
