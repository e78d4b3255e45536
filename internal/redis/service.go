package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/tejas-exe/droply/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	client *redis.Client
}

// NewService creates a new Redis service. Returns nil when the connection
// cannot be established; callers treat a nil service as cache-disabled.
func NewService(addr, password string, db int) *Service {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		return nil
	}

	log.Println("Successfully connected to Redis")
	return &Service{client: client}
}

// SetFileMetadata caches a file record.
func (s *Service) SetFileMetadata(ctx context.Context, file *models.File) error {
	key := fmt.Sprintf("file:%s", file.ID.String())

	data, err := json.Marshal(file)
	if err != nil {
		log.Printf("Failed to marshal file metadata: %v", err)
		return err
	}

	err = s.client.Set(ctx, key, data, 24*time.Hour).Err()
	if err != nil {
		log.Printf("Failed to cache file metadata for %s: %v", file.ID, err)
		return err
	}

	return nil
}

// GetFileMetadata retrieves a cached file record. A cache miss returns
// (nil, nil).
func (s *Service) GetFileMetadata(ctx context.Context, fileID uuid.UUID) (*models.File, error) {
	key := fmt.Sprintf("file:%s", fileID.String())

	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		log.Printf("Failed to get file metadata for %s: %v", fileID, err)
		return nil, err
	}

	var file models.File
	if err := json.Unmarshal([]byte(data), &file); err != nil {
		log.Printf("Failed to unmarshal file metadata: %v", err)
		return nil, err
	}

	return &file, nil
}

// InvalidateFileMetadata removes a file record from the cache.
func (s *Service) InvalidateFileMetadata(ctx context.Context, fileID uuid.UUID) error {
	key := fmt.Sprintf("file:%s", fileID.String())
	return s.client.Del(ctx, key).Err()
}

// Close closes the Redis connection.
func (s *Service) Close() error {
	return s.client.Close()
}
