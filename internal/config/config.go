package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ImageKit holds the credentials for the upload sink. All three values are
// required; Load fails when any of them is missing so a misconfigured process
// never starts serving.
type ImageKit struct {
	PublicKey   string
	PrivateKey  string
	URLEndpoint string
}

// Upload holds the upload policy.
type Upload struct {
	// AllowedTypes is the content-type allowlist. Entries are exact MIME
	// types or prefix wildcards such as "image/*".
	AllowedTypes []string
}

// Database holds the Postgres connection settings.
type Database struct {
	DSN string
}

// Redis holds the cache connection settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Kafka holds the event stream settings.
type Kafka struct {
	Brokers []string
}

// Config is the top-level application configuration, read from the
// environment once at startup.
type Config struct {
	Port     string
	Database Database
	ImageKit ImageKit
	Upload   Upload
	Redis    Redis
	Kafka    Kafka
}

// Load reads configuration from environment variables. ImageKit credentials
// have no defaults and cause an error when absent.
func Load() (*Config, error) {
	redisDB, err := getenvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		Port: getenvStr("PORT", "8080"),
		Database: Database{
			DSN: getenvStr("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=droply port=5432 sslmode=disable"),
		},
		ImageKit: ImageKit{
			PublicKey:   os.Getenv("IMAGEKIT_PUBLIC_KEY"),
			PrivateKey:  os.Getenv("IMAGEKIT_PRIVATE_KEY"),
			URLEndpoint: os.Getenv("IMAGEKIT_URL_ENDPOINT"),
		},
		Upload: Upload{
			AllowedTypes: getenvCSV("UPLOAD_ALLOWED_TYPES", "application/pdf,image/*"),
		},
		Redis: Redis{
			Addr:     getenvStr("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Kafka: Kafka{
			Brokers: getenvCSV("KAFKA_BROKERS", "localhost:9092"),
		},
	}

	if cfg.ImageKit.PublicKey == "" || cfg.ImageKit.PrivateKey == "" || cfg.ImageKit.URLEndpoint == "" {
		return nil, fmt.Errorf("IMAGEKIT_PUBLIC_KEY, IMAGEKIT_PRIVATE_KEY and IMAGEKIT_URL_ENDPOINT are required")
	}

	return cfg, nil
}

func getenvStr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	if value, ok := os.LookupEnv(key); ok {
		return strconv.Atoi(value)
	}
	return fallback, nil
}

func getenvCSV(key, fallback string) []string {
	raw := getenvStr(key, fallback)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
