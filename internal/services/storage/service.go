// Package storage caches rendered results in Redis and, when a bucket is
// configured, publishes rendered output to Supabase Storage.
package storage

import (
	"time"

	"github.com/chillcharlie357/watermark/internal/config"
	"github.com/redis/go-redis/v9"
	storage_go "github.com/supabase-community/storage-go"
)

type Service struct {
	sbClient      *storage_go.Client
	redisClient   *redis.Client
	bucket        string
	cacheDuration time.Duration
}

func NewService(cfg *config.Config) (*Service, error) {
	var sbClient *storage_go.Client
	if cfg.Supabase.URL != "" {
		sbClient = storage_go.NewClient(cfg.Supabase.URL+"/storage/v1", cfg.Supabase.Key, nil)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &Service{
		sbClient:      sbClient,
		redisClient:   redisClient,
		bucket:        cfg.Supabase.Bucket,
		cacheDuration: cfg.Export.CacheDuration,
	}, nil
}

// UploadsEnabled reports whether rendered output can be published to the
// remote bucket.
func (s *Service) UploadsEnabled() bool {
	return s.sbClient != nil && s.bucket != ""
}
