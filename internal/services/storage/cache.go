package storage

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"

	"github.com/chillcharlie357/watermark/internal/models"
	"github.com/redis/go-redis/v9"
)

// GetFromCache returns the cached encoded render, or nil on a miss.
func (s *Service) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *Service) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// RenderCacheKey identifies one (source, settings) render. The settings
// snapshot is hashed whole, so any parameter change produces a new key.
func (s *Service) RenderCacheKey(sourceName string, sourceSize int64, settings models.WatermarkSettings) string {
	hash := md5.New()
	fmt.Fprintf(hash, "%s_%d_", sourceName, sourceSize)
	if params, err := json.Marshal(settings); err == nil {
		hash.Write(params)
	}
	return fmt.Sprintf("render_cache:%x", hash.Sum(nil))
}
