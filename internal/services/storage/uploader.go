package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrUploadsDisabled = errors.New("remote storage is not configured")

// Upload publishes a rendered image to the bucket and returns its public
// URL. Keys are namespaced and de-duplicated with a timestamp and a short
// uuid so repeated exports of the same file never collide.
func (s *Service) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if !s.UploadsEnabled() {
		return "", ErrUploadsDisabled
	}

	key := storageKey(filename)
	_, err := s.sbClient.UploadFile(s.bucket, key, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to upload result: %w", err)
	}

	publicURL := s.sbClient.GetPublicUrl(s.bucket, key)
	return publicURL.SignedURL, nil
}

// Delete removes a previously uploaded object.
func (s *Service) Delete(ctx context.Context, key string) error {
	if !s.UploadsEnabled() {
		return ErrUploadsDisabled
	}
	_, err := s.sbClient.RemoveFile(s.bucket, []string{key})
	return err
}

func storageKey(filename string) string {
	ext := filepath.Ext(filename)
	name := strings.TrimSuffix(filename, ext)
	return fmt.Sprintf("rendered/%s_%d_%s%s", name, time.Now().Unix(), uuid.New().String()[:8], ext)
}
