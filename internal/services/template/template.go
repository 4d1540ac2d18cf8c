// Package template persists watermark settings as a flat JSON file so a
// session can be saved and restored. The file layout round-trips every
// settings field; an absent custom position stays absent.
package template

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/chillcharlie357/watermark/internal/models"
)

type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (st *Store) Path() string {
	return st.path
}

func (st *Store) Save(s models.WatermarkSettings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	if err := os.WriteFile(st.path, data, 0o644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}

// Load reads the template over the defaults, so fields missing from an older
// template file keep their default values.
func (st *Store) Load() (models.WatermarkSettings, error) {
	s := models.DefaultSettings()

	data, err := os.ReadFile(st.path)
	if err != nil {
		return s, fmt.Errorf("read template: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return models.DefaultSettings(), fmt.Errorf("parse template: %w", err)
	}
	return s, nil
}

// Delete removes the template file. Deleting a template that does not exist
// is not an error.
func (st *Store) Delete() error {
	if err := os.Remove(st.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
