package persistent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"postsapi/storage"
	"postsapi/storage/models"

	"github.com/google/uuid"
)

// FileStorage keeps the post collection as a JSON array in a single file.
type FileStorage struct {
	path string
}

func CreateFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load(_ context.Context) ([]models.Post, error) {
	log.Printf("Loading posts from: %s", s.path)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("file %s not found: %w", s.path, storage.NoSnapshotError)
		}
		return nil, fmt.Errorf("failed to read %s: %s %w", s.path, err.Error(), storage.PersistenceError)
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %s %w", s.path, err.Error(), storage.PersistenceError)
	}
	return posts, nil
}

// Save replaces the file with the given collection. The data is written to a
// temporary file in the same directory first and renamed over the target.
func (s *FileStorage) Save(_ context.Context, posts []models.Post) error {
	if posts == nil {
		posts = make([]models.Post, 0)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(posts); err != nil {
		return fmt.Errorf("failed to encode posts: %s %w", err.Error(), storage.PersistenceError)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %s %w", dir, err.Error(), storage.PersistenceError)
	}
	tmp := filepath.Join(dir, "."+filepath.Base(s.path)+"."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %s %w", tmp, err.Error(), storage.PersistenceError)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			log.Printf("Failed to remove temporary file %s: %s", tmp, rmErr.Error())
		}
		return fmt.Errorf("failed to replace %s: %s %w", s.path, err.Error(), storage.PersistenceError)
	}
	return nil
}
