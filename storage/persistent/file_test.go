package persistent

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"postsapi/storage"
	"postsapi/storage/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorageMissingFile(t *testing.T) {
	s := CreateFileStorage(filepath.Join(t.TempDir(), "posts.json"))

	_, err := s.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.NoSnapshotError))
}

func TestFileStorageSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := CreateFileStorage(filepath.Join(t.TempDir(), "nested", "posts.json"))
	posts := []models.Post{
		{Id: 1, Title: "Café <b>", Content: "naïve & co"},
		{Id: 7, Title: "Second", Content: "More"},
	}

	require.NoError(t, s.Save(ctx, posts))
	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, posts, loaded)

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "[\n    {\n        \"id\": 1,\n        \"title\""))
	assert.Less(t, strings.Index(text, `"title"`), strings.Index(text, `"content"`))
	assert.Contains(t, text, "Café <b>")
}

func TestFileStorageSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := CreateFileStorage(filepath.Join(dir, "posts.json"))

	require.NoError(t, s.Save(ctx, models.DefaultPosts()))
	require.NoError(t, s.Save(ctx, nil))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStorageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := CreateFileStorage(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.PersistenceError))
	assert.False(t, errors.Is(err, storage.NoSnapshotError))
}
