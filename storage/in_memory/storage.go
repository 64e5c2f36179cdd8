package in_memory

import (
	"context"
	"log"
	"postsapi/metrics"
	"postsapi/storage"
	"postsapi/storage/models"
	"postsapi/storage/query"
	"strings"
	"sync"
)

var _ storage.Storage = (*InMemoryStorage)(nil)

// InMemoryStorage keeps the posts in insertion order and hands every change to
// the persister. The in-memory collection stays authoritative when a save fails.
type InMemoryStorage struct {
	mut       sync.RWMutex
	posts     []models.Post
	maxId     int
	persister storage.Persister
}

func CreateInMemoryStorage(ctx context.Context, persister storage.Persister) *InMemoryStorage {
	s := &InMemoryStorage{
		posts:     storage.LoadCollection(ctx, persister),
		persister: persister,
	}
	for _, p := range s.posts {
		if p.Id > s.maxId {
			s.maxId = p.Id
		}
	}
	return s
}

// nextId must be called with the write lock held. Ids of deleted posts are not
// handed out again while the process runs, even when the highest one was deleted.
func (s *InMemoryStorage) nextId() int {
	s.maxId++
	return s.maxId
}

// save must be called with the write lock held.
func (s *InMemoryStorage) save(ctx context.Context, op string) {
	metrics.PostMutationsTotal.WithLabelValues(op).Inc()
	if err := s.persister.Save(ctx, s.posts); err != nil {
		metrics.PersistenceFailuresTotal.WithLabelValues("save").Inc()
		log.Printf("Failed to save posts after %s: %s", op, err.Error())
	}
}

func (s *InMemoryStorage) indexOf(id int) int {
	for i, p := range s.posts {
		if p.Id == id {
			return i
		}
	}
	return -1
}

func (s *InMemoryStorage) AddPost(ctx context.Context, title, content string) (models.Post, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return models.Post{}, storage.NewValidationError("title", "Missing required field: title")
	}
	if content == "" {
		return models.Post{}, storage.NewValidationError("content", "Missing required field: content")
	}

	s.mut.Lock()
	defer s.mut.Unlock()

	p := models.Post{Id: s.nextId(), Title: title, Content: content}
	s.posts = append(s.posts, p)
	s.save(ctx, "create")
	return p, nil
}

func (s *InMemoryStorage) GetPost(_ context.Context, id int) (models.Post, bool) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, false
	}
	return s.posts[i], true
}

func (s *InMemoryStorage) DeletePost(ctx context.Context, id int) (models.Post, bool) {
	s.mut.Lock()
	defer s.mut.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, false
	}
	p := s.posts[i]
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	s.save(ctx, "delete")
	return p, true
}

func (s *InMemoryStorage) UpdatePost(ctx context.Context, id int, patch models.PostPatch) (models.Post, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Post{}, &storage.Error{
			Kind:    storage.NotFoundError,
			Message: "Post not found",
		}
	}

	p := s.posts[i]
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return models.Post{}, storage.NewValidationError("title", "Title cannot be empty")
		}
		p.Title = title
	}
	if patch.Content != nil {
		content := strings.TrimSpace(*patch.Content)
		if content == "" {
			return models.Post{}, storage.NewValidationError("content", "Content cannot be empty")
		}
		p.Content = content
	}

	s.posts[i] = p
	s.save(ctx, "update")
	return p, nil
}

// Snapshot returns a copy of the collection in its current order.
func (s *InMemoryStorage) Snapshot(_ context.Context) []models.Post {
	s.mut.RLock()
	defer s.mut.RUnlock()
	return append(make([]models.Post, 0, len(s.posts)), s.posts...)
}

func (s *InMemoryStorage) ListPosts(ctx context.Context, q storage.ListQuery) []models.Post {
	return query.ListAll(s.Snapshot(ctx), q.Query, q.Sort, q.Direction)
}

func (s *InMemoryStorage) SearchPosts(ctx context.Context, q storage.SearchQuery) []models.Post {
	return query.Search(s.Snapshot(ctx), q.Title, q.Content)
}
