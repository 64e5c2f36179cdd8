package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"postsapi/metrics"
	"postsapi/storage/models"
)

var (
	InternalError         = errors.New("storage internal error")
	ClientError           = errors.New("storage client error")
	ValidationError       = fmt.Errorf("%w.validation", ClientError)
	NotFoundError         = fmt.Errorf("%w.not_found", ClientError)
	InvalidQueryParameter = fmt.Errorf("%w.invalid_query_parameter", ClientError)
	PersistenceError      = fmt.Errorf("%w.persistence", InternalError)
	NoSnapshotError       = fmt.Errorf("%w.no_snapshot", PersistenceError)
)

// Error is a client error with a message that can be returned to the caller as is.
type Error struct {
	Kind    error
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewValidationError(field, message string) error {
	return &Error{Kind: ValidationError, Field: field, Message: message}
}

func NewInvalidQueryParameter(field, message string) error {
	return &Error{Kind: InvalidQueryParameter, Field: field, Message: message}
}

type SortField string

const (
	SortNone    SortField = ""
	SortId      SortField = "id"
	SortTitle   SortField = "title"
	SortContent SortField = "content"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type ListQuery struct {
	Query     string
	Sort      SortField
	Direction Direction
}

type SearchQuery struct {
	Title   string
	Content string
}

type Storage interface {
	AddPost(ctx context.Context, title, content string) (models.Post, error)
	GetPost(ctx context.Context, id int) (models.Post, bool)
	DeletePost(ctx context.Context, id int) (models.Post, bool)
	UpdatePost(ctx context.Context, id int, patch models.PostPatch) (models.Post, error)
	ListPosts(ctx context.Context, q ListQuery) []models.Post
	SearchPosts(ctx context.Context, q SearchQuery) []models.Post
}

// Persister reads and writes the whole post collection as a single unit.
type Persister interface {
	// Load returns an error wrapping NoSnapshotError when nothing was saved yet.
	Load(ctx context.Context) ([]models.Post, error)
	Save(ctx context.Context, posts []models.Post) error
}

// LoadCollection loads the collection the store starts with. A backing store without
// a snapshot is seeded with the default posts; an unreadable one yields an empty collection.
func LoadCollection(ctx context.Context, p Persister) []models.Post {
	posts, err := p.Load(ctx)
	if err == nil {
		log.Printf("Loaded %d posts", len(posts))
		if posts == nil {
			posts = make([]models.Post, 0)
		}
		return posts
	}
	if errors.Is(err, NoSnapshotError) {
		log.Printf("No saved posts found, seeding default posts")
		posts = models.DefaultPosts()
		if err := p.Save(ctx, posts); err != nil {
			metrics.PersistenceFailuresTotal.WithLabelValues("save").Inc()
			log.Printf("Failed to save default posts: %s", err.Error())
		}
		return posts
	}
	metrics.PersistenceFailuresTotal.WithLabelValues("load").Inc()
	log.Printf("Failed to load posts, starting with an empty collection: %s", err.Error())
	return make([]models.Post, 0)
}
