package models

type Post struct {
	Id      int    `json:"id" bson:"id"`
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
}

// PostPatch holds the fields of an update. A nil field is left unchanged.
type PostPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// DefaultPosts is the collection a fresh backing store is seeded with.
func DefaultPosts() []Post {
	return []Post{
		{Id: 1, Title: "First post", Content: "This is the first post."},
		{Id: 2, Title: "Second post", Content: "This is the second post."},
	}
}
