package persistent

import (
	"context"
	"errors"
	"fmt"
	"postsapi/storage"
	"postsapi/storage/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const snapshotId = "posts"

// snapshot is the single document holding the whole collection.
type snapshot struct {
	Id        string        `bson:"_id"`
	Posts     []models.Post `bson:"posts"`
	UpdatedAt string        `bson:"updatedAt,omitempty"`
}

type MongoStorage struct {
	client *mongo.Client
	posts  *mongo.Collection
}

func CreateMongoStorage(ctx context.Context, dbUrl, dbName string) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dbUrl))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %s %w", err.Error(), storage.PersistenceError)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %s %w", err.Error(), storage.PersistenceError)
	}
	return &MongoStorage{
		client: client,
		posts:  client.Database(dbName).Collection("posts"),
	}, nil
}

func (s *MongoStorage) Load(ctx context.Context) ([]models.Post, error) {
	var result snapshot
	err := s.posts.FindOne(ctx, bson.M{"_id": snapshotId}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("no posts document: %w", storage.NoSnapshotError)
		}
		return nil, fmt.Errorf("failed to find posts document: %s %w", err.Error(), storage.PersistenceError)
	}
	return result.Posts, nil
}

func (s *MongoStorage) Save(ctx context.Context, posts []models.Post) error {
	if posts == nil {
		posts = make([]models.Post, 0)
	}
	doc := snapshot{
		Id:        snapshotId,
		Posts:     posts,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	_, err := s.posts.ReplaceOne(ctx, bson.M{"_id": snapshotId}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to replace posts document: %s %w", err.Error(), storage.PersistenceError)
	}
	return nil
}

// Drop removes the posts document.
func (s *MongoStorage) Drop(ctx context.Context) error {
	_, err := s.posts.DeleteOne(ctx, bson.M{"_id": snapshotId})
	return err
}

func (s *MongoStorage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
