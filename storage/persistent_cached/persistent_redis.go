package persistent_cached

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"postsapi/storage"
	"postsapi/storage/models"
	"time"

	"github.com/go-redis/redis/v8"
)

func saveToCache(ctx context.Context, client *redis.Client, key string, posts []models.Post) {
	j, err := json.Marshal(posts)
	if err != nil {
		log.Printf("Failed to dump posts for redis: %s", err.Error())
		return
	}
	err = client.Set(ctx, key, j, 0).Err()
	if err != nil {
		log.Printf("Failed to save posts to redis: %s", err.Error())
	}
}

func getFromCache(ctx context.Context, client *redis.Client, key string) ([]models.Post, error) {
	val, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	if err = json.Unmarshal(val, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func removeFromCache(ctx context.Context, client *redis.Client, key string) {
	err := client.Del(ctx, key).Err()
	if err != nil {
		log.Printf("Failed to remove posts from redis: %s", err.Error())
	}
}

func CreatePersistentStorageCachedWithRedis(persistentStorage storage.Persister, redisUrl, key string) (*PersistentStorageWithCache, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr: redisUrl,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %s %w", err.Error(), storage.PersistenceError)
	}
	return &PersistentStorageWithCache{
		client:            redisClient,
		key:               key,
		persistentStorage: persistentStorage,
	}, nil
}

// PersistentStorageWithCache mirrors the collection saved in persistentStorage under a single redis key.
type PersistentStorageWithCache struct {
	client            *redis.Client
	key               string
	persistentStorage storage.Persister
}

func (s *PersistentStorageWithCache) Load(ctx context.Context) ([]models.Post, error) {
	posts, err := getFromCache(ctx, s.client, s.key)
	if err == nil {
		return posts, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Printf("Failed to get posts from redis: %s", err.Error())
	}

	posts, err = s.persistentStorage.Load(ctx)
	if err == nil {
		saveToCache(ctx, s.client, s.key, posts)
	}
	return posts, err
}

func (s *PersistentStorageWithCache) Save(ctx context.Context, posts []models.Post) error {
	err := s.persistentStorage.Save(ctx, posts)
	if err != nil {
		// The primary copy is stale now, make the next Load read it instead of the cache.
		removeFromCache(ctx, s.client, s.key)
		return err
	}
	saveToCache(ctx, s.client, s.key, posts)
	return nil
}

func (s *PersistentStorageWithCache) Close() error {
	return s.client.Close()
}
