package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"postsapi/handlers"
	"postsapi/storage"
	"postsapi/storage/in_memory"
	"postsapi/storage/persistent"
	"postsapi/storage/persistent_cached"
	"postsapi/utils"
	"time"
)

type StorageMode string

const (
	File           StorageMode = "file"
	Mongo          StorageMode = "mongo"
	MongoWithCache StorageMode = "cached"
)

type Config struct {
	Port        string
	StorageMode StorageMode
	DataFile    string
	MongoUrl    string
	MongoDbName string
	RedisUrl    string
	RedisKey    string
}

func ConfigFromEnv() Config {
	return Config{
		Port:        utils.GetEnvVarWithDefault("SERVER_PORT", "8080"),
		StorageMode: StorageMode(utils.GetEnvVarWithDefault("STORAGE_MODE", string(File))),
		DataFile:    utils.GetEnvVarWithDefault("DATA_FILE", "blog_posts.json"),
		MongoUrl:    utils.GetEnvVarWithDefault("MONGO_URL", ""),
		MongoDbName: utils.GetEnvVarWithDefault("MONGO_DBNAME", ""),
		RedisUrl:    utils.GetEnvVarWithDefault("REDIS_URL", ""),
		RedisKey:    utils.GetEnvVarWithDefault("REDIS_KEY", "posts"),
	}
}

// CreatePersister opens the backing store selected by cfg.StorageMode.
// The returned function releases its connections.
func CreatePersister(ctx context.Context, cfg Config) (storage.Persister, func(), error) {
	noop := func() {}
	if cfg.StorageMode == File {
		return persistent.CreateFileStorage(cfg.DataFile), noop, nil
	}
	if cfg.StorageMode != Mongo && cfg.StorageMode != MongoWithCache {
		return nil, noop, fmt.Errorf("invalid STORAGE_MODE '%s'", cfg.StorageMode)
	}

	if cfg.MongoUrl == "" {
		return nil, noop, errors.New("'MONGO_URL' not specified")
	}
	if cfg.MongoDbName == "" {
		return nil, noop, errors.New("'MONGO_DBNAME' not specified")
	}
	mongoStorage, err := persistent.CreateMongoStorage(ctx, cfg.MongoUrl, cfg.MongoDbName)
	if err != nil {
		return nil, noop, err
	}
	closeMongo := func() {
		if err := mongoStorage.Close(context.Background()); err != nil {
			log.Printf("Failed to disconnect from mongo: %s", err.Error())
		}
	}
	if cfg.StorageMode == Mongo {
		return mongoStorage, closeMongo, nil
	}

	if cfg.RedisUrl == "" {
		closeMongo()
		return nil, noop, errors.New("'REDIS_URL' was not specified for 'cached' STORAGE_MODE")
	}
	cached, err := persistent_cached.CreatePersistentStorageCachedWithRedis(mongoStorage, cfg.RedisUrl, cfg.RedisKey)
	if err != nil {
		closeMongo()
		return nil, noop, err
	}
	return cached, func() {
		if err := cached.Close(); err != nil {
			log.Printf("Failed to close redis client: %s", err.Error())
		}
		closeMongo()
	}, nil
}

func CreateServer(cfg Config, s storage.Storage) *http.Server {
	return &http.Server{
		Handler:           handlers.NewRouter(s),
		Addr:              "0.0.0.0:" + cfg.Port,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func serve(ctx context.Context, cfg Config) error {
	persister, closePersister, err := CreatePersister(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePersister()

	srv := CreateServer(cfg, in_memory.CreateInMemoryStorage(ctx, persister))
	log.Printf("Start serving on %s", srv.Addr)
	return runServer(ctx, srv)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Failed to shut down server: %s", err.Error())
		}
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
