package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"postsapi/storage"
	"postsapi/storage/query"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cfg := ConfigFromEnv()

	rootCmd := &cobra.Command{
		Use:   "postsapi",
		Short: "HTTP service storing blog posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar((*string)(&cfg.StorageMode), "storage", string(cfg.StorageMode), "Backing store: file, mongo or cached")
	rootCmd.PersistentFlags().StringVar(&cfg.DataFile, "data-file", cfg.DataFile, "JSON file used by the file backing store")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().StringVarP(&cfg.Port, "port", "p", cfg.Port, "Port to listen on")

	var q, sort, direction string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the saved posts as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), cfg, q, sort, direction)
		},
	}
	listCmd.Flags().StringVarP(&q, "query", "q", "", "Only posts whose title or content contain this text")
	listCmd.Flags().StringVar(&sort, "sort", "", "Sort by id, title or content")
	listCmd.Flags().StringVar(&direction, "direction", "asc", "Sort direction: asc or desc")

	rootCmd.AddCommand(serveCmd, listCmd)
	return rootCmd
}

func runServe(ctx context.Context, cfg Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, cfg)
}

func runList(ctx context.Context, cfg Config, q, sort, direction string) error {
	field, err := query.ParseSortField(sort)
	if err != nil {
		return err
	}
	dir, err := query.ParseDirection(direction)
	if err != nil {
		return err
	}

	persister, closePersister, err := CreatePersister(ctx, cfg)
	if err != nil {
		return err
	}
	defer closePersister()

	posts, err := persister.Load(ctx)
	if errors.Is(err, storage.NoSnapshotError) {
		fmt.Fprintln(os.Stderr, "No posts saved yet")
		return nil
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "    ")
	return enc.Encode(query.ListAll(posts, q, field, dir))
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env file: %s", err.Error())
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
