package handlers

import (
	"net/http"
	"postsapi/api"
	"postsapi/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the HTTP routes to the post storage.
func NewRouter(s storage.Storage) http.Handler {
	handler := &HTTPHandler{Storage: s}
	r := mux.NewRouter()
	r.Use(countRequests)

	r.HandleFunc("/maintenance/ping", handler.HealthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/api/openapi.yaml", handleOpenAPI).Methods("GET")
	r.HandleFunc("/api/posts", handler.HandleCreatePost).Methods("POST")
	r.HandleFunc("/api/posts", handler.HandleGetPosts).Methods("GET")
	r.HandleFunc("/api/posts/search", handler.HandleSearchPosts).Methods("GET")
	r.HandleFunc("/api/posts/{postId:[0-9]+}", handler.HandleGetPost).Methods("GET")
	r.HandleFunc("/api/posts/{postId:[0-9]+}", handler.HandleUpdatePost).Methods("PUT")
	r.HandleFunc("/api/posts/{postId:[0-9]+}", handler.HandleDeletePost).Methods("DELETE")

	return chi.Chain(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
			MaxAge:         600,
		}),
	).Handler(r)
}

func handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.Write(api.Spec)
}
