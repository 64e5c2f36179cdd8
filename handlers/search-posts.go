package handlers

import (
	"net/http"
	"postsapi/storage"
	"strings"
)

func (h *HTTPHandler) HandleSearchPosts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	posts := h.Storage.SearchPosts(r.Context(), storage.SearchQuery{
		Title:   strings.TrimSpace(params.Get("title")),
		Content: strings.TrimSpace(params.Get("content")),
	})
	respondJSON(w, http.StatusOK, posts)
}
