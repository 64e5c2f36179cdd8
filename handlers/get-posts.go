package handlers

import (
	"net/http"
	"postsapi/storage"
	"postsapi/storage/query"
	"strings"
)

func (h *HTTPHandler) HandleGetPosts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	direction := storage.Asc
	if params.Has("direction") {
		var err error
		direction, err = query.ParseDirection(params.Get("direction"))
		if err != nil {
			respondStorageError(w, err, "listing posts")
			return
		}
	}
	sort, err := query.ParseSortField(params.Get("sort"))
	if err != nil {
		respondStorageError(w, err, "listing posts")
		return
	}

	posts := h.Storage.ListPosts(r.Context(), storage.ListQuery{
		Query:     strings.TrimSpace(params.Get("q")),
		Sort:      sort,
		Direction: direction,
	})
	respondJSON(w, http.StatusOK, posts)
}
