package handlers

import (
	"net/http"
)

type CreatePostRequestData struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *HTTPHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var data CreatePostRequestData
	if !decodeBody(w, r, &data) {
		return
	}
	post, err := h.Storage.AddPost(r.Context(), data.Title, data.Content)
	if err != nil {
		respondStorageError(w, err, "creating post")
		return
	}
	respondJSON(w, http.StatusCreated, post)
}
