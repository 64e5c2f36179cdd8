package handlers

import (
	"net/http"
	"postsapi/storage/models"
)

func (h *HTTPHandler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postId(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	// A missing post is reported before anything about the body.
	if _, found := h.Storage.GetPost(r.Context(), id); !found {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}

	var patch models.PostPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	post, err := h.Storage.UpdatePost(r.Context(), id, patch)
	if err != nil {
		respondStorageError(w, err, "updating post")
		return
	}
	respondJSON(w, http.StatusOK, post)
}
