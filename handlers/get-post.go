package handlers

import (
	"net/http"
)

func (h *HTTPHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postId(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	post, found := h.Storage.GetPost(r.Context(), id)
	if !found {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}
