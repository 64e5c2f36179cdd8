package handlers

import (
	"net/http"
	"postsapi/storage/models"
)

type DeletePostResponse struct {
	Message string      `json:"message"`
	Deleted models.Post `json:"deleted"`
}

func (h *HTTPHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postId(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	post, found := h.Storage.DeletePost(r.Context(), id)
	if !found {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	respondJSON(w, http.StatusOK, DeletePostResponse{
		Message: "Post deleted successfully",
		Deleted: post,
	})
}
