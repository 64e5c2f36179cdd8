package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"postsapi/storage"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

const (
	INTERNAL_ERROR_MESSAGE = "Internal server error"
	maxBodySize            = 1 << 20
)

type HTTPHandler struct {
	Storage storage.Storage
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		log.Printf("Failed to encode response: %s", err.Error())
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStorageError maps storage errors to status codes.
func respondStorageError(w http.ResponseWriter, err error, action string) {
	message := INTERNAL_ERROR_MESSAGE
	var e *storage.Error
	if errors.As(err, &e) {
		message = e.Message
	}
	switch {
	case errors.Is(err, storage.NotFoundError):
		respondError(w, http.StatusNotFound, message)
	case errors.Is(err, storage.ClientError):
		log.Printf("Client error while %s: %s", action, err.Error())
		respondError(w, http.StatusBadRequest, message)
	default:
		log.Printf("Internal error while %s: %s", action, err.Error())
		respondError(w, http.StatusInternalServerError, INTERNAL_ERROR_MESSAGE)
	}
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json" || (strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

// decodeBody reads a non-empty JSON object from the request body into dst.
// It writes the error response itself and reports whether decoding succeeded.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !isJSON(r) {
		respondError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		log.Printf("Failed to read request body: %s", err.Error())
		respondError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		respondError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Field '%s' must be a %s", typeErr.Field, typeErr.Type.String()))
			return false
		}
		respondError(w, http.StatusBadRequest, "Request body must be valid JSON")
		return false
	}
	return true
}

// postId returns the id from the route; ids that do not fit an int are reported as missing.
func postId(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
