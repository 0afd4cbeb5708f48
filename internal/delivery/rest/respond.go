package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func readJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, resp any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleErr maps service errors to HTTP statuses. Unknown errors are logged
// and reported without detail.
func (h *Handler) handleErr(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		writeError(w, http.StatusNotFound, "quiz not found")
	case errors.Is(err, service.ErrDictionaryNotFound):
		writeError(w, http.StatusNotFound, "dictionary not found")
	case errors.Is(err, service.ErrQuizAlreadyCompleted):
		writeError(w, http.StatusConflict, "quiz already completed")
	case errors.Is(err, service.ErrQuizNotCompleted):
		writeError(w, http.StatusConflict, "quiz not completed")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request error",
			zap.String("method", r.Method),
			zap.String("url", r.URL.String()),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
