package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/dirtar"
)

// UnhandledRejection is the message sent for failures that are not a *dirtar.Error.
const UnhandledRejection = "UNHANDLED_REJECTION"

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Del("Content-Disposition")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// HandleError maps err to a JSON error response. Both *dirtar.Error kinds are
// reported with their formatted detail; anything else gets a fixed message and
// the detail only goes to the log.
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var serr *dirtar.Error
	if errors.As(err, &serr) {
		switch serr.Kind {
		case dirtar.KindDirectoryIO, dirtar.KindResponseConstruction:
			logger.Error("request error", "kind", serr.Kind.String(), "error", err)
			WriteError(w, http.StatusInternalServerError, serr.Error())
			return
		}
	}

	logger.Error("unhandled rejection", "error", err)
	WriteError(w, http.StatusInternalServerError, UnhandledRejection)
}
