// internal/app/features/errors/logger.go
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/credithub/internal/app/system/auth"
	"go.uber.org/zap"
)

// ErrorLogger logs handler failures and writes the matching error response:
// an error page for browsers, a small JSON body for API callers.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps logger. A nil logger discards.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and responds 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Error(msg, requestFields(r, err)...)
	respond(w, r, http.StatusInternalServerError, userMsg, backURL)
}

// LogBadRequest logs err at warn level and responds 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.log.Warn(msg, requestFields(r, err)...)
	respond(w, r, http.StatusBadRequest, userMsg, backURL)
}

func requestFields(r *http.Request, err error) []zap.Field {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if u, ok := auth.CurrentUser(r); ok {
		fields = append(fields, zap.String("actor_id", u.ID))
	}
	return fields
}

func respond(w http.ResponseWriter, r *http.Request, status int, userMsg, backURL string) {
	if !auth.WantsHTML(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": userMsg})
		return
	}

	w.WriteHeader(status)
	switch status {
	case http.StatusBadRequest:
		RenderForbidden(w, r, userMsg, backURL)
	default:
		RenderServerError(w, r, userMsg)
	}
}
