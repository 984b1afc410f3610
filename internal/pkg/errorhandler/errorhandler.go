package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/petgroom/petgroom-api/internal/pkg/logger"
	"github.com/petgroom/petgroom-api/internal/pkg/response"
)

// HandleError logs err with the request id and sends a formatted error response.
// The client only ever sees code and message.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("error_code", code).
		Int("status_code", status)

	if err != nil {
		event.Err(err)
	}

	event.Msg(message)

	response.Error(w, status, code, message)
}

// Internal logs err and sends the generic retryable 500 response
func Internal(ctx context.Context, w http.ResponseWriter, op string, err error) {
	logger.FromContext(ctx).Error().
		Err(err).
		Str("operation", op).
		Msg("Request failed")

	response.InternalError(w)
}

// Validation logs field errors and sends a 422 response
func Validation(ctx context.Context, w http.ResponseWriter, fieldErrors map[string]string) {
	errJSON, _ := json.Marshal(fieldErrors)
	logger.FromContext(ctx).Warn().
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")

	response.ValidationError(w, fieldErrors)
}
