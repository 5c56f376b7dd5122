package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/serializer"
)

// ErrorResponse is the error envelope every API endpoint returns.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// HTTPStatusFromCode maps a structured error code to an HTTP status.
func HTTPStatusFromCode(code tverrors.ErrorCode) int {
	switch code {
	case tverrors.ErrCodeInvalidRequest, tverrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case tverrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case tverrors.ErrCodeNotFound:
		return http.StatusNotFound
	case tverrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case tverrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case tverrors.ErrCodeSchemaUnavailable:
		return http.StatusUnprocessableEntity
	case tverrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case tverrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code tverrors.ErrorCode) bool {
	switch code {
	case tverrors.ErrCodeTimeout, tverrors.ErrCodeUnavailable,
		tverrors.ErrCodeRateLimitExceeded, tverrors.ErrCodeInternal,
		tverrors.ErrCodeIOFailure:
		return true
	default:
		return false
	}
}

// mergeDetails combines two detail maps, b winning on key collisions.
// Returns nil when both are empty so the envelope omits the field.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

// WriteError writes the error envelope with an explicit status and code.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code tverrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps a structured error onto the envelope; anything
// unstructured becomes an internal error carrying fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, details map[string]any) {

	if se, ok := tverrors.AsStructured(err); ok {
		merged := mergeDetails(se.Details, details)
		if cause := se.Unwrap(); cause != nil {
			if merged == nil {
				merged = make(map[string]any, 1)
			}
			merged["error"] = cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), merged)
		return
	}

	merged := mergeDetails(details, map[string]any{"error": err.Error()})
	WriteError(w, r, http.StatusInternalServerError, tverrors.ErrCodeInternal,
		fallbackMessage, retryableFromCode(tverrors.ErrCodeInternal), merged)
}
