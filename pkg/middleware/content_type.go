package middleware

import (
	"net/http"

	apperrors "leadform/pkg/errors"
	httputil "leadform/pkg/http"
	"leadform/pkg/logger"
)

// ContentTypeValidation only lets JSON and url-encoded form bodies through on
// methods that carry one.
func ContentTypeValidation(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if requiresContentType(r.Method) {
				contentType := httputil.MediaType(r)

				if contentType != httputil.ContentTypeJSON && contentType != httputil.ContentTypeForm {
					rejectInvalidContentType(w, log, r, contentType)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func requiresContentType(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

func rejectInvalidContentType(w http.ResponseWriter, log *logger.Logger, r *http.Request, contentType string) {
	log.Warn("Invalid Content-Type header",
		"request_id", GetRequestID(r.Context()),
		"content_type", contentType,
		"path", r.URL.Path,
		"method", r.Method,
	)

	err := apperrors.New(
		apperrors.CodeInvalidInput,
		"Content-Type must be application/json or application/x-www-form-urlencoded",
		http.StatusUnsupportedMediaType,
	)
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response", "middleware", "ContentTypeValidation", "operation", "WriteError", "error", writeErr)
	}
}
