package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	apperrors "leadform/pkg/errors"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// MediaType returns the bare media type of the request, lowercased.
func MediaType(r *http.Request) string {
	header := r.Header.Get("Content-Type")
	if header == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(header, ";")[0]))
	}
	return mediaType
}

func IsJSON(r *http.Request) bool {
	return MediaType(r) == ContentTypeJSON
}

// ReadFields reads a flat JSON object or a url-encoded form into string
// values. JSON scalars (numbers, booleans) are rendered in their literal form.
func ReadFields(r *http.Request) (map[string]string, error) {
	switch MediaType(r) {
	case ContentTypeJSON:
		return readJSONFields(r)
	case ContentTypeForm:
		return readFormFields(r)
	default:
		return nil, apperrors.InvalidInput("Content-Type must be application/json or application/x-www-form-urlencoded")
	}
}

func readJSONFields(r *http.Request) (map[string]string, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		if tooLarge(err) {
			return nil, bodyTooLarge(err)
		}
		return nil, apperrors.InvalidInput("Invalid request body")
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			fields[key] = ""
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case bool:
			fields[key] = fmt.Sprintf("%t", v)
		default:
			return nil, apperrors.InvalidInput(fmt.Sprintf("field %q must be a scalar value", key))
		}
	}
	return fields, nil
}

func readFormFields(r *http.Request) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		if tooLarge(err) {
			return nil, bodyTooLarge(err)
		}
		return nil, apperrors.InvalidInput("Invalid form body")
	}

	fields := make(map[string]string, len(r.PostForm))
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}
	return fields, nil
}

// tooLarge reports whether err came from a body capped by http.MaxBytesReader.
func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func bodyTooLarge(err error) *apperrors.AppError {
	appErr := apperrors.PayloadTooLarge("Request body too large")
	appErr.Err = err
	return appErr
}
