package httputil

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/USQVE/bleprint/pkg/errors"
)

// ErrorBody is the payload of an error response.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// WriteError writes err as an error response. Errors without a code are
// reported as INTERNAL_ERROR with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	body := ErrorBody{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if body.Code == "" {
		body.Code = errors.ErrCodeInternal
		body.Message = http.StatusText(status)
	}
	WriteJSON(w, status, map[string]ErrorBody{"error": body})
}

// DecodeJSON reads a JSON body of at most maxBytes into v. Unknown fields
// are rejected.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return bodyError(err, maxBytes)
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body must contain a single JSON value")
	}
	return nil
}

// ReadText reads a raw body of at most maxBytes.
func ReadText(w http.ResponseWriter, r *http.Request, maxBytes int64) (string, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBytes))
	if err != nil {
		return "", bodyError(err, maxBytes)
	}
	return string(data), nil
}

func bodyError(err error, maxBytes int64) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.New(errors.ErrCodeInvalidInput, "request body too large (max %d bytes)", maxBytes)
	}
	if stderrors.Is(err, io.EOF) {
		return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
}
