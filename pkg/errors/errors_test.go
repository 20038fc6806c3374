package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorText(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeInvalidFormat, "unknown format %q", "yaml"), `INVALID_FORMAT: unknown format "yaml"`},
		{"wrapped", Wrap(ErrCodeStorage, cause, "save %s", "g1"), "STORAGE_ERROR: save g1: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("open store: %w", Wrap(ErrCodeStorage, cause, "ping"))

	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through the chain")
	}
	if !Is(err, ErrCodeStorage) {
		t.Error("code should be found behind fmt.Errorf wrapping")
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"coded", New(ErrCodeInvalidGraph, "dangling link"), ErrCodeInvalidGraph, "dangling link"},
		{"outer code wins", Wrap(ErrCodeStorage, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeStorage, "outer"},
		{"plain", errors.New("plain"), "", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}

	if GetCode(nil) != "" || Is(nil, ErrCodeInvalidInput) {
		t.Error("nil error has no code")
	}
	if Is(errors.New("plain"), "") {
		t.Error("empty code never matches")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{Wrap(ErrCodeInvalidGraph, errors.New("dup"), "import"), http.StatusBadRequest},
		{New(ErrCodeInvalidName, "x"), http.StatusBadRequest},
		{New(ErrCodeGraphNotFound, "x"), http.StatusNotFound},
		{New(ErrCodeUnsupported, "x"), http.StatusNotImplemented},
		{New(ErrCodeTimeout, "x"), http.StatusGatewayTimeout},
		{New(ErrCodeStorage, "x"), http.StatusServiceUnavailable},
		{New(ErrCodeInternal, "x"), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
