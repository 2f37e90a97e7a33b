package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("dial tcp: timeout")

	tests := []struct {
		name       string
		err        *Error
		wantType   ErrorType
		wantStatus int
		wantCause  error
	}{
		{"validation", ValidationError("Invalid text"), TypeValidation, http.StatusBadRequest, nil},
		{"validation with cause", ValidationErrorWrap("Invalid URL", cause), TypeValidation, http.StatusBadRequest, cause},
		{"not found", NotFoundError("Endpoint not found"), TypeNotFound, http.StatusNotFound, nil},
		{"rate limited", RateLimitedError("rate limit exceeded"), TypeRateLimited, http.StatusTooManyRequests, nil},
		{"internal", InternalError("Internal server error", cause), TypeInternal, http.StatusInternalServerError, cause},
		{"external", ExternalError("fetch failed", cause), TypeExternal, http.StatusBadGateway, cause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus())
			assert.Equal(t, tt.wantCause, tt.err.Cause)
			assert.NotNil(t, tt.err.Context)
			assert.Contains(t, tt.err.Error(), string(tt.wantType))
		})
	}
}

func TestHTTPStatus_UnknownTypeIsInternal(t *testing.T) {
	err := &Error{Type: ErrorType("mystery")}

	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "validation: Invalid text", ValidationError("Invalid text").Error())
	assert.Equal(t, "internal: boom: root", InternalError("boom", fmt.Errorf("root")).Error())
}

func TestWithField(t *testing.T) {
	err := ValidationError("Invalid texts").
		WithField("index", 2).
		WithField("max", 100)

	assert.Equal(t, 2, err.Context["index"])
	assert.Equal(t, 100, err.Context["max"])
}

func TestWithField_NilContext(t *testing.T) {
	err := &Error{Type: TypeValidation, Message: "x"}

	err = err.WithField("key", "value")

	assert.Equal(t, "value", err.Context["key"])
}

func TestToResponse(t *testing.T) {
	resp := ValidationError("Invalid text").WithField("field", "text").ToResponse()

	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid text", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "text", resp.Context["field"])
}

func TestUnwrapAndIs(t *testing.T) {
	root := fmt.Errorf("root")
	err := InternalError("wrapped", root)

	assert.Equal(t, root, errors.Unwrap(err))
	assert.True(t, errors.Is(err, root))
	assert.Nil(t, errors.Unwrap(ValidationError("x")))
}

func TestAsStructuredError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, AsStructuredError(nil))
	})

	t.Run("structured", func(t *testing.T) {
		original := NotFoundError("Endpoint not found")
		assert.Same(t, original, AsStructuredError(original))
	})

	t.Run("wrapped structured", func(t *testing.T) {
		wrapped := fmt.Errorf("handler: %w", ValidationError("Invalid text"))

		got := AsStructuredError(wrapped)
		require.NotNil(t, got)
		assert.Equal(t, TypeValidation, got.Type)
		assert.Equal(t, "Invalid text", got.Message)
	})

	t.Run("plain", func(t *testing.T) {
		plain := fmt.Errorf("nil map write")

		got := AsStructuredError(plain)
		assert.Equal(t, TypeInternal, got.Type)
		assert.Equal(t, "Internal server error", got.Message)
		assert.Equal(t, plain, got.Cause)
	})
}
