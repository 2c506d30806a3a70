package errorwrapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapError(t *testing.T) {
	tests := []struct {
		name            string
		originalError   error
		message         string
		expectedMessage string
	}{
		{
			name:            "wrap simple error",
			originalError:   errors.New("original error"),
			message:         "wrapper message",
			expectedMessage: "wrapper message: original error",
		},
		{
			name:            "empty wrapper message",
			originalError:   errors.New("original error"),
			message:         "",
			expectedMessage: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrappedError := WrapError(tt.originalError, tt.message)
			assert.Error(t, wrappedError)
			assert.Equal(t, tt.expectedMessage, wrappedError.Error())
			assert.ErrorIs(t, wrappedError, tt.originalError)
		})
	}
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))
	assert.NoError(t, WrapErrorf(nil, "ignored %d", 1))
}

func TestWrapErrorf(t *testing.T) {
	err := WrapErrorf(ErrTooLarge, "field %s", "content")
	assert.Equal(t, "field content: input too large", err.Error())
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("post_id", 0, "must be positive")

	assert.Equal(t, "validation error: field 'post_id' with value '0': must be positive", err.Error())
	assert.ErrorIs(t, WrapError(err, "save revision"), ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("revision", int64(42))

	assert.Equal(t, "revision '42' not found", err.Error())
	assert.ErrorIs(t, WrapError(err, "load"), ErrNotFound)

	var nf *NotFoundError
	assert.True(t, errors.As(WrapError(err, "load"), &nf))
	assert.Equal(t, "revision", nf.Resource)
}
