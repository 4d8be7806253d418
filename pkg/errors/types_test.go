package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStatusMapping(t *testing.T) {
	cause := stderrors.New("boom")

	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"invalid source", InvalidSource("source %q not valid for %s", "bad", "tv"), ErrCodeInvalidSource, http.StatusBadRequest},
		{"profile not found", ProfileNotFound(7), ErrCodeProfileNotFound, http.StatusNotFound},
		{"already subscribed", AlreadySubscribed("tmdb", 1), ErrCodeAlreadySubscribed, http.StatusConflict},
		{"unprocessable metadata", UnprocessableMetadata("first_air_date", cause), ErrCodeUnprocessableMetadata, http.StatusUnprocessableEntity},
		{"provider unavailable", ProviderUnavailable("tmdb", cause), ErrCodeProviderUnavailable, http.StatusBadGateway},
		{"storage failure", StorageFailure("create subscription", cause), ErrCodeStorageFailure, http.StatusInternalServerError},
		{"not found", NotFound("subscription", 3), ErrCodeNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.GetHTTPCode())
			assert.True(t, Is(tt.err, tt.code))
		})
	}
}

func TestHelpersSeeWrappedAppErrors(t *testing.T) {
	appErr := AlreadySubscribed("bangumi", 99)
	wrapped := fmt.Errorf("creating subscription: %w", appErr)

	assert.True(t, Is(wrapped, ErrCodeAlreadySubscribed))
	assert.Equal(t, ErrCodeAlreadySubscribed, GetCode(wrapped))
	assert.Equal(t, http.StatusConflict, GetHTTPCode(wrapped))

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, int64(99), got.Details["source_id"])
}

func TestPlainErrorsAreInternal(t *testing.T) {
	err := stderrors.New("plain")

	assert.False(t, Is(err, ErrCodeNotFound))
	assert.Equal(t, ErrCodeInternal, GetCode(err))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPCode(err))
}

func TestErrorStringAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := StorageFailure("create episode", cause)

	assert.Equal(t, "STORAGE_FAILURE: create episode failed (caused by: disk full)", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "NOT_FOUND: subscription not found", NotFound("subscription", 1).Error())
}
