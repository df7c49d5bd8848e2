package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapMatchesKindAndCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	err := Wrap(ErrQuery, "failed to query orders", cause)

	assert.True(t, errors.Is(err, ErrQuery))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestNewHasNoCause(t *testing.T) {
	err := New(ErrValidation, "price must be a positive amount")

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "price must be a positive amount", Message(err))
}

func TestMessageSurvivesFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("update detail price: %w", New(ErrNotFound, "order detail not found"))

	assert.Equal(t, "order detail not found", Message(err))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMessageFallsBackForUnknownErrors(t *testing.T) {
	assert.Equal(t, "internal error", Message(errors.New("boom")))
}

func TestMessageNeverExposesCause(t *testing.T) {
	cause := errors.New("password authentication failed for user \"sa\"")
	err := Wrap(ErrConnection, "failed to connect to database", cause)

	assert.Equal(t, "failed to connect to database", Message(err))
	assert.NotContains(t, Message(err), "password")
}
