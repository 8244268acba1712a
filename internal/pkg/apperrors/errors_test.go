package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlreadyEnrolledErrorSingular(t *testing.T) {
	err := &AlreadyEnrolledError{StudentNames: []string{"Alice Smith"}}
	assert.Equal(t, "Alice Smith is already enrolled.", err.Error())
}

func TestAlreadyEnrolledErrorPlural(t *testing.T) {
	err := &AlreadyEnrolledError{StudentNames: []string{"Alice Smith", "Bob Jones"}}
	assert.Equal(t, "Alice Smith, Bob Jones are already enrolled.", err.Error())
}

func TestAlreadyEnrolledErrorUnwraps(t *testing.T) {
	var err error = &AlreadyEnrolledError{StudentNames: []string{"Alice Smith"}}
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var enrolledErr *AlreadyEnrolledError
	assert.True(t, errors.As(err, &enrolledErr))
	assert.Equal(t, []string{"Alice Smith"}, enrolledErr.StudentNames)
}

func TestCustomError(t *testing.T) {
	base := errors.New("underlying")

	err := NewCustomError(base, "friendly message")
	assert.Equal(t, "friendly message", err.Error())
	assert.ErrorIs(t, err, base)

	err = NewCustomError(base, "")
	assert.Equal(t, "underlying", err.Error())
}
