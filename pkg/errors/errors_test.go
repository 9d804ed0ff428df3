package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesOnKind(t *testing.T) {
	err := Clone(ErrInvalidCourseDate, "course cannot start in the past")

	assert.True(t, errors.Is(err, ErrInvalidCourseDate))
	assert.False(t, errors.Is(err, ErrInvalidName))
	assert.True(t, errors.Is(fmt.Errorf("register: %w", err), ErrInvalidCourseDate))
	assert.Equal(t, "invalid course date", ErrInvalidCourseDate.Message)
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Wrap(cause, ErrPaymentGateway.Code, ErrPaymentGateway.Status, "send charge request")

	assert.True(t, errors.Is(err, ErrPaymentGateway))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "send charge request: dial tcp: timeout", err.Error())
}

func TestEntityNotFound(t *testing.T) {
	err := EntityNotFound("Course", "c-1")

	assert.Equal(t, "Course not found by id: c-1", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrEntityNotFound))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))
	assert.Same(t, ErrAlreadyEnrolled, FromError(ErrAlreadyEnrolled))

	internal := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
}
