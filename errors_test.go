package fs7_test

import (
	"errors"
	"testing"

	"github.com/retrofs/fs7"
	"github.com/stretchr/testify/assert"
)

func TestBuildErrorWithMessage(t *testing.T) {
	newErr := fs7.ErrNoSpace.WithMessage("asdfqwerty")
	assert.Equal(
		t, "No space left on surface: asdfqwerty", newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, fs7.ErrNoSpace)
}

func TestBuildErrorWrap(t *testing.T) {
	originalErr := errors.New("original error")
	newErr := fs7.ErrUnreadableSource.Wrap(originalErr)
	expectedMessage := "Can't read file contents: original error"

	assert.EqualValues(t, expectedMessage, newErr.Error(), "error message is wrong")
	assert.ErrorIs(t, newErr, originalErr, "original error not set as parent")
	assert.ErrorIs(t, newErr, fs7.ErrUnreadableSource, "build error not set as parent")
}
