package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	err := Wrap(ErrInvalidInput, "decode batch")
	assert.EqualError(t, err, "decode batch: invalid input")
	assert.True(t, IsInvalidInput(err))
	assert.False(t, IsNotFound(err))
	assert.Empty(t, GetCode(err))
}

func TestWrapWithCode(t *testing.T) {
	assert.Nil(t, WrapWithCode(nil, "x", "ignored"))

	err := WrapWithCode(ErrNotFound, "batch_file", "open batch")
	assert.Equal(t, "batch_file", GetCode(err))
	assert.True(t, Is(err, ErrNotFound))
	assert.Empty(t, GetCode(errors.New("plain")))
}
