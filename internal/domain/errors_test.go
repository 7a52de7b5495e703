package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	t.Run("совпадение по коду", func(t *testing.T) {
		err := NewNotFoundError("finding")

		assert.True(t, errors.Is(err, ErrNotFound))
		assert.False(t, errors.Is(err, ErrInvalidArgument))
		assert.Equal(t, "finding not found", err.Error())
	})

	t.Run("через fmt.Errorf", func(t *testing.T) {
		err := fmt.Errorf("mark commented: %w", ErrAlreadyCommented)

		assert.True(t, errors.Is(err, ErrAlreadyCommented))
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset by peer")

	err := Wrap(ErrStorageUnavailable, cause)

	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "storage unavailable: connection reset by peer", err.Error())
	assert.Nil(t, ErrStorageUnavailable.Err, "sentinel не изменяется")
}
