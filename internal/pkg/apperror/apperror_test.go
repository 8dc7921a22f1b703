package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errDuplicate := New(ErrConflict, "duplicate")
	wrapped := fmt.Errorf("create entry: %w", errDuplicate)

	assert.Equal(t, ErrConflict, KindOf(errDuplicate))
	assert.Equal(t, ErrConflict, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, errDuplicate))
	assert.Equal(t, "duplicate", errDuplicate.Error())
	assert.Nil(t, KindOf(errors.New("boom")))
}

func TestNewf(t *testing.T) {
	err := Newf(ErrNotFound, "employee %s not found", "42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "employee 42 not found", err.Error())
}
