package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", WithMessage(ErrNotFound, "Студент с указанным ИИН не найден"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrIncompleteRecord))
}

func TestFromErrorWrapsUnknown(t *testing.T) {
	e := FromError(errors.New("boom"))

	assert.Equal(t, ErrInternal.Code, e.Code)
	assert.Equal(t, 500, e.Status)
	assert.Nil(t, FromError(nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("open reg.xlsx: no such file")
	e := Wrap(cause, ErrDataUnavailable, "")

	assert.ErrorIs(t, e, cause)
	assert.ErrorIs(t, e, ErrDataUnavailable)
	assert.Equal(t, ErrDataUnavailable.Message, e.Message)
}
