package errs

import (
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorfMessageAndUnwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := WrapErrorf(cause, ErrNoPath, "search %d failed", 7)
	assert.Contains(t, err.Error(), "search 7 failed")
	assert.Contains(t, err.Error(), "boom")

	de, ok := err.(*Error)
	assert.True(t, ok)
	assert.Same(t, ErrNoPath, de.Code())
	assert.ErrorIs(t, err, cause)
}

func TestWrapErrorfNilCause(t *testing.T) {
	err := WrapErrorf(nil, ErrInvalidNode, "bad id %d", -1)
	assert.Equal(t, "bad id -1", err.Error())
}
