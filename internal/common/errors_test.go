package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError("PDF_DECODE", "cannot open form.pdf", fmt.Errorf("%w: bad xref", ErrDecode))
	assert.Contains(t, err.Error(), "PDF_DECODE")
	assert.Contains(t, err.Error(), "cannot open form.pdf")
	assert.True(t, errors.Is(err, ErrDecode))
	assert.False(t, errors.Is(err, ErrInternal))
}

func TestIsDecodeError(t *testing.T) {
	assert.True(t, IsDecodeError(NewAppError("OCR_UNSUPPORTED", "unsupported extension", ErrDecode)))
	assert.False(t, IsDecodeError(NewAppError("X", "y", ErrInternal)))
	assert.False(t, IsDecodeError(errors.New("plain")))
	assert.False(t, IsDecodeError(nil))
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "noop"))

	base := errors.New("disk full")
	wrapped := WrapError(base, "write json record")
	assert.EqualError(t, wrapped, "write json record: disk full")
	assert.True(t, errors.Is(wrapped, base))
}
