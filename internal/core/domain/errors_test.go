package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are distinct
func TestErrors_Existence(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrNotImplemented,
		ErrUnsupportedFileType,
		ErrFileTooLarge,
		ErrExtractionFailed,
		ErrReadFailed,
	}

	for i, err := range all {
		assert.NotNil(t, err)
		assert.NotEmpty(t, err.Error())
		for j, other := range all {
			if i != j {
				assert.False(t, errors.Is(err, other), "%v should not match %v", err, other)
			}
		}
	}
}

// TestErrors_Wrapped tests that wrapped errors unwrap to their sentinel
func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("report.pdf: %w", ErrExtractionFailed)

	assert.True(t, errors.Is(err, ErrExtractionFailed))
	assert.False(t, errors.Is(err, ErrReadFailed))
	assert.Contains(t, err.Error(), "report.pdf")
}
