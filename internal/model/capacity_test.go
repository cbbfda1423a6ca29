package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "festivales/internal/errors"
)

func TestResizeAvailable(t *testing.T) {
	tests := []struct {
		name                          string
		available, oldTotal, newTotal int
		expected                      int
	}{
		{"grow keeps consumed seats", 3, 10, 15, 8},
		{"shrink keeps consumed seats", 8, 10, 6, 4},
		{"shrink below consumed clamps to zero", 2, 10, 5, 0},
		{"unchanged", 4, 10, 10, 4},
		{"never above total", 12, 10, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResizeAvailable(tt.available, tt.oldTotal, tt.newTotal))
		})
	}
}

func TestCapacityValidation(t *testing.T) {
	assert.ErrorIs(t, ValidateCupoTotal(0), apperrors.ErrValidation)
	assert.NoError(t, ValidateCupoTotal(1))

	assert.ErrorIs(t, ValidateSeats(0), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateSeats(-2), apperrors.ErrValidation)
	assert.NoError(t, ValidateSeats(1))

	now := time.Now()
	assert.ErrorIs(t, ValidateSchedule(now, now), apperrors.ErrValidation)
	assert.ErrorIs(t, ValidateSchedule(now, now.Add(-time.Hour)), apperrors.ErrValidation)
	assert.NoError(t, ValidateSchedule(now, now.Add(time.Hour)))
}

func TestIDs(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 24)
	assert.True(t, IsValidID(id))
	assert.False(t, IsValidID("not-an-id"))
	assert.False(t, IsValidID(""))
}
