package model

import (
	"time"

	apperrors "festivales/internal/errors"
)

// ResizeAvailable keeps the number of consumed seats when the total changes.
// The result never drops below zero.
func ResizeAvailable(available, oldTotal, newTotal int) int {
	n := available + (newTotal - oldTotal)
	if n < 0 {
		return 0
	}
	if n > newTotal {
		return newTotal
	}
	return n
}

// ValidateCupoTotal checks a capacity value for a bookable resource.
func ValidateCupoTotal(total int) error {
	if total < 1 {
		return apperrors.Validation("cupo_total must be at least 1")
	}
	return nil
}

// ValidateSeats checks the seat count of a reserve or release request.
func ValidateSeats(n int) error {
	if n <= 0 {
		return apperrors.Validation("seats must be a positive integer, got %d", n)
	}
	return nil
}

// ValidateSchedule requires fin to be strictly after inicio.
func ValidateSchedule(inicio, fin time.Time) error {
	if !fin.After(inicio) {
		return apperrors.Validation("fecha_fin must be after fecha_inicio")
	}
	return nil
}
