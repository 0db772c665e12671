package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrDraftNotFound = errors.New("draft not found")

	ErrSlotOccupied = errors.New("time slot already booked")
)
