package booking

import "errors"

var (
	ErrIncompleteForm = errors.New("student name, registration number and course are required")
	ErrEventNotFound  = errors.New("event not found")
	ErrSoldOut        = errors.New("event is sold out")
	ErrSalesPaused    = errors.New("ticket sales are paused for this event")
	ErrAlreadyBooked  = errors.New("you already have a ticket for this event")
	ErrRateLimited    = errors.New("too many booking attempts")
)
