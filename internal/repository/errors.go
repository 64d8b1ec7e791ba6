package repository

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrSoldOut       = errors.New("event sold out")
	ErrSalesPaused   = errors.New("ticket sales paused")
	ErrAlreadyBooked = errors.New("student already registered for event")
	ErrAlreadyUsed   = errors.New("ticket already used")
	ErrCapacityBelow = errors.New("capacity below booked count")
)
