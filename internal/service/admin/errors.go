package admin

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrEventConflict   = errors.New("event already exists")
	ErrInvalidCategory = errors.New("unknown event category")
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrCapacityBelow   = errors.New("capacity cannot drop below tickets already sold")
	ErrMissingFields   = errors.New("event name, venue and date are required")
)
