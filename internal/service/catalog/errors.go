package catalog

import "errors"

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidCategory = errors.New("unknown event category")
)
