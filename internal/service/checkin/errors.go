package checkin

import "errors"

var (
	ErrEmptyQuery  = errors.New("empty verification query")
	ErrRateLimited = errors.New("scan rate limited")
)
