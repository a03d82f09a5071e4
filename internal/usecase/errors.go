package usecase

import "errors"

var (
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrIncompleteData      = errors.New("incomplete upstream data")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
