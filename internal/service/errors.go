package service

import "errors"

// Typed failures surfaced by every core operation. The HTTP boundary
// maps them to status codes; nothing else inspects error text.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrGone       = errors.New("gone")
	ErrUpstream   = errors.New("upstream failure")
)
