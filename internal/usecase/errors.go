package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrNoCurve               = errors.New("no fitted curve for position")
	ErrNotReady              = errors.New("analysis has not run")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
