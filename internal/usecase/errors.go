package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// ErrResultNotSaved means the result write failed. Progress is kept so
	// the submission can be retried.
	ErrResultNotSaved = errors.New("result not saved")
	// ErrHistoryNotUpdated accompanies a saved Result whose history append
	// failed. The result is reachable by id only until reconciled.
	ErrHistoryNotUpdated = errors.New("history not updated")
	// ErrCacheUnavailable is returned by stores that cannot fall back to a
	// no-op when the cache backend is down.
	ErrCacheUnavailable = errors.New("cache unavailable")
)
