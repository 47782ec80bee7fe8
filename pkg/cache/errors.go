package cache

import "errors"

var (
	// ErrCacheMiss is returned by [GetJSON] when no usable entry exists.
	ErrCacheMiss = errors.New("cache miss")

	// ErrUnavailable wraps backend connection failures.
	ErrUnavailable = errors.New("cache unavailable")
)
