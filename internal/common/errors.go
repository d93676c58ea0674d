package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	ErrInvalidToken = errors.New("invalid token")

	// configuration errors surface before any store mutation
	ErrorInvalidConfig = errors.New("invalid configuration")
)
