// Package services implements the business logic for buy-back quotes: the
// TTL quote cache and the quote orchestration on top of the pricing engine.
// This file centralizes common service-level error values so that they can
// be consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrInvalidIdentifier is returned when a raw product code normalizes
	// to an empty cache key (nothing alphanumeric in it).
	ErrInvalidIdentifier = errors.New("invalid identifier")
)
