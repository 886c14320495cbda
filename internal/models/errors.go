package models

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownChannel indicates a channel tag outside the closed enumeration
	ErrUnknownChannel = errors.New("unknown channel kind")

	// ErrUnknownPricingModel indicates a pricing model tag outside the closed enumeration
	ErrUnknownPricingModel = errors.New("unknown pricing model")

	// ErrPublicationNotFound indicates the catalog store has no snapshot for the publication
	ErrPublicationNotFound = errors.New("publication not found in catalog")

	// ErrInvalidSnapshot indicates a catalog document that is not valid JSON or has no usable fields
	ErrInvalidSnapshot = errors.New("invalid publication snapshot")

	// ErrFetchTimeout indicates that fetching a catalog snapshot timed out
	ErrFetchTimeout = errors.New("timeout while fetching publication snapshot")

	// ErrRateLimitExceeded indicates that rate limit has been exceeded
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrCacheMiss indicates the cache has no live entry for the key
	ErrCacheMiss = errors.New("cache miss")
)

// PublicationError represents an error specific to one publication
type PublicationError struct {
	PublicationID string
	Message       string
	Err           error
}

func (e *PublicationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("publication %s: %s: %v", e.PublicationID, e.Message, e.Err)
	}
	return fmt.Sprintf("publication %s: %s", e.PublicationID, e.Message)
}

func (e *PublicationError) Unwrap() error {
	return e.Err
}

// NewPublicationError creates a new publication-specific error
func NewPublicationError(publicationID, message string, err error) *PublicationError {
	return &PublicationError{
		PublicationID: publicationID,
		Message:       message,
		Err:           err,
	}
}
