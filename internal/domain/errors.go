package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrEmptyExpectedForm is returned when a drill item's validation rule
	// carries no expected surface form.
	ErrEmptyExpectedForm = errors.New("expected form cannot be empty")

	// ErrInvalidNormalizationMode is returned when a validation rule names
	// an unknown normalization mode.
	ErrInvalidNormalizationMode = errors.New("invalid normalization mode")

	// ErrMissingLanguageCode is returned when a drill item cannot be
	// resolved to a language code.
	ErrMissingLanguageCode = errors.New("language code cannot be empty")

	// ErrInvalidErrorKind is returned when an attempt carries an unknown
	// error classification.
	ErrInvalidErrorKind = errors.New("invalid error kind")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
