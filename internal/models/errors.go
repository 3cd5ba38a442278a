package models

import "errors"

// Domain-specific errors for mounting and persistence
var (
	// ErrInvalidTicket indicates the data-ticket attribute is missing or not an integer
	ErrInvalidTicket = errors.New("invalid ticket identifier")

	// ErrMissingURL indicates no label endpoint was configured
	ErrMissingURL = errors.New("label endpoint url is required")

	// ErrCSRFCookieMissing indicates the CSRF cookie is not present in the jar
	ErrCSRFCookieMissing = errors.New("csrf cookie not found")

	// ErrNotReady indicates the catalog has not been loaded yet
	ErrNotReady = errors.New("label catalog not loaded")
)
