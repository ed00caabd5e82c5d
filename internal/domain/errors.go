package domain

import "errors"

var (
	ErrMalformedDocument   = errors.New("document is not a parseable PDF")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUpstreamUnavailable = errors.New("completion API unavailable")
	ErrMissingAPIKey       = errors.New("completion API key not configured")
)
