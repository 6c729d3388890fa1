package client

import "errors"

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrNotFound         = errors.New("resource not found")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrEmptyBody        = errors.New("empty response body")
)
