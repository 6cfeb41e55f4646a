package services

import "errors"

var (
	ErrMissingCredentials = errors.New("missing API credentials")
	ErrUpstream           = errors.New("upstream request failed")
)
