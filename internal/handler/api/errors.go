package api

import "errors"

var (
	errInvalidEAN      = errors.New("ean must be 13 digits")
	errProductNotFound = errors.New("product not found")
	errInvalidSecret   = errors.New("admin secret mismatch")
	errUnknownJobType  = errors.New("unknown sync job type")
)
