package model

import "errors"

// Sentinel errors for the model package.
var (
	ErrMalformedRow        = errors.New("model: malformed row")
	ErrUnsupportedCardType = errors.New("model: unsupported card type")
)
