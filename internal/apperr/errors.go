package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidIntensity = errors.New("invalid intensity")
	ErrInvalidType      = errors.New("invalid activity type")
)
