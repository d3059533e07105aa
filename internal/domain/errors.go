package domain

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrInvalidSlot         = errors.New("invalid slot")
	ErrGenerationExhausted = errors.New("all image generation models failed")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrWriteFailed         = errors.New("asset write failed")
	ErrPersistFailed       = errors.New("persist failed")
	ErrUploadTooLarge      = errors.New("upload too large")
)
