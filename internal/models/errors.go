package models

import "errors"

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrCorruptStore     = errors.New("catalog document is corrupt")
	ErrSaveFailed       = errors.New("catalog save failed")
	ErrTooLarge         = errors.New("upload too large")
	ErrUploadFailed     = errors.New("upload failed")
	ErrInvalidPath      = errors.New("invalid path")
	ErrNotFound         = errors.New("file not found")
)
