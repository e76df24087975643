package services

import "errors"

var (
	// ErrStoreNotConfigured is returned by operations that need a database
	// when the service runs with DB_DRIVER=none or auditing disabled.
	ErrStoreNotConfigured = errors.New("store not configured")
	ErrInvalidStrain      = errors.New("invalid strain")
	ErrEmptyBatch         = errors.New("batch has no non-blank lines")
	ErrBatchTooLarge      = errors.New("batch too large")
)
