package config

import "errors"

// Configuration validation errors returned by Validate and ValidateBatch.
var (
	// ErrNoViewer is returned when no viewer name is given.
	ErrNoViewer = errors.New("no viewer specified: use --user")

	// ErrNoViewers is returned when the batch command has nobody to render for.
	ErrNoViewers = errors.New("no viewers configured: add a viewers mapping to the config file or use --viewer NAME=ROLE")

	// ErrNoItemSource is returned when neither an item file nor a database is configured.
	ErrNoItemSource = errors.New("no item source: use --items or --db")

	// ErrInvalidEncoding is returned for unknown output encodings.
	ErrInvalidEncoding = errors.New("invalid encoding: must be utf-8 or latin1")

	// ErrInvalidConcurrency is returned when batch concurrency is not positive.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")
)
