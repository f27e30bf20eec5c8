package pgstore

import "errors"

var (
	ErrInvalidConfig            = errors.New("invalid pgstore config")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrFailedToApplyMigrations  = errors.New("failed to apply migrations")
)
