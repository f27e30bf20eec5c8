package mongostore

import "errors"

var (
	ErrInvalidConfig          = errors.New("invalid mongostore config")
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
)
