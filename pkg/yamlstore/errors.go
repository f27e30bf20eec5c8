package yamlstore

import "errors"

var (
	ErrReadFile        = errors.New("failed to read store file")
	ErrInvalidDocument = errors.New("invalid store document")
)
