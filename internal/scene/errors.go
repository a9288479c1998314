package scene

import "errors"

var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnknownNode     = errors.New("unknown node")
	ErrDuplicateID     = errors.New("duplicate node id")
)
