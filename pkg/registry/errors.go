package registry

import "errors"

var (
	// ErrEmptyName is returned when registering under an empty type name.
	ErrEmptyName = errors.New("registry: type name is empty")

	// ErrNilValidator is returned when registering a nil validator.
	ErrNilValidator = errors.New("registry: validator is nil")

	// ErrUnsupportedShape is returned when the registered value matches
	// none of the accepted validator shapes.
	ErrUnsupportedShape = errors.New("registry: unsupported validator shape")
)
