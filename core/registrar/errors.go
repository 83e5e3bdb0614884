package registrar

import "errors"

var (
	// ErrDuplicateID is returned by Register when the id is already present.
	ErrDuplicateID = errors.New("registrar: processor id already registered")

	// ErrUnknownID is returned by PostByID when no processor is registered
	// under the given id.
	ErrUnknownID = errors.New("registrar: unknown processor id")
)
