package store

import "errors"

// Sentinel errors returned by store methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSourceNotFound is returned when the image file named by a read
	// request does not exist on the local filesystem.
	ErrSourceNotFound = errors.New("source image was not found")

	// ErrDestinationExists is returned when a write targets a path that is
	// already occupied and the caller did not ask for it to be overwritten.
	ErrDestinationExists = errors.New("destination file already exists")
)
