package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrNoSource        = errors.New("either a source path or image bytes are required")
	ErrAmbiguousSource = errors.New("source path and image bytes are mutually exclusive")
	ErrTextNotUTF8     = errors.New("note text is not valid UTF-8")
	ErrNoteTooLong     = errors.New("note text is too long")
	ErrEmptyPassword   = errors.New("password is required when encryption is requested")
)
