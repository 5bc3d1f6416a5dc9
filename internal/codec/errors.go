package codec

import "errors"

// Sentinel errors returned by the dispatcher and codecs. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrUnsupportedFormat is returned when a target is not a JPEG or
	// PNG image: unknown extension, unknown magic bytes, or an extension
	// that disagrees with the actual content.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrEmbedFailed is returned when a note cannot be written into an
	// image, e.g. the container structure is damaged or a metadata
	// segment limit is exceeded.
	ErrEmbedFailed = errors.New("failed to embed note")

	// ErrNoteTooLarge is returned when the note does not fit the
	// format's metadata limits (a single JPEG APP1 segment tops out
	// just under 64 KB). Wrapped into [ErrEmbedFailed] at the
	// dispatcher boundary.
	ErrNoteTooLarge = errors.New("note too large for image metadata")

	// errExtract marks internal extraction failures: truncated files,
	// inconsistent chunk or segment structure. It never crosses the
	// dispatcher boundary; extraction degrades to an empty result and
	// the cause is logged at debug level.
	errExtract = errors.New("failed to read image metadata")
)
