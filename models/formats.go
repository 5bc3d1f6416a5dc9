package models

// ImageFormat identifies an image container format supported by the
// codecs. The dispatcher resolves a format from the file extension and
// verifies it against the magic-byte signature before routing.
type ImageFormat int

const (
	// FormatUnknown marks an unrecognized or unsupported format.
	FormatUnknown ImageFormat = 0

	// FormatJPEG marks a JPEG/JFIF image (.jpg, .jpeg).
	FormatJPEG ImageFormat = 1

	// FormatPNG marks a PNG image (.png).
	FormatPNG ImageFormat = 2
)

// String returns the lowercase format name used in logs and reports.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return "unknown"
	}
}
