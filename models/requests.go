package models

// EmbedRequest describes a single embed operation.
//
// The source image is either file-backed (Path) or memory-backed (Data);
// exactly one must be set. With a file-backed source the result is
// written to OutPath, or back to Path when OutPath is empty. With a
// memory-backed source the updated image is returned in
// [EmbedResult.Data].
type EmbedRequest struct {
	// Path is the source image file.
	Path string

	// Data is the in-memory source image. Used when Path is empty.
	Data []byte

	// OutPath is the destination file. Empty means in-place.
	OutPath string

	// Overwrite allows replacing an existing destination file.
	Overwrite bool

	// Text is the note to embed. An empty note is valid.
	Text string

	// Encrypt requests password-based encryption of the note.
	Encrypt bool

	// Password is the encryption password. Required when Encrypt is set.
	Password string
}

// EmbedResult reports a completed embed.
type EmbedResult struct {
	// Path is the file the note was written to. Empty in memory mode.
	Path string `json:"path,omitempty"`

	// Format is the image format name ("jpeg", "png").
	Format string `json:"format"`

	// Encrypted indicates whether the stored note is encrypted.
	Encrypted bool `json:"encrypted"`

	// Data is the updated image in memory mode.
	Data []byte `json:"-"`
}

// ExtractRequest describes a single extract operation over a
// file-backed (Path) or memory-backed (Data) image.
type ExtractRequest struct {
	// Path is the source image file.
	Path string

	// Data is the in-memory source image. Used when Path is empty.
	Data []byte
}

// RevealRequest describes an extract followed by decryption when the
// stored note turns out to be encrypted.
type RevealRequest struct {
	// Path is the source image file.
	Path string

	// Data is the in-memory source image. Used when Path is empty.
	Data []byte

	// Password decrypts an encrypted note. Ignored for plaintext notes.
	Password string
}

// VerifyRequest describes a presence check: does the image carry a
// note, and is it encrypted. The note content is never decrypted.
type VerifyRequest struct {
	// Path is the source image file.
	Path string

	// Data is the in-memory source image. Used when Path is empty.
	Data []byte
}
