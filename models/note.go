package models

// Note represents a memory attached to an image.
// It is the unit a codec embeds into and extracts from metadata fields.
type Note struct {
	// Content contains the note text.
	// When IsEncrypted is true, this value is the serialized
	// [EncryptedNote] envelope rather than readable text.
	Content string `json:"content"`

	// IsEncrypted indicates whether Content is an encrypted envelope.
	IsEncrypted bool `json:"encrypted"`

	// Version identifies the producer that wrote the note,
	// e.g. "1.0". Written into the format's version marker field.
	Version string `json:"version,omitempty"`
}

// ExtractResult is the outcome of reading a note from an image.
//
// Extraction never fails with an error for a readable image of a supported
// format: a damaged or note-less image yields Found == false. This keeps
// "no note" and "unreadable metadata" on the same calm path for callers
// while codecs still log the difference.
type ExtractResult struct {
	// Found reports whether any note field was present.
	Found bool `json:"found"`

	// Note contains the extracted note text.
	// For an encrypted note this is the ciphertext envelope;
	// use the cipher to reveal the plaintext.
	Note string `json:"note,omitempty"`

	// IsEncrypted indicates whether Note holds an encrypted envelope.
	IsEncrypted bool `json:"encrypted"`

	// Version is the producer version read from the version marker
	// field, when present.
	Version string `json:"version,omitempty"`
}
