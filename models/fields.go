package models

// MetadataField enumerates the reserved metadata slots owned by this
// system. Codecs map each value to its format-specific representation
// at their boundary: EXIF tag IDs and XMP properties for JPEG, textual
// chunk keywords for PNG. Consumers never pass raw field names around,
// so a typo cannot silently address the wrong slot.
type MetadataField int

const (
	// FieldNote is the authoritative custom note slot
	// (XMP memoryink:Note, PNG keyword "MemoryInkNote").
	FieldNote MetadataField = iota + 1

	// FieldDescription is the standard image description slot
	// (EXIF ImageDescription), written redundantly with the note.
	FieldDescription

	// FieldUserComment is the EXIF UserComment slot,
	// another redundant copy of the note.
	FieldUserComment

	// FieldXMPDescription is the XMP dc:description slot,
	// the last redundant copy consulted on extraction.
	FieldXMPDescription

	// FieldEncrypted is the encryption marker slot
	// (XMP memoryink:Encrypted, PNG keyword "MemoryInkEncrypted").
	FieldEncrypted

	// FieldVersion is the producer/version marker slot
	// (EXIF Software, XMP memoryink:Version, PNG "MemoryInkVersion").
	FieldVersion
)

// String returns the field name used in logs.
func (f MetadataField) String() string {
	switch f {
	case FieldNote:
		return "note"
	case FieldDescription:
		return "description"
	case FieldUserComment:
		return "user-comment"
	case FieldXMPDescription:
		return "xmp-description"
	case FieldEncrypted:
		return "encrypted"
	case FieldVersion:
		return "version"
	default:
		return "unknown"
	}
}
