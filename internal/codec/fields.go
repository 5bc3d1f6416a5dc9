package codec

import "github.com/eyad6789/images-with-memory/models"

// Producer is the writer name recorded in the producer/version marker
// fields of both formats.
const Producer = "MemoryInk"

// Marker literals stored in the encryption flag fields. The JPEG XMP
// flag carries EncryptedMarker/PlaintextMarker; the PNG flag chunk
// carries pngFlagTrue/pngFlagFalse.
const (
	EncryptedMarker = "ENCRYPTED"
	PlaintextMarker = "PLAINTEXT"

	pngFlagTrue  = "true"
	pngFlagFalse = "false"
)

// pngKeywordFor maps each owned metadata slot to its PNG textual chunk
// keyword. The keys are the closed [models.MetadataField] enum, so a
// new reserved slot cannot be introduced without a type-checked home
// in every codec.
var pngKeywordFor = map[models.MetadataField]string{
	models.FieldNote:      "MemoryInkNote",
	models.FieldEncrypted: "MemoryInkEncrypted",
	models.FieldVersion:   "MemoryInkVersion",
}

// exifTagFor maps owned slots to EXIF tag IDs. FieldDescription and
// FieldVersion live in IFD0; FieldUserComment lives in the Exif
// sub-IFD.
var exifTagFor = map[models.MetadataField]uint16{
	models.FieldDescription: tagImageDescription,
	models.FieldUserComment: tagUserComment,
	models.FieldVersion:     tagSoftware,
}

// xmpPropertyFor maps owned slots to XMP property names. The
// memoryink properties live under the custom namespace
// [xmpMemoryInkNS]; dc:description is the standard Dublin Core slot.
var xmpPropertyFor = map[models.MetadataField]string{
	models.FieldNote:           "memoryink:Note",
	models.FieldXMPDescription: "dc:description",
	models.FieldEncrypted:      "memoryink:Encrypted",
	models.FieldVersion:        "memoryink:Version",
}

// jpegExtractionOrder is the priority ladder consulted when reading a
// note out of a JPEG: the first populated slot wins. Exhaustive over
// the note-bearing fields by construction.
var jpegExtractionOrder = []models.MetadataField{
	models.FieldNote,
	models.FieldDescription,
	models.FieldUserComment,
	models.FieldXMPDescription,
}
