// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/eyad6789/images-with-memory/models"
)

// JPEG marker identifiers (the byte following 0xFF).
const (
	markerTEM  = 0x01
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerAPP0 = 0xE0
	markerAPP1 = 0xE1
)

// maxSegmentPayload is the largest payload one marker segment can
// carry: the 16-bit length counts its own two bytes.
const maxSegmentPayload = 65533

// APP1 payload preambles identifying the metadata family a segment
// carries.
var (
	exifPreamble = []byte("Exif\x00\x00")
	xmpPreamble  = []byte("http://ns.adobe.com/xap/1.0/\x00")
)

// jpegSegment is one marker segment of the header area. Standalone
// markers (TEM, RSTn) have nil data.
type jpegSegment struct {
	marker byte
	data   []byte
}

// jpegFile is a JPEG split at the start-of-scan boundary: the marker
// segments before SOS, and everything from SOS to end of file carried
// as an opaque tail so the entropy-coded image data is never touched.
type jpegFile struct {
	segments []jpegSegment
	tail     []byte
}

// parseJPEG splits a JPEG buffer into its header segments and scan
// tail.
func parseJPEG(data []byte) (*jpegFile, error) {
	if len(data) < 2 || data[0] != 0xFF || data[1] != markerSOI {
		return nil, fmt.Errorf("%w: bad jpeg signature", errExtract)
	}

	f := &jpegFile{}
	pos := 2
	for {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated before scan data", errExtract)
		}
		if data[pos] != 0xFF {
			return nil, fmt.Errorf("%w: expected marker at offset %d", errExtract, pos)
		}

		marker := data[pos+1]
		if marker == 0xFF {
			// Fill byte padding before a marker.
			pos++
			continue
		}

		if marker == markerSOS || marker == markerEOI {
			f.tail = data[pos:]
			return f, nil
		}

		// TEM and RSTn carry no length word.
		if marker == markerTEM || (marker >= 0xD0 && marker <= 0xD7) {
			f.segments = append(f.segments, jpegSegment{marker: marker})
			pos += 2
			continue
		}

		if pos+4 > len(data) {
			return nil, fmt.Errorf("%w: truncated segment header", errExtract)
		}
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if length < 2 {
			return nil, fmt.Errorf("%w: segment length %d below minimum", errExtract, length)
		}
		end := pos + 2 + length
		if end > len(data) {
			return nil, fmt.Errorf("%w: segment length %d exceeds remaining data", errExtract, length)
		}

		f.segments = append(f.segments, jpegSegment{marker: marker, data: data[pos+4 : end]})
		pos = end
	}
}

// findAPP1 returns the first APP1 segment whose payload starts with
// the given preamble.
func (f *jpegFile) findAPP1(preamble []byte) *jpegSegment {
	for i := range f.segments {
		seg := &f.segments[i]
		if seg.marker == markerAPP1 && bytes.HasPrefix(seg.data, preamble) {
			return seg
		}
	}

	return nil
}

// setAPP1 replaces the payload of the matching APP1 segment, or
// inserts a fresh one. A new EXIF segment goes in front of everything
// except a leading APP0 run, its conventional slot; any other new
// segment goes after the last existing APP1.
func (f *jpegFile) setAPP1(preamble, payload []byte) {
	if seg := f.findAPP1(preamble); seg != nil {
		seg.data = payload
		return
	}

	at := 0
	for at < len(f.segments) && f.segments[at].marker == markerAPP0 {
		at++
	}
	if !bytes.Equal(preamble, exifPreamble) {
		for i := range f.segments {
			if f.segments[i].marker == markerAPP1 {
				at = i + 1
			}
		}
	}

	f.segments = append(f.segments, jpegSegment{})
	copy(f.segments[at+1:], f.segments[at:])
	f.segments[at] = jpegSegment{marker: markerAPP1, data: payload}
}

// jpegCodec implements [NoteCodec] for JPEG images. The note is
// written redundantly: EXIF ImageDescription and UserComment plus the
// XMP custom property and dc:description, so stripping any single
// field still leaves the note recoverable.
type jpegCodec struct {
	bufs *bufferPool
}

func newJPEGCodec(bufs *bufferPool) *jpegCodec {
	return &jpegCodec{bufs: bufs}
}

// Format implements [NoteCodec].
func (c *jpegCodec) Format() models.ImageFormat {
	return models.FormatJPEG
}

// Embed implements [NoteCodec]. Existing EXIF and XMP blocks are
// updated in place so foreign entries survive; missing blocks are
// created.
func (c *jpegCodec) Embed(data []byte, note models.Note) ([]byte, error) {
	f, err := parseJPEG(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedFailed, err)
	}

	if err := embedEXIF(f, note); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedFailed, err)
	}
	if err := embedXMP(f, note); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedFailed, err)
	}

	return c.serialize(f), nil
}

// embedEXIF rewrites the EXIF APP1 segment with the owned tags set to
// the current note.
func embedEXIF(f *jpegFile, note models.Note) error {
	var block *exifBlock
	if seg := f.findAPP1(exifPreamble); seg != nil {
		b, err := parseEXIF(seg.data[len(exifPreamble):])
		if err != nil {
			return fmt.Errorf("exif: %w", err)
		}
		block = b
	} else {
		block = newExifBlock()
	}

	// 1. Owned tags: description and software version in IFD0, the
	// comment in the Exif sub-IFD.
	block.ifd0.setASCII(exifTagFor[models.FieldDescription], note.Content)
	block.ifd0.setASCII(exifTagFor[models.FieldVersion], Producer+"/"+note.Version)
	block.setUserComment(note.Content)

	// 2. An Artist holding exactly an encryption marker literal is a
	// stale flag left by an older writer; a real artist name stays.
	if v, ok := block.ifd0.ascii(tagArtist); ok && (v == EncryptedMarker || v == PlaintextMarker) {
		block.ifd0.remove(tagArtist)
	}

	// 3. Reassemble the segment.
	tiff := block.serialize()
	payload := make([]byte, 0, len(exifPreamble)+len(tiff))
	payload = append(payload, exifPreamble...)
	payload = append(payload, tiff...)
	if len(payload) > maxSegmentPayload {
		return fmt.Errorf("exif segment: %w", ErrNoteTooLarge)
	}

	f.setAPP1(exifPreamble, payload)

	return nil
}

// embedXMP rewrites the XMP APP1 segment. An existing packet is
// spliced so foreign properties stay byte-identical; a packet without
// a usable splice anchor is left untouched entirely, the EXIF fields
// already carry the note.
func embedXMP(f *jpegFile, note models.Note) error {
	var packet []byte
	if seg := f.findAPP1(xmpPreamble); seg != nil {
		spliced, ok := spliceXMPPacket(seg.data[len(xmpPreamble):], note)
		if !ok {
			return nil
		}
		packet = spliced
	} else {
		packet = buildXMPPacket(note)
	}

	payload := make([]byte, 0, len(xmpPreamble)+len(packet))
	payload = append(payload, xmpPreamble...)
	payload = append(payload, packet...)
	if len(payload) > maxSegmentPayload {
		return fmt.Errorf("xmp segment: %w", ErrNoteTooLarge)
	}

	f.setAPP1(xmpPreamble, payload)

	return nil
}

// Extract implements [NoteCodec]. The note-bearing fields are
// consulted in priority order; flag and version come from the
// dedicated fields with legacy fallbacks.
func (c *jpegCodec) Extract(data []byte) (models.ExtractResult, error) {
	f, err := parseJPEG(data)
	if err != nil {
		return models.ExtractResult{}, err
	}

	var block *exifBlock
	if seg := f.findAPP1(exifPreamble); seg != nil {
		b, err := parseEXIF(seg.data[len(exifPreamble):])
		if err != nil {
			return models.ExtractResult{}, fmt.Errorf("%w: exif: %w", errExtract, err)
		}
		block = b
	}

	var props xmpProperties
	if seg := f.findAPP1(xmpPreamble); seg != nil {
		props = parseXMPPacket(seg.data[len(xmpPreamble):])
	}

	var (
		note  string
		found bool
	)
	for _, field := range jpegExtractionOrder {
		if v, ok := noteField(field, block, props); ok {
			note, found = v, true
			break
		}
	}
	if !found {
		return models.ExtractResult{}, nil
	}

	return models.ExtractResult{
		Found:       true,
		Note:        note,
		IsEncrypted: encryptedFlag(note, block, props),
		Version:     versionField(block, props),
	}, nil
}

// noteField reads one extraction slot. The custom property counts even
// when empty, only this codec writes it; the shared fallback fields
// count only when non-empty, so a photo with a blank caption is not
// reported as carrying a note.
func noteField(field models.MetadataField, block *exifBlock, props xmpProperties) (string, bool) {
	switch field {
	case models.FieldNote:
		if props.note != nil {
			return *props.note, true
		}
	case models.FieldDescription:
		if block != nil {
			if v, ok := block.ifd0.ascii(tagImageDescription); ok && v != "" {
				return v, true
			}
		}
	case models.FieldUserComment:
		if block != nil {
			if v, ok := block.userComment(); ok && v != "" {
				return v, true
			}
		}
	case models.FieldXMPDescription:
		if props.description != nil && *props.description != "" {
			return *props.description, true
		}
	}

	return "", false
}

// encryptedFlag resolves the encryption flag: the XMP property wins,
// then the legacy Artist literal, then the shape of the note itself.
func encryptedFlag(note string, block *exifBlock, props xmpProperties) bool {
	if props.encrypted != nil {
		return *props.encrypted == EncryptedMarker
	}

	if block != nil {
		if v, ok := block.ifd0.ascii(tagArtist); ok && (v == EncryptedMarker || v == PlaintextMarker) {
			return v == EncryptedMarker
		}
	}

	if _, ok := models.ParseEncryptedNote(note); ok {
		// The flag fields were stripped by a foreign tool; the envelope
		// shape still identifies the payload as encrypted.
		return true
	}

	return false
}

// versionField resolves the producer version: the XMP property wins,
// then an EXIF Software tag of this producer. Foreign Software values
// are not versions.
func versionField(block *exifBlock, props xmpProperties) string {
	if props.version != nil {
		return *props.version
	}

	if block != nil {
		if v, ok := block.ifd0.ascii(tagSoftware); ok && strings.HasPrefix(v, Producer+"/") {
			return strings.TrimPrefix(v, Producer+"/")
		}
	}

	return ""
}

// serialize writes SOI, the header segments and the scan tail into a
// pooled buffer and returns a fresh copy of the assembled file.
func (c *jpegCodec) serialize(f *jpegFile) []byte {
	buf := c.bufs.get()
	defer c.bufs.put(buf)

	buf.Write([]byte{0xFF, markerSOI})

	var word [2]byte
	for _, seg := range f.segments {
		buf.WriteByte(0xFF)
		buf.WriteByte(seg.marker)
		if seg.marker == markerTEM || (seg.marker >= 0xD0 && seg.marker <= 0xD7) {
			continue
		}
		binary.BigEndian.PutUint16(word[:], uint16(len(seg.data)+2))
		buf.Write(word[:])
		buf.Write(seg.data)
	}
	buf.Write(f.tail)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}
