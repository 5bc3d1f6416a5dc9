// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sort"
	"unicode/utf16"
)

// EXIF tag IDs used by this codec. Only the owned tags are ever
// rewritten; everything else is carried through untouched.
const (
	tagImageDescription = 0x010E
	tagSoftware         = 0x0131
	tagArtist           = 0x013B
	tagThumbnailOffset  = 0x0201 // JPEGInterchangeFormat
	tagThumbnailLength  = 0x0202 // JPEGInterchangeFormatLength
	tagExifIFDPointer   = 0x8769
	tagGPSIFDPointer    = 0x8825
	tagUserComment      = 0x9286
	tagInteropPointer   = 0xA005
)

// TIFF field types referenced by the codec.
const (
	typeASCII     = 2
	typeLong      = 4
	typeUndefined = 7
)

// typeSize gives the per-element byte size of the twelve TIFF field
// types. Entries of an unlisted type are treated as opaque inline
// values so that vendor extensions survive a rewrite.
var typeSize = map[uint16]uint32{
	1: 1, 2: 1, 3: 2, 4: 4, 5: 8, 6: 1,
	7: 1, 8: 2, 9: 4, 10: 8, 11: 4, 12: 8,
}

// exifEntry is one IFD directory record. value holds the raw bytes in
// the block's byte order; sub is the parsed sub-IFD for pointer tags,
// whose table offset is recomputed on serialization.
type exifEntry struct {
	tag   uint16
	typ   uint16
	count uint32
	value []byte
	sub   *exifIFD
}

type exifIFD struct {
	entries []exifEntry
}

// exifBlock is a fully parsed TIFF structure: IFD0 with its Exif, GPS
// and interoperability sub-IFDs, plus the optional thumbnail IFD1 and
// its JPEG blob. The source byte order is preserved on rewrite so
// foreign multi-byte values never need re-encoding. MakerNote blobs
// are carried as opaque values; their private internal offsets are
// not relocated.
type exifBlock struct {
	order     binary.ByteOrder
	littleEnd bool
	ifd0      *exifIFD
	thumbIFD  *exifIFD
	thumbData []byte
}

// newExifBlock returns an empty big-endian block, used when an image
// carries no EXIF yet.
func newExifBlock() *exifBlock {
	return &exifBlock{order: binary.BigEndian, ifd0: &exifIFD{}}
}

// parseEXIF reads the TIFF payload of an APP1 segment (after the
// "Exif\0\0" preamble) into an [exifBlock].
func parseEXIF(tiff []byte) (*exifBlock, error) {
	if len(tiff) < 8 {
		return nil, fmt.Errorf("tiff header too short")
	}

	b := &exifBlock{}
	switch {
	case tiff[0] == 'I' && tiff[1] == 'I':
		b.order = binary.LittleEndian
		b.littleEnd = true
	case tiff[0] == 'M' && tiff[1] == 'M':
		b.order = binary.BigEndian
	default:
		return nil, fmt.Errorf("unknown tiff byte order %q", tiff[:2])
	}

	if b.order.Uint16(tiff[2:4]) != 0x002A {
		return nil, fmt.Errorf("bad tiff magic")
	}

	ifd0, next, err := parseIFD(tiff, b.order.Uint32(tiff[4:8]), b.order, 0)
	if err != nil {
		return nil, fmt.Errorf("ifd0: %w", err)
	}
	b.ifd0 = ifd0

	// IFD1 holds the thumbnail. A broken thumbnail IFD is dropped
	// rather than failing the whole parse.
	if next != 0 {
		thumb, _, err := parseIFD(tiff, next, b.order, 0)
		if err == nil {
			b.thumbIFD = thumb
			b.thumbData = thumbnailBlob(tiff, thumb, b.order)
		}
	}

	return b, nil
}

// parseIFD reads one directory table and, recursively, the sub-IFDs
// its pointer tags reference. depth guards against offset cycles in
// corrupt files.
func parseIFD(tiff []byte, off uint32, order binary.ByteOrder, depth int) (*exifIFD, uint32, error) {
	if depth > 4 {
		return nil, 0, fmt.Errorf("ifd nesting too deep")
	}
	if int64(off)+2 > int64(len(tiff)) {
		return nil, 0, fmt.Errorf("ifd offset %d out of range", off)
	}

	count := uint32(order.Uint16(tiff[off:]))
	end := int64(off) + 2 + int64(count)*12 + 4
	if end > int64(len(tiff)) {
		return nil, 0, fmt.Errorf("ifd table at %d exceeds block", off)
	}

	ifd := &exifIFD{entries: make([]exifEntry, 0, count)}
	pos := off + 2
	for i := uint32(0); i < count; i++ {
		e := exifEntry{
			tag:   order.Uint16(tiff[pos:]),
			typ:   order.Uint16(tiff[pos+2:]),
			count: order.Uint32(tiff[pos+4:]),
		}
		field := tiff[pos+8 : pos+12]

		elem, known := typeSize[e.typ]
		size := int64(elem) * int64(e.count)
		switch {
		case !known:
			// Vendor-specific type: keep the raw 4-byte field.
			e.value = append([]byte(nil), field...)
		case size <= 4:
			e.value = append([]byte(nil), field[:size]...)
		default:
			valOff := int64(order.Uint32(field))
			if valOff+size > int64(len(tiff)) {
				return nil, 0, fmt.Errorf("tag 0x%04X value out of range", e.tag)
			}
			e.value = append([]byte(nil), tiff[valOff:valOff+size]...)
		}

		if isPointerTag(e.tag) && known && size <= 4 {
			sub, _, err := parseIFD(tiff, order.Uint32(field), order, depth+1)
			if err != nil {
				return nil, 0, fmt.Errorf("sub-ifd of tag 0x%04X: %w", e.tag, err)
			}
			e.sub = sub
		}

		ifd.entries = append(ifd.entries, e)
		pos += 12
	}

	return ifd, order.Uint32(tiff[pos:]), nil
}

func isPointerTag(tag uint16) bool {
	return tag == tagExifIFDPointer || tag == tagGPSIFDPointer || tag == tagInteropPointer
}

// thumbnailBlob resolves the JPEG thumbnail referenced by IFD1, or nil
// when the reference is absent or broken.
func thumbnailBlob(tiff []byte, ifd *exifIFD, order binary.ByteOrder) []byte {
	offEntry := ifd.find(tagThumbnailOffset)
	lenEntry := ifd.find(tagThumbnailLength)
	if offEntry == nil || lenEntry == nil || len(offEntry.value) < 4 || len(lenEntry.value) < 4 {
		return nil
	}

	start := int64(order.Uint32(offEntry.value))
	size := int64(order.Uint32(lenEntry.value))
	if size <= 0 || start+size > int64(len(tiff)) {
		return nil
	}

	return append([]byte(nil), tiff[start:start+size]...)
}

// serialize writes the block back into TIFF wire form with all table
// and value offsets recomputed. Entries are emitted in ascending tag
// order as the TIFF specification requires.
func (b *exifBlock) serialize() []byte {
	b.ifd0.sortByTag()
	if b.thumbIFD != nil {
		b.thumbIFD.sortByTag()
	}

	// 1. Flatten the IFD tree in emission order: IFD0, its sub-IFDs
	// depth-first, then the thumbnail IFD.
	var ifds []*exifIFD
	var collect func(ifd *exifIFD)
	collect = func(ifd *exifIFD) {
		ifds = append(ifds, ifd)
		for i := range ifd.entries {
			if ifd.entries[i].sub != nil {
				ifd.entries[i].sub.sortByTag()
				collect(ifd.entries[i].sub)
			}
		}
	}
	collect(b.ifd0)
	if b.thumbIFD != nil {
		collect(b.thumbIFD)
	}

	// 2. Assign table offsets, then value offsets in the data area.
	tableAt := make(map[*exifIFD]uint32, len(ifds))
	pos := uint32(8)
	for _, ifd := range ifds {
		tableAt[ifd] = pos
		pos += 2 + 12*uint32(len(ifd.entries)) + 4
	}

	valueAt := make(map[*exifEntry]uint32)
	for _, ifd := range ifds {
		for i := range ifd.entries {
			e := &ifd.entries[i]
			if e.sub == nil && len(e.value) > 4 {
				pos += pos % 2 // word-align values
				valueAt[e] = pos
				pos += uint32(len(e.value))
			}
		}
	}

	var thumbBase uint32
	if len(b.thumbData) > 0 {
		pos += pos % 2
		thumbBase = pos
		pos += uint32(len(b.thumbData))
	}

	// 3. Emit header, tables and data area.
	buf := make([]byte, pos)
	if b.littleEnd {
		buf[0], buf[1] = 'I', 'I'
	} else {
		buf[0], buf[1] = 'M', 'M'
	}
	b.order.PutUint16(buf[2:], 0x002A)
	b.order.PutUint32(buf[4:], 8)

	for _, ifd := range ifds {
		at := tableAt[ifd]
		b.order.PutUint16(buf[at:], uint16(len(ifd.entries)))
		p := at + 2
		for i := range ifd.entries {
			e := &ifd.entries[i]
			b.order.PutUint16(buf[p:], e.tag)
			b.order.PutUint16(buf[p+2:], e.typ)
			b.order.PutUint32(buf[p+4:], e.count)
			switch {
			case e.sub != nil:
				b.order.PutUint32(buf[p+8:], tableAt[e.sub])
			case ifd == b.thumbIFD && e.tag == tagThumbnailOffset && thumbBase > 0:
				b.order.PutUint32(buf[p+8:], thumbBase)
			case len(e.value) > 4:
				b.order.PutUint32(buf[p+8:], valueAt[e])
				copy(buf[valueAt[e]:], e.value)
			default:
				copy(buf[p+8:p+12], e.value)
			}
			p += 12
		}

		next := uint32(0)
		if ifd == b.ifd0 && b.thumbIFD != nil {
			next = tableAt[b.thumbIFD]
		}
		b.order.PutUint32(buf[p:], next)
	}

	if thumbBase > 0 {
		copy(buf[thumbBase:], b.thumbData)
	}

	return buf
}

// exifIFD helpers.

func (ifd *exifIFD) find(tag uint16) *exifEntry {
	for i := range ifd.entries {
		if ifd.entries[i].tag == tag {
			return &ifd.entries[i]
		}
	}

	return nil
}

func (ifd *exifIFD) remove(tag uint16) {
	kept := ifd.entries[:0]
	for _, e := range ifd.entries {
		if e.tag != tag {
			kept = append(kept, e)
		}
	}
	ifd.entries = kept
}

func (ifd *exifIFD) set(e exifEntry) {
	if cur := ifd.find(e.tag); cur != nil {
		*cur = e
		return
	}
	ifd.entries = append(ifd.entries, e)
}

func (ifd *exifIFD) sortByTag() {
	sort.SliceStable(ifd.entries, func(i, j int) bool {
		return ifd.entries[i].tag < ifd.entries[j].tag
	})
}

// exifIFD accessor for the Exif sub-IFD, creating the pointer entry on
// first use so UserComment has a home in images without one.
func (b *exifBlock) ensureExifIFD() *exifIFD {
	if e := b.ifd0.find(tagExifIFDPointer); e != nil && e.sub != nil {
		return e.sub
	}

	sub := &exifIFD{}
	b.ifd0.set(exifEntry{
		tag:   tagExifIFDPointer,
		typ:   typeLong,
		count: 1,
		value: []byte{0, 0, 0, 0},
		sub:   sub,
	})

	return sub
}

func (b *exifBlock) exifSubIFD() *exifIFD {
	if e := b.ifd0.find(tagExifIFDPointer); e != nil {
		return e.sub
	}

	return nil
}

// setASCII writes tag as a NUL-terminated ASCII entry.
func (ifd *exifIFD) setASCII(tag uint16, s string) {
	value := append([]byte(s), 0)
	ifd.set(exifEntry{
		tag:   tag,
		typ:   typeASCII,
		count: uint32(len(value)),
		value: value,
	})
}

// ascii returns the string value of an ASCII entry with trailing NULs
// trimmed.
func (ifd *exifIFD) ascii(tag uint16) (string, bool) {
	e := ifd.find(tag)
	if e == nil || e.typ != typeASCII {
		return "", false
	}

	return string(bytes.TrimRight(e.value, "\x00")), true
}

// setUserComment writes the UserComment entry with its 8-byte charset
// header: ASCII for plain content, UNICODE (UTF-16 in the block's byte
// order) otherwise.
func (b *exifBlock) setUserComment(s string) {
	value := encodeUserComment(s, b.order)
	b.ensureExifIFD().set(exifEntry{
		tag:   tagUserComment,
		typ:   typeUndefined,
		count: uint32(len(value)),
		value: value,
	})
}

// userComment reads the UserComment entry back into a string.
func (b *exifBlock) userComment() (string, bool) {
	sub := b.exifSubIFD()
	if sub == nil {
		return "", false
	}

	e := sub.find(tagUserComment)
	if e == nil {
		return "", false
	}

	return decodeUserComment(e.value, b.order)
}

var (
	userCommentASCII   = []byte("ASCII\x00\x00\x00")
	userCommentUnicode = []byte("UNICODE\x00")
	userCommentNone    = []byte("\x00\x00\x00\x00\x00\x00\x00\x00")
)

func encodeUserComment(s string, order binary.ByteOrder) []byte {
	if isASCII(s) {
		return append(append([]byte(nil), userCommentASCII...), s...)
	}

	units := utf16.Encode([]rune(s))
	out := make([]byte, len(userCommentUnicode)+2*len(units))
	copy(out, userCommentUnicode)
	for i, u := range units {
		order.PutUint16(out[len(userCommentUnicode)+2*i:], u)
	}

	return out
}

func decodeUserComment(v []byte, order binary.ByteOrder) (string, bool) {
	if len(v) < 8 {
		return string(bytes.TrimRight(v, "\x00")), len(v) > 0
	}

	header, body := v[:8], v[8:]
	switch {
	case bytes.HasPrefix(header, []byte("ASCII")):
		return string(bytes.TrimRight(body, "\x00")), true

	case bytes.HasPrefix(header, []byte("UNICODE")):
		units := make([]uint16, len(body)/2)
		for i := range units {
			units[i] = order.Uint16(body[2*i:])
		}
		for len(units) > 0 && units[len(units)-1] == 0 {
			units = units[:len(units)-1]
		}
		return string(utf16.Decode(units)), true

	case bytes.Equal(header, userCommentNone):
		// Undefined charset: writers commonly put UTF-8 here.
		return string(bytes.TrimRight(body, "\x00")), true
	}

	return "", false
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}

	return true
}
