// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/eyad6789/images-with-memory/models"
)

// pngSignature is the fixed 8-byte header every PNG file starts with.
var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

const (
	chunkIEND = "IEND"
	chunkTEXT = "tEXt"
	chunkZTXT = "zTXt"
	chunkITXT = "iTXt"
)

// pngChunk is one length/type/data/CRC record of a PNG file. Foreign
// chunks keep the CRC read from the source; only chunks this codec
// creates get a computed one.
type pngChunk struct {
	ctype string
	data  []byte
	crc   uint32
}

// newChunk builds a chunk with its CRC computed over type + data.
func newChunk(ctype string, data []byte) pngChunk {
	sum := crc32.NewIEEE()
	sum.Write([]byte(ctype))
	sum.Write(data)

	return pngChunk{ctype: ctype, data: data, crc: sum.Sum32()}
}

// newTEXtChunk builds a tEXt chunk: keyword, NUL separator, Latin-1 text.
func newTEXtChunk(keyword, text string) pngChunk {
	data := make([]byte, 0, len(keyword)+1+len(text))
	data = append(data, keyword...)
	data = append(data, 0)
	data = append(data, text...)

	return newChunk(chunkTEXT, data)
}

// newITXtChunk builds an uncompressed iTXt chunk with empty language
// tag and translated keyword. iTXt carries UTF-8, so arbitrary note
// content is stored here rather than in Latin-1 tEXt.
func newITXtChunk(keyword, text string) pngChunk {
	data := make([]byte, 0, len(keyword)+5+len(text))
	data = append(data, keyword...)
	data = append(data, 0)    // keyword terminator
	data = append(data, 0, 0) // compression flag + method: uncompressed
	data = append(data, 0)    // empty language tag
	data = append(data, 0)    // empty translated keyword
	data = append(data, text...)

	return newChunk(chunkITXT, data)
}

// parsePNG splits a PNG buffer into its chunk sequence. The returned
// slice always ends with the IEND chunk; a file that runs out before
// IEND is reported as truncated.
func parsePNG(data []byte) ([]pngChunk, error) {
	if len(data) < len(pngSignature) || !bytes.Equal(data[:len(pngSignature)], pngSignature) {
		return nil, fmt.Errorf("%w: bad png signature", errExtract)
	}

	r := bytes.NewReader(data[len(pngSignature):])
	var chunks []pngChunk
	for {
		var length uint32
		if err := binary.Read(r, binary.BigEndian, &length); err != nil {
			return nil, fmt.Errorf("%w: truncated before IEND", errExtract)
		}
		if int64(length) > int64(r.Len()) {
			return nil, fmt.Errorf("%w: chunk length %d exceeds remaining data", errExtract, length)
		}

		ctype := make([]byte, 4)
		if _, err := io.ReadFull(r, ctype); err != nil {
			return nil, fmt.Errorf("%w: truncated chunk type", errExtract)
		}

		payload := make([]byte, length)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("%w: truncated chunk data", errExtract)
		}

		var crc uint32
		if err := binary.Read(r, binary.BigEndian, &crc); err != nil {
			return nil, fmt.Errorf("%w: truncated chunk crc", errExtract)
		}

		chunks = append(chunks, pngChunk{ctype: string(ctype), data: payload, crc: crc})
		if string(ctype) == chunkIEND {
			return chunks, nil
		}
	}
}

// pngCodec implements [NoteCodec] for PNG images.
type pngCodec struct {
	bufs *bufferPool
}

func newPNGCodec(bufs *bufferPool) *pngCodec {
	return &pngCodec{bufs: bufs}
}

// Format implements [NoteCodec].
func (c *pngCodec) Format() models.ImageFormat {
	return models.FormatPNG
}

// Embed implements [NoteCodec]. It strips every text chunk bearing a
// reserved keyword and writes the three owned chunks immediately
// before IEND, leaving all other chunks byte-identical in their
// original order.
func (c *pngCodec) Embed(data []byte, note models.Note) ([]byte, error) {
	chunks, err := parsePNG(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedFailed, err)
	}

	// 1. Drop reserved-keyword text chunks so re-embedding never leaves
	// stale copies behind.
	kept := make([]pngChunk, 0, len(chunks)+3)
	for _, ch := range chunks {
		if kw, ok := textChunkKeyword(ch); ok && reservedPNGKeyword(kw) {
			continue
		}
		kept = append(kept, ch)
	}

	// 2. Build the owned chunks. The note itself goes into iTXt because
	// tEXt is limited to Latin-1.
	flag := pngFlagFalse
	if note.IsEncrypted {
		flag = pngFlagTrue
	}
	owned := []pngChunk{
		newITXtChunk(pngKeywordFor[models.FieldNote], note.Content),
		newTEXtChunk(pngKeywordFor[models.FieldEncrypted], flag),
		newTEXtChunk(pngKeywordFor[models.FieldVersion], note.Version),
	}

	// 3. Insert before the final IEND chunk. parsePNG guarantees the
	// last chunk is IEND, and IEND is never a text chunk.
	out := make([]pngChunk, 0, len(kept)+len(owned))
	out = append(out, kept[:len(kept)-1]...)
	out = append(out, owned...)
	out = append(out, kept[len(kept)-1])

	return c.serialize(out), nil
}

// Extract implements [NoteCodec]. It scans tEXt, zTXt and iTXt chunks
// for the reserved keywords; the first note chunk wins.
func (c *pngCodec) Extract(data []byte) (models.ExtractResult, error) {
	chunks, err := parsePNG(data)
	if err != nil {
		return models.ExtractResult{}, err
	}

	var (
		note    *string
		flag    *bool
		version string
	)
	for _, ch := range chunks {
		kw, ok := textChunkKeyword(ch)
		if !ok {
			continue
		}

		switch kw {
		case pngKeywordFor[models.FieldNote]:
			if note != nil {
				continue
			}
			v, err := textChunkValue(ch)
			if err != nil {
				return models.ExtractResult{}, fmt.Errorf("%w: note chunk: %w", errExtract, err)
			}
			note = &v
		case pngKeywordFor[models.FieldEncrypted]:
			v, err := textChunkValue(ch)
			if err != nil {
				return models.ExtractResult{}, fmt.Errorf("%w: flag chunk: %w", errExtract, err)
			}
			b := v == pngFlagTrue
			flag = &b
		case pngKeywordFor[models.FieldVersion]:
			v, err := textChunkValue(ch)
			if err != nil {
				return models.ExtractResult{}, fmt.Errorf("%w: version chunk: %w", errExtract, err)
			}
			version = v
		}
	}

	if note == nil {
		return models.ExtractResult{}, nil
	}

	encrypted := false
	if flag != nil {
		encrypted = *flag
	} else if _, ok := models.ParseEncryptedNote(*note); ok {
		// The flag chunk was stripped by a foreign tool; the envelope
		// shape still identifies the payload as encrypted.
		encrypted = true
	}

	return models.ExtractResult{
		Found:       true,
		Note:        *note,
		IsEncrypted: encrypted,
		Version:     version,
	}, nil
}

// serialize writes signature and chunks into a pooled buffer and
// returns a fresh copy of the assembled file.
func (c *pngCodec) serialize(chunks []pngChunk) []byte {
	buf := c.bufs.get()
	defer c.bufs.put(buf)

	buf.Write(pngSignature)

	var word [4]byte
	for _, ch := range chunks {
		binary.BigEndian.PutUint32(word[:], uint32(len(ch.data)))
		buf.Write(word[:])
		buf.WriteString(ch.ctype)
		buf.Write(ch.data)
		binary.BigEndian.PutUint32(word[:], ch.crc)
		buf.Write(word[:])
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// textChunkKeyword returns the keyword of a tEXt, zTXt or iTXt chunk.
func textChunkKeyword(ch pngChunk) (string, bool) {
	switch ch.ctype {
	case chunkTEXT, chunkZTXT, chunkITXT:
		if i := bytes.IndexByte(ch.data, 0); i > 0 {
			return string(ch.data[:i]), true
		}
	}

	return "", false
}

// reservedPNGKeyword reports whether kw is one of the keywords this
// codec owns.
func reservedPNGKeyword(kw string) bool {
	for _, owned := range pngKeywordFor {
		if kw == owned {
			return true
		}
	}

	return false
}

// textChunkValue decodes the text payload of a tEXt, zTXt or iTXt
// chunk, inflating compressed variants.
func textChunkValue(ch pngChunk) (string, error) {
	i := bytes.IndexByte(ch.data, 0)
	if i < 0 {
		return "", fmt.Errorf("missing keyword terminator")
	}
	rest := ch.data[i+1:]

	switch ch.ctype {
	case chunkTEXT:
		return string(rest), nil

	case chunkZTXT:
		if len(rest) < 1 {
			return "", fmt.Errorf("zTXt chunk too short")
		}
		// rest[0] is the compression method; zlib (0) is the only
		// method defined by the PNG spec.
		return inflateText(rest[1:])

	case chunkITXT:
		if len(rest) < 2 {
			return "", fmt.Errorf("iTXt chunk too short")
		}
		compressed := rest[0] == 1
		rest = rest[2:] // skip compression flag + method

		// Skip language tag and translated keyword.
		for n := 0; n < 2; n++ {
			j := bytes.IndexByte(rest, 0)
			if j < 0 {
				return "", fmt.Errorf("malformed iTXt header")
			}
			rest = rest[j+1:]
		}

		if compressed {
			return inflateText(rest)
		}
		return string(rest), nil
	}

	return "", fmt.Errorf("chunk %q carries no text", ch.ctype)
}

// inflateText decompresses a zlib-deflated text payload.
func inflateText(b []byte) (string, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("inflate text: %w", err)
	}

	return string(out), nil
}
