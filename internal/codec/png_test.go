// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"bytes"
	"compress/zlib"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/eyad6789/images-with-memory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPNGCodec() *pngCodec {
	return newPNGCodec(newBufferPool())
}

// encodePNGFixture renders a small RGBA image through the standard
// encoder, giving a structurally valid PNG with no text chunks.
func encodePNGFixture(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for x := 0; x < 3; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(90 * y), B: 0xCC, A: 0xFF})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

// insertChunks places extra chunks right before IEND, simulating
// metadata written by another tool.
func insertChunks(t *testing.T, src []byte, extra ...pngChunk) []byte {
	t.Helper()

	chunks, err := parsePNG(src)
	require.NoError(t, err)

	out := append([]pngChunk{}, chunks[:len(chunks)-1]...)
	out = append(out, extra...)
	out = append(out, chunks[len(chunks)-1])

	return newTestPNGCodec().serialize(out)
}

func deflateText(t *testing.T, s string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// --- Embed / Extract ---

func TestPNGCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		note models.Note
	}{
		{
			name: "simple note",
			note: models.Note{Content: "Summer 2023 - Maya's first steps", Version: "1.2.0"},
		},
		{
			name: "multi-byte content",
			note: models.Note{Content: "Лето 2023 — первые шаги Майи 👣 美しい思い出", Version: "1.2.0"},
		},
		{
			name: "empty note",
			note: models.Note{Content: "", Version: "1.2.0"},
		},
		{
			name: "long note",
			note: models.Note{Content: strings.Repeat("The quick brown fox jumps over the lazy dog. ", 250), Version: "1.2.0"},
		},
		{
			name: "encrypted payload",
			note: models.Note{Content: "opaque envelope body", IsEncrypted: true, Version: "1.2.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestPNGCodec()

			out, err := c.Embed(encodePNGFixture(t), tt.note)
			require.NoError(t, err)

			got, err := c.Extract(out)
			require.NoError(t, err)

			assert.True(t, got.Found)
			assert.Equal(t, tt.note.Content, got.Note)
			assert.Equal(t, tt.note.IsEncrypted, got.IsEncrypted)
			assert.Equal(t, tt.note.Version, got.Version)
		})
	}
}

func TestPNGCodec_Embed_WritesChunksBeforeIEND(t *testing.T) {
	c := newTestPNGCodec()

	out, err := c.Embed(encodePNGFixture(t), models.Note{Content: "hello", Version: "1.0.0"})
	require.NoError(t, err)

	chunks, err := parsePNG(out)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(chunks), 4)

	last := chunks[len(chunks)-4:]
	assert.Equal(t, chunkITXT, last[0].ctype)
	assert.Equal(t, chunkTEXT, last[1].ctype)
	assert.Equal(t, chunkTEXT, last[2].ctype)
	assert.Equal(t, chunkIEND, last[3].ctype)

	kw, ok := textChunkKeyword(last[0])
	require.True(t, ok)
	assert.Equal(t, "MemoryInkNote", kw)
	kw, ok = textChunkKeyword(last[1])
	require.True(t, ok)
	assert.Equal(t, "MemoryInkEncrypted", kw)
	kw, ok = textChunkKeyword(last[2])
	require.True(t, ok)
	assert.Equal(t, "MemoryInkVersion", kw)
}

func TestPNGCodec_Embed_Idempotent(t *testing.T) {
	c := newTestPNGCodec()

	first, err := c.Embed(encodePNGFixture(t), models.Note{Content: "first note", Version: "1.0.0"})
	require.NoError(t, err)
	second, err := c.Embed(first, models.Note{Content: "second note", Version: "1.1.0"})
	require.NoError(t, err)

	chunks, err := parsePNG(second)
	require.NoError(t, err)

	reserved := 0
	for _, ch := range chunks {
		if kw, ok := textChunkKeyword(ch); ok && reservedPNGKeyword(kw) {
			reserved++
		}
	}
	assert.Equal(t, 3, reserved, "re-embedding must not leave stale copies")

	got, err := c.Extract(second)
	require.NoError(t, err)
	assert.Equal(t, "second note", got.Note)
	assert.Equal(t, "1.1.0", got.Version)
}

func TestPNGCodec_Embed_PreservesForeignMetadata(t *testing.T) {
	foreign := newTEXtChunk("Author", "Jane Doe")
	// A chunk whose stored CRC does not match its payload must survive
	// bit-exact; rewriting it would change bytes this codec does not own.
	odd := pngChunk{ctype: "prVt", data: []byte{0x01, 0x02, 0x03}, crc: 0xDEADBEEF}

	src := insertChunks(t, encodePNGFixture(t), foreign, odd)

	c := newTestPNGCodec()
	out, err := c.Embed(src, models.Note{Content: "note", Version: "1.0.0"})
	require.NoError(t, err)

	chunks, err := parsePNG(out)
	require.NoError(t, err)

	var gotForeign, gotOdd *pngChunk
	for i := range chunks {
		switch {
		case chunks[i].ctype == chunkTEXT && bytes.HasPrefix(chunks[i].data, []byte("Author\x00")):
			gotForeign = &chunks[i]
		case chunks[i].ctype == "prVt":
			gotOdd = &chunks[i]
		}
	}

	require.NotNil(t, gotForeign)
	assert.Equal(t, foreign.data, gotForeign.data)
	assert.Equal(t, foreign.crc, gotForeign.crc)

	require.NotNil(t, gotOdd)
	assert.Equal(t, odd.data, gotOdd.data)
	assert.Equal(t, uint32(0xDEADBEEF), gotOdd.crc)
}

func TestPNGCodec_Embed_ImageDataUntouched(t *testing.T) {
	src := encodePNGFixture(t)

	c := newTestPNGCodec()
	out, err := c.Embed(src, models.Note{Content: "note", Version: "1.0.0"})
	require.NoError(t, err)

	srcChunks, err := parsePNG(src)
	require.NoError(t, err)
	outChunks, err := parsePNG(out)
	require.NoError(t, err)

	pixels := func(chunks []pngChunk) []pngChunk {
		var kept []pngChunk
		for _, ch := range chunks {
			if kw, ok := textChunkKeyword(ch); ok && reservedPNGKeyword(kw) {
				continue
			}
			kept = append(kept, ch)
		}
		return kept
	}

	assert.Equal(t, pixels(srcChunks), pixels(outChunks))
}

func TestPNGCodec_Embed_StdlibDecodable(t *testing.T) {
	c := newTestPNGCodec()

	out, err := c.Embed(encodePNGFixture(t), models.Note{Content: "note", Version: "1.0.0"})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

// --- Extract edge cases ---

func TestPNGCodec_Extract_NoNote(t *testing.T) {
	got, err := newTestPNGCodec().Extract(encodePNGFixture(t))
	require.NoError(t, err)
	assert.Equal(t, models.ExtractResult{}, got)
}

func TestPNGCodec_Extract_ForeignCompressedNote(t *testing.T) {
	// Another writer may store the note chunk zlib-compressed.
	payload := append([]byte("MemoryInkNote\x00\x00"), deflateText(t, "compressed note")...)
	ztxt := newChunk(chunkZTXT, payload)
	flag := newTEXtChunk("MemoryInkEncrypted", "false")

	src := insertChunks(t, encodePNGFixture(t), ztxt, flag)

	got, err := newTestPNGCodec().Extract(src)
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.Equal(t, "compressed note", got.Note)
	assert.False(t, got.IsEncrypted)
}

func TestPNGCodec_Extract_EnvelopeShapeWithoutFlag(t *testing.T) {
	envelope := models.EncryptedNote{
		Format:      models.EnvelopeFormat,
		KDF:         models.KDFPBKDF2SHA256,
		Iterations:  100000,
		Salt:        bytes.Repeat([]byte{0x01}, 32),
		IV:          bytes.Repeat([]byte{0x02}, 16),
		Ciphertext:  []byte("ct"),
		AuthTag:     bytes.Repeat([]byte{0x03}, 16),
		ContentHash: strings.Repeat("ab", 32),
	}
	body, err := envelope.Encode()
	require.NoError(t, err)

	// Only the note chunk survives; the flag chunk was stripped.
	note := newITXtChunk("MemoryInkNote", body)
	src := insertChunks(t, encodePNGFixture(t), note)

	got, err := newTestPNGCodec().Extract(src)
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.True(t, got.IsEncrypted, "envelope shape identifies the payload as encrypted")
}

func TestPNGCodec_Extract_FirstNoteWins(t *testing.T) {
	a := newITXtChunk("MemoryInkNote", "first")
	b := newITXtChunk("MemoryInkNote", "second")
	src := insertChunks(t, encodePNGFixture(t), a, b)

	got, err := newTestPNGCodec().Extract(src)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Note)
}

// --- Malformed input ---

func TestParsePNG_Malformed(t *testing.T) {
	valid := encodePNGFixture(t)

	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "bad signature", data: []byte("definitely not a png")},
		{name: "truncated", data: valid[:len(valid)-10]},
		{
			name: "oversized chunk length",
			data: append(append([]byte{}, pngSignature...), 0xFF, 0xFF, 0xFF, 0xFF, 'I', 'H', 'D', 'R'),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parsePNG(tt.data)
			require.ErrorIs(t, err, errExtract)
		})
	}
}
