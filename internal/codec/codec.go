package codec

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/eyad6789/images-with-memory/internal/logger"
	"github.com/eyad6789/images-with-memory/models"
)

// bufferPool recycles the scratch buffers the codecs assemble rewritten
// files in. One pool is shared by every codec of a dispatcher, so batch
// runs reuse warm buffers instead of growing a fresh one per file.
type bufferPool struct {
	pool sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() any {
				return new(bytes.Buffer)
			},
		},
	}
}

func (p *bufferPool) get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

func (p *bufferPool) put(buf *bytes.Buffer) {
	buf.Reset()
	p.pool.Put(buf)
}

// dispatcher is the concrete implementation of [CodecDispatcher].
type dispatcher struct {
	// codecs maps each supported format to its codec. Populated once at
	// construction, read-only afterwards.
	codecs map[models.ImageFormat]NoteCodec
}

// NewDispatcher constructs a CodecDispatcher with the JPEG and PNG
// codecs registered over a shared buffer pool.
//
// The returned dispatcher is safe for concurrent use; all state is
// read-only after construction.
func NewDispatcher() CodecDispatcher {
	bufs := newBufferPool()

	return &dispatcher{
		codecs: map[models.ImageFormat]NoteCodec{
			models.FormatJPEG: newJPEGCodec(bufs),
			models.FormatPNG:  newPNGCodec(bufs),
		},
	}
}

// Detect implements [CodecDispatcher].
func (d *dispatcher) Detect(ctx context.Context, path string, data []byte) (models.ImageFormat, error) {
	// Memory-backed sources carry no path, so the magic bytes decide alone.
	if path == "" {
		if byMagic := formatFromMagic(data); byMagic != models.FormatUnknown {
			return byMagic, nil
		}
		return models.FormatUnknown, fmt.Errorf("%w: unrecognized image content", ErrUnsupportedFormat)
	}

	byExt := formatFromExtension(path)
	if byExt == models.FormatUnknown {
		return models.FormatUnknown, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	if len(data) > 0 {
		if byMagic := formatFromMagic(data); byMagic != byExt {
			log := logger.FromContext(ctx)
			log.Debug().
				Str("path", path).
				Str("extension", byExt.String()).
				Str("content", byMagic.String()).
				Msg("file extension disagrees with file content")

			return models.FormatUnknown, fmt.Errorf("%w: extension %q does not match file content", ErrUnsupportedFormat, filepath.Ext(path))
		}
	}

	return byExt, nil
}

// Embed implements [CodecDispatcher].
func (d *dispatcher) Embed(ctx context.Context, format models.ImageFormat, data []byte, note models.Note) ([]byte, error) {
	codec, ok := d.codecs[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	out, err := codec.Embed(data, note)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Err(err).Str("format", format.String()).Msg("embedding note into image failed")
		return nil, err
	}

	return out, nil
}

// Extract implements [CodecDispatcher].
func (d *dispatcher) Extract(ctx context.Context, format models.ImageFormat, data []byte) (models.ExtractResult, error) {
	codec, ok := d.codecs[format]
	if !ok {
		return models.ExtractResult{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	result, err := codec.Extract(data)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Debug().Err(err).
			Str("format", format.String()).
			Msg("metadata read failed, treating file as carrying no note")

		return models.ExtractResult{}, nil
	}

	return result, nil
}

// formatFromExtension maps a file extension to its image format.
func formatFromExtension(path string) models.ImageFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return models.FormatJPEG
	case ".png":
		return models.FormatPNG
	}

	return models.FormatUnknown
}

// formatFromMagic maps the leading magic bytes to an image format.
func formatFromMagic(data []byte) models.ImageFormat {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == markerSOI && data[2] == 0xFF:
		return models.FormatJPEG
	case len(data) >= len(pngSignature) && bytes.Equal(data[:len(pngSignature)], pngSignature):
		return models.FormatPNG
	}

	return models.FormatUnknown
}
