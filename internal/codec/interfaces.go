// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package codec

import (
	"context"

	"github.com/eyad6789/images-with-memory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_dispatcher_mock.go -package=mock

// NoteCodec is the per-format embed/extract contract. Implementations
// operate on whole files in memory and must keep every metadata field
// they do not own byte-identical across a rewrite.
type NoteCodec interface {
	// Format reports the image format this codec handles.
	Format() models.ImageFormat

	// Embed returns a rewritten copy of data with the note stored in
	// the format's metadata fields. Re-embedding replaces previously
	// written fields, never duplicates them.
	Embed(data []byte, note models.Note) ([]byte, error)

	// Extract reads the note fields out of data. A file without a note
	// yields a zero [models.ExtractResult] and no error.
	Extract(data []byte) (models.ExtractResult, error)
}

// CodecDispatcher routes images to the codec matching their format. It
// is the single entry point the rest of the application uses to touch
// image metadata.
type CodecDispatcher interface {
	// Detect resolves the image format from the file extension and the
	// leading magic bytes. Both must agree; a mismatch or an unknown
	// extension yields [ErrUnsupportedFormat]. With empty data the
	// check is extension-only, which lets directory scans filter
	// candidates before reading file contents. With an empty path
	// (memory-backed sources) the magic bytes decide alone.
	Detect(ctx context.Context, path string, data []byte) (models.ImageFormat, error)

	// Embed writes the note into an in-memory image and returns the
	// rewritten file. Failures yield [ErrEmbedFailed]; a note
	// exceeding the format's metadata limits additionally matches
	// [ErrNoteTooLarge].
	Embed(ctx context.Context, format models.ImageFormat, data []byte, note models.Note) ([]byte, error)

	// Extract reads the note out of an in-memory image. Damaged
	// metadata is not an error: the result degrades to "no note
	// found" and the cause is logged at debug level.
	Extract(ctx context.Context, format models.ImageFormat, data []byte) (models.ExtractResult, error)
}
