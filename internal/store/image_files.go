// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eyad6789/images-with-memory/internal/logger"
	"github.com/eyad6789/images-with-memory/internal/utils"
)

// imageFileStore is the local-filesystem implementation of [ImageFileStore].
// It loads source photographs into memory for the codecs and writes annotated
// copies back to disk.
//
// Writes are atomic with respect to the destination path: the payload is first
// written to a uniquely named temporary file in the destination directory and
// then moved into place with a rename. A crash mid-write leaves either the old
// file or no file, never a half-written image.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, per-run tracing of filesystem interactions.
type imageFileStore struct {
	logger *logger.Logger
	uuids  *utils.UUIDGenerator
}

// NewImageFileStore constructs an [ImageFileStore] backed by the local
// filesystem. Temporary file names used by atomic writes are suffixed with
// identifiers from the provided generator.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewImageFileStore(uuids *utils.UUIDGenerator, logger *logger.Logger) ImageFileStore {
	logger.Debug().Msg("creating image file store")
	return &imageFileStore{
		logger: logger,
		uuids:  uuids,
	}
}

// Read loads the entire image file at path into memory.
//
// Error handling:
//   - Missing file → [ErrSourceNotFound].
//   - Any other filesystem error → wrapped as "read source image".
func (s *imageFileStore) Read(ctx context.Context, path string) ([]byte, error) {
	log := logger.FromContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSourceNotFound
		}
		log.Err(err).Str("path", path).Msg("error: reading source image")
		return nil, fmt.Errorf("read source image: %w", err)
	}

	return data, nil
}

// Write persists data to path, replacing the destination atomically.
//
// Missing parent directories are created. When overwrite is false an existing
// destination is left untouched and [ErrDestinationExists] is returned.
//
// Error handling:
//   - Occupied destination without overwrite → [ErrDestinationExists].
//   - Any other filesystem error → wrapped with the failing step.
func (s *imageFileStore) Write(ctx context.Context, path string, data []byte, overwrite bool) error {
	log := logger.FromContext(ctx)

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return ErrDestinationExists
		} else if !os.IsNotExist(err) {
			log.Err(err).Str("path", path).Msg("error: checking destination")
			return fmt.Errorf("stat destination file: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Err(err).Str("path", path).Msg("error: creating destination directory")
			return fmt.Errorf("create destination dir: %w", err)
		}
	}

	// Temporary file lives next to the destination so the rename stays on
	// one filesystem.
	tmp := path + ".tmp-" + s.uuids.Generate()
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		log.Err(err).Str("path", tmp).Msg("error: writing temporary file")
		return fmt.Errorf("write temporary file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		log.Err(err).Str("path", path).Msg("error: moving temporary file into place")
		_ = os.Remove(tmp)
		return fmt.Errorf("replace destination file: %w", err)
	}

	return nil
}
