// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/eyad6789/images-with-memory/internal/codec"
	"github.com/eyad6789/images-with-memory/internal/config"
	"github.com/eyad6789/images-with-memory/internal/crypto"
	"github.com/eyad6789/images-with-memory/internal/logger"
	"github.com/eyad6789/images-with-memory/internal/store"
	"github.com/eyad6789/images-with-memory/internal/validators"
	"github.com/eyad6789/images-with-memory/models"
)

// noteService is the concrete implementation of NoteService.
// It validates requests, resolves the image source, routes the bytes
// through the format dispatcher and applies the cipher on the way in
// (embed with encryption) and on the way out (reveal).
type noteService struct {
	// files reads source images and writes annotated copies atomically.
	files store.ImageFileStore

	// dispatcher detects image formats and routes to the per-format codecs.
	dispatcher codec.CodecDispatcher

	// cipher seals and opens password-protected note envelopes.
	cipher crypto.NoteCipherService

	// validator rejects malformed requests before any I/O happens.
	validator validators.Validator

	// producerVersion is stamped into the version marker field of every
	// note this service embeds.
	producerVersion string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given store,
// dispatcher and cipher, stamping notes with the application version
// from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewNoteService(
	files store.ImageFileStore,
	dispatcher codec.CodecDispatcher,
	cipher crypto.NoteCipherService,
	cfg config.App,
	logger *logger.Logger,
) NoteService {
	return &noteService{
		files:           files,
		dispatcher:      dispatcher,
		cipher:          cipher,
		validator:       validators.NewRequestValidator(),
		producerVersion: cfg.Version,
		logger:          logger,
	}
}

// Embed writes a note into an image.
//
// The pipeline: validate the request, load the source bytes, detect the
// format, optionally seal the text into an encrypted envelope, run the
// format codec, and deliver the rewritten image. File-backed requests
// write to OutPath (or back to the source path when OutPath is empty);
// memory-backed requests return the bytes in [models.EmbedResult.Data].
//
// Returns a zero result and:
//   - A wrapped validation error if the request shape is invalid.
//   - [store.ErrSourceNotFound] if the source file does not exist.
//   - [codec.ErrUnsupportedFormat] if the image is not a JPEG or PNG.
//   - A wrapped [codec.ErrEmbedFailed] if the metadata write fails.
//   - [store.ErrDestinationExists] if the destination is occupied and
//     overwriting was not requested.
func (s *noteService) Embed(ctx context.Context, request models.EmbedRequest) (models.EmbedResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("path", request.Path).Msg("embed request rejected by validation")
		return models.EmbedResult{}, fmt.Errorf("validate embed request: %w", err)
	}

	data, err := s.sourceBytes(ctx, request.Path, request.Data)
	if err != nil {
		return models.EmbedResult{}, err
	}

	format, err := s.dispatcher.Detect(ctx, request.Path, data)
	if err != nil {
		return models.EmbedResult{}, err
	}

	note := models.Note{Content: request.Text, Version: s.producerVersion}
	if request.Encrypt {
		envelope, err := s.cipher.Encrypt(request.Text, request.Password)
		if err != nil {
			log.Err(err).Str("path", request.Path).Msg("note encryption failed")
			return models.EmbedResult{}, fmt.Errorf("encrypt note: %w", err)
		}

		encoded, err := envelope.Encode()
		if err != nil {
			return models.EmbedResult{}, fmt.Errorf("serialize encrypted note: %w", err)
		}

		note.Content = encoded
		note.IsEncrypted = true
	}

	out, err := s.dispatcher.Embed(ctx, format, data, note)
	if err != nil {
		return models.EmbedResult{}, fmt.Errorf("embed note: %w", err)
	}

	result := models.EmbedResult{
		Format:    format.String(),
		Encrypted: note.IsEncrypted,
	}

	if request.Path == "" {
		result.Data = out
		return result, nil
	}

	destination := request.OutPath
	overwrite := request.Overwrite
	if destination == "" {
		// In-place embed rewrites the source file.
		destination = request.Path
		overwrite = true
	}

	if err := s.files.Write(ctx, destination, out, overwrite); err != nil {
		log.Err(err).Str("path", destination).Msg("writing annotated image failed")
		return models.EmbedResult{}, fmt.Errorf("write annotated image: %w", err)
	}
	result.Path = destination

	return result, nil
}

// Extract reads the stored note out of an image without decrypting it.
//
// Returns a zero result and:
//   - A wrapped validation error if the request shape is invalid.
//   - [store.ErrSourceNotFound] if the source file does not exist.
//   - [codec.ErrUnsupportedFormat] if the image is not a JPEG or PNG.
//
// Damaged metadata inside a supported format is not an error: the
// dispatcher degrades it to Found == false.
func (s *noteService) Extract(ctx context.Context, request models.ExtractRequest) (models.ExtractResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("path", request.Path).Msg("extract request rejected by validation")
		return models.ExtractResult{}, fmt.Errorf("validate extract request: %w", err)
	}

	return s.extractFrom(ctx, request.Path, request.Data)
}

// Reveal extracts the note and returns its readable text.
//
// Plaintext notes pass through unchanged and the request password is
// ignored. For an encrypted note the envelope is parsed and opened with
// the password, and the recovered text is integrity-checked against the
// hash recorded at encryption time.
//
// Returns an empty string and:
//   - [ErrNoteNotFound] when the image carries no note.
//   - [ErrPasswordRequired] when the note is encrypted and the request
//     password is empty.
//   - [crypto.ErrMalformedEnvelope] when the encrypted flag is set but
//     the stored content is not a parsable envelope.
//   - A wrapped [crypto.ErrDecryptionFailed] on a wrong password and
//     [crypto.ErrIntegrityMismatch] on corrupted content.
func (s *noteService) Reveal(ctx context.Context, request models.RevealRequest) (string, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("path", request.Path).Msg("reveal request rejected by validation")
		return "", fmt.Errorf("validate reveal request: %w", err)
	}

	result, err := s.extractFrom(ctx, request.Path, request.Data)
	if err != nil {
		return "", err
	}

	if !result.Found {
		return "", ErrNoteNotFound
	}

	if !result.IsEncrypted {
		return result.Note, nil
	}

	if request.Password == "" {
		return "", ErrPasswordRequired
	}

	envelope, ok := models.ParseEncryptedNote(result.Note)
	if !ok {
		log.Error().Str("path", request.Path).Msg("note is flagged encrypted but its envelope cannot be parsed")
		return "", fmt.Errorf("parse note envelope: %w", crypto.ErrMalformedEnvelope)
	}

	plaintext, err := s.cipher.Decrypt(envelope, request.Password)
	if err != nil {
		log.Err(err).Str("path", request.Path).Msg("note decryption failed")
		return "", fmt.Errorf("decrypt note: %w", err)
	}

	return plaintext, nil
}

// Verify reports note presence, the encrypted flag and the producer
// version without decrypting anything.
//
// The error surface matches [noteService.Extract].
func (s *noteService) Verify(ctx context.Context, request models.VerifyRequest) (models.ExtractResult, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, request); err != nil {
		log.Err(err).Str("path", request.Path).Msg("verify request rejected by validation")
		return models.ExtractResult{}, fmt.Errorf("validate verify request: %w", err)
	}

	return s.extractFrom(ctx, request.Path, request.Data)
}

// sourceBytes resolves a request's image source: file-backed requests are
// read through the store, memory-backed requests pass their bytes through.
func (s *noteService) sourceBytes(ctx context.Context, path string, data []byte) ([]byte, error) {
	if path == "" {
		return data, nil
	}

	raw, err := s.files.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load source image: %w", err)
	}

	return raw, nil
}

// extractFrom runs the shared read-detect-extract pipeline behind
// Extract, Reveal and Verify.
func (s *noteService) extractFrom(ctx context.Context, path string, data []byte) (models.ExtractResult, error) {
	raw, err := s.sourceBytes(ctx, path, data)
	if err != nil {
		return models.ExtractResult{}, err
	}

	format, err := s.dispatcher.Detect(ctx, path, raw)
	if err != nil {
		return models.ExtractResult{}, err
	}

	result, err := s.dispatcher.Extract(ctx, format, raw)
	if err != nil {
		return models.ExtractResult{}, fmt.Errorf("extract note: %w", err)
	}

	return result, nil
}
