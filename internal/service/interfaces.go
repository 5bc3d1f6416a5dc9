package service

import (
	"context"

	"github.com/eyad6789/images-with-memory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/note_service_mock.go -package=mock

// NoteService is the high-level API for attaching memories to images.
// It composes the file store, the format dispatcher and the note cipher
// behind one interface so consumers never touch codecs directly.
type NoteService interface {
	// Embed validates the request, optionally encrypts the note text and
	// writes it into the image. File-backed requests are written to the
	// destination path atomically; memory-backed requests return the
	// rewritten image in [models.EmbedResult.Data].
	Embed(ctx context.Context, request models.EmbedRequest) (models.EmbedResult, error)

	// Extract reads the stored note out of the image without decrypting
	// it. A readable image of a supported format never fails: damaged
	// metadata degrades to Found == false.
	Extract(ctx context.Context, request models.ExtractRequest) (models.ExtractResult, error)

	// Reveal extracts the note and returns its readable text. Plaintext
	// notes pass through unchanged; encrypted notes are decrypted with
	// the request password and integrity-checked.
	// Returns [ErrNoteNotFound] when the image carries no note and
	// [ErrPasswordRequired] when an encrypted note is found but no
	// password was supplied.
	Reveal(ctx context.Context, request models.RevealRequest) (string, error)

	// Verify reports whether the image carries a note, whether it is
	// encrypted and which producer version wrote it. The note is never
	// decrypted, so no password is involved.
	Verify(ctx context.Context, request models.VerifyRequest) (models.ExtractResult, error)
}
