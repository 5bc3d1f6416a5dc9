package cli

import (
	"errors"

	"github.com/eyad6789/images-with-memory/internal/app"
	"github.com/eyad6789/images-with-memory/internal/batch"
	"github.com/eyad6789/images-with-memory/internal/codec"
	"github.com/eyad6789/images-with-memory/internal/config"
	"github.com/eyad6789/images-with-memory/internal/crypto"
	"github.com/eyad6789/images-with-memory/internal/service"
	"github.com/eyad6789/images-with-memory/internal/store"
	"github.com/eyad6789/images-with-memory/internal/validators"
)

// Exit codes of the memoryink binary.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

var errorExitMap = map[error]int{
	ErrNoteSourceMissing:  ExitUsage,
	ErrNoteSourceConflict: ExitUsage,

	validators.ErrNoSource:        ExitUsage,
	validators.ErrAmbiguousSource: ExitUsage,
	validators.ErrTextNotUTF8:     ExitUsage,
	validators.ErrNoteTooLong:     ExitUsage,
	validators.ErrEmptyPassword:   ExitUsage,

	service.ErrPasswordRequired: ExitUsage,
	crypto.ErrEmptyPassword:     ExitUsage,
	batch.ErrNoTargets:          ExitUsage,

	config.ErrInvalidConcurrency: ExitUsage,
	config.ErrInvalidTimeout:     ExitUsage,
	config.ErrInvalidIterations:  ExitUsage,
	config.ErrUnknownOutput:      ExitUsage,

	service.ErrNoteNotFound:     ExitFailure,
	store.ErrSourceNotFound:     ExitFailure,
	store.ErrDestinationExists:  ExitFailure,
	codec.ErrUnsupportedFormat:  ExitFailure,
	codec.ErrEmbedFailed:        ExitFailure,
	crypto.ErrDecryptionFailed:  ExitFailure,
	crypto.ErrIntegrityMismatch: ExitFailure,
	crypto.ErrMalformedEnvelope: ExitFailure,

	ErrBatchHadFailures: ExitFailure,
}

// userMessages pins well-known failures to the short messages printed on
// stderr; the full error chain still goes to the log. Overlapping chains
// (a note too large arrives wrapped in the embed failure) map to the
// same message, so lookup order does not matter.
var userMessages = map[error]string{
	codec.ErrUnsupportedFormat: app.MsgUnsupportedFormat,
	codec.ErrEmbedFailed:       app.MsgEmbedFailed,
	codec.ErrNoteTooLarge:      app.MsgEmbedFailed,

	service.ErrNoteNotFound:     app.MsgNoNoteFound,
	service.ErrPasswordRequired: app.MsgNoteIsEncrypted,

	crypto.ErrDecryptionFailed:  app.MsgDecryptionFailed,
	crypto.ErrIntegrityMismatch: app.MsgIntegrityMismatch,
	crypto.ErrEmptyPassword:     app.MsgPasswordRequired,
	validators.ErrEmptyPassword: app.MsgPasswordRequired,

	store.ErrDestinationExists: app.MsgDestinationExists,
	store.ErrSourceNotFound:    app.MsgSourceNotFound,

	batch.ErrNoTargets: app.MsgNothingToScan,
}

// ExitCode maps err to the binary's exit code: 0 for nil, 2 for errors
// caused by the invocation itself, 1 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	for target, code := range errorExitMap {
		if errors.Is(err, target) {
			return code
		}
	}

	return ExitFailure
}

// UserMessage returns the short human message for err. Unlisted errors
// fall back to their own text.
func UserMessage(err error) string {
	for target, message := range userMessages {
		if errors.Is(err, target) {
			return message
		}
	}

	return err.Error()
}
