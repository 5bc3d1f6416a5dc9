package cli

import "errors"

var (
	// ErrNoteSourceMissing means the embed invocation named neither
	// -text nor -text-file.
	ErrNoteSourceMissing = errors.New("either -text or -text-file must be given")

	// ErrNoteSourceConflict means the embed invocation named both -text
	// and -text-file.
	ErrNoteSourceConflict = errors.New("-text and -text-file are mutually exclusive")

	// ErrBatchHadFailures marks a finished batch run whose report
	// contains failed files.
	ErrBatchHadFailures = errors.New("batch finished with failures")
)
