package models

// BatchRequest describes a multi-file run over file and directory
// targets.
type BatchRequest struct {
	// Paths lists the file and directory targets to process.
	Paths []string

	// Recursive walks directory targets into their subdirectories.
	Recursive bool

	// VerifyOnly limits the run to presence checks: note text is not
	// carried into the per-file reports.
	VerifyOnly bool
}

// FileReport is the per-file outcome of a batch run.
type FileReport struct {
	// Path is the scanned image file.
	Path string `json:"path"`

	// Format is the detected image format name, when known.
	Format string `json:"format,omitempty"`

	// Found reports whether the file carries a note.
	Found bool `json:"found"`

	// Note is the extracted note text. Empty for encrypted notes and in
	// verify-only runs.
	Note string `json:"note,omitempty"`

	// Encrypted indicates whether the stored note is encrypted.
	Encrypted bool `json:"encrypted,omitempty"`

	// Version is the producer version marker, when present.
	Version string `json:"version,omitempty"`

	// Err holds the failure message for this file, empty on success.
	Err string `json:"error,omitempty"`
}

// BatchReport aggregates the outcomes of one batch run.
type BatchReport struct {
	// RunID uniquely identifies the run in logs and output.
	RunID string `json:"run_id"`

	// Files lists per-file outcomes in completion order.
	Files []FileReport `json:"files"`

	// Scanned is the number of image files processed.
	Scanned int `json:"scanned"`

	// WithNote is the number of files carrying a note.
	WithNote int `json:"with_note"`

	// Failed is the number of files that ended in an error.
	Failed int `json:"failed"`

	// Skipped is the number of directory entries ignored because they
	// are not supported image files.
	Skipped int `json:"skipped"`

	// ElapsedMS is the wall-clock duration of the run in milliseconds.
	ElapsedMS int64 `json:"elapsed_ms"`
}
