// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cli turns parsed command-line invocations into service calls
// and renders their results as human text or JSON.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"

	"github.com/eyad6789/images-with-memory/internal/app"
	"github.com/eyad6789/images-with-memory/internal/batch"
	"github.com/eyad6789/images-with-memory/internal/config"
	"github.com/eyad6789/images-with-memory/internal/logger"
	"github.com/eyad6789/images-with-memory/internal/service"
	"github.com/eyad6789/images-with-memory/models"
)

// App coordinates the CLI commands: it resolves command options into
// service requests, runs them and renders the results.
type App struct {
	// notes runs the single-image operations.
	notes service.NoteService

	// batch runs the multi-file scan and verify operations.
	batch batch.Runner

	// cfg selects the output format and batch behavior.
	cfg *config.Config

	// out receives command output: notes, reports, confirmations.
	out io.Writer

	// logger is the structured logger used for diagnostic output.
	logger *logger.Logger
}

// EmbedOptions carries the embed subcommand's flags and argument.
type EmbedOptions struct {
	// Image is the target image file.
	Image string

	// Text is the note text from -text. Meaningful when TextSet is true.
	Text string

	// TextSet reports whether -text was given explicitly, which keeps an
	// empty -text "" distinguishable from a missing flag.
	TextSet bool

	// TextFile names a file whose content becomes the note text.
	TextFile string

	// Password enables encryption when non-empty.
	Password string

	// OutPath is the destination file; empty embeds in place.
	OutPath string

	// Force allows overwriting an existing destination file.
	Force bool
}

// ExtractOptions carries the extract subcommand's flags and argument.
type ExtractOptions struct {
	// Image is the source image file.
	Image string

	// Password decrypts an encrypted note. Ignored for plaintext notes.
	Password string

	// OutPath writes the note there instead of standard output.
	OutPath string

	// Copy also places the note text on the system clipboard.
	Copy bool
}

// ScanOptions carries the scan subcommand's flags and arguments.
type ScanOptions struct {
	// Paths lists the file and directory targets.
	Paths []string

	// Recursive walks directory targets into their subdirectories.
	Recursive bool
}

// VerifyOptions carries the verify subcommand's flags and arguments.
type VerifyOptions struct {
	// Paths lists the file and directory targets.
	Paths []string

	// Recursive walks directory targets into their subdirectories.
	Recursive bool
}

// NewApp constructs the CLI application over the given service, batch
// runner and configuration. Command output goes to out; diagnostics go
// to the logger.
func NewApp(
	notes service.NoteService,
	runner batch.Runner,
	cfg *config.Config,
	out io.Writer,
	logger *logger.Logger,
) *App {
	return &App{
		notes:  notes,
		batch:  runner,
		cfg:    cfg,
		out:    out,
		logger: logger,
	}
}

// Embed writes a note into the image named by opts. A non-empty
// password seals the note into an encrypted envelope first.
func (a *App) Embed(ctx context.Context, opts EmbedOptions) error {
	text, err := a.noteText(opts)
	if err != nil {
		return err
	}

	result, err := a.notes.Embed(ctx, models.EmbedRequest{
		Path:      opts.Image,
		OutPath:   opts.OutPath,
		Overwrite: opts.Force,
		Text:      text,
		Encrypt:   opts.Password != "",
		Password:  opts.Password,
	})
	if err != nil {
		return err
	}

	return a.renderEmbed(result)
}

// Extract reads the note out of the image named by opts and delivers
// its readable text: to standard output, to the -out file, and, when
// requested, onto the system clipboard.
//
// Extraction always goes through the reveal pipeline, so an encrypted
// note without a password fails with [service.ErrPasswordRequired]
// instead of leaking the raw envelope.
func (a *App) Extract(ctx context.Context, opts ExtractOptions) error {
	note, err := a.notes.Reveal(ctx, models.RevealRequest{
		Path:     opts.Image,
		Password: opts.Password,
	})
	if err != nil {
		return err
	}

	if err := a.renderNote(note, opts.OutPath); err != nil {
		return err
	}

	if opts.Copy {
		if err := clipboard.WriteAll(note); err != nil {
			return fmt.Errorf("copy note to clipboard: %w", err)
		}
	}

	return nil
}

// Scan runs the extract-many pipeline over the given targets and
// renders the aggregated report.
func (a *App) Scan(ctx context.Context, opts ScanOptions) error {
	return a.runBatch(ctx, models.BatchRequest{
		Paths:     opts.Paths,
		Recursive: opts.Recursive,
	})
}

// Verify runs the presence check over the given targets: note present,
// encrypted or not, producer version. Nothing is decrypted.
func (a *App) Verify(ctx context.Context, opts VerifyOptions) error {
	return a.runBatch(ctx, models.BatchRequest{
		Paths:      opts.Paths,
		Recursive:  opts.Recursive,
		VerifyOnly: true,
	})
}

// runBatch is the shared engine behind Scan and Verify. An interrupted
// run still renders the partial report before surfacing the error.
func (a *App) runBatch(ctx context.Context, request models.BatchRequest) error {
	report, runErr := a.batch.Run(ctx, request)
	if runErr != nil && report.RunID == "" {
		return runErr
	}

	if err := a.renderBatch(report, request.VerifyOnly); err != nil {
		return err
	}

	if runErr != nil {
		return runErr
	}

	return a.batchOutcome(report)
}

// batchOutcome converts per-file failures into the run's exit status.
// The failures themselves are already visible in the rendered report.
func (a *App) batchOutcome(report models.BatchReport) error {
	if report.Failed == 0 {
		return nil
	}

	if a.cfg.Batch.FailFast {
		return fmt.Errorf("%w: %s", ErrBatchHadFailures, app.MsgBatchAborted)
	}

	return fmt.Errorf("%w: %d of %d files", ErrBatchHadFailures, report.Failed, len(report.Files))
}

// noteText resolves the note text of an embed invocation from -text or
// -text-file. Exactly one of the two must be given; an empty -text ""
// is a valid way to clear a note.
func (a *App) noteText(opts EmbedOptions) (string, error) {
	switch {
	case opts.TextSet && opts.TextFile != "":
		return "", ErrNoteSourceConflict
	case !opts.TextSet && opts.TextFile == "":
		return "", ErrNoteSourceMissing
	case opts.TextFile != "":
		raw, err := os.ReadFile(opts.TextFile)
		if err != nil {
			return "", fmt.Errorf("read note text file: %w", err)
		}
		return string(raw), nil
	}

	return opts.Text, nil
}
