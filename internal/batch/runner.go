// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/eyad6789/images-with-memory/internal/codec"
	"github.com/eyad6789/images-with-memory/internal/config"
	"github.com/eyad6789/images-with-memory/internal/logger"
	"github.com/eyad6789/images-with-memory/internal/service"
	"github.com/eyad6789/images-with-memory/internal/utils"
	"github.com/eyad6789/images-with-memory/models"
)

// runner is the concrete implementation of Runner.
type runner struct {
	// notes runs the per-file extract or verify pipeline.
	notes service.NoteService

	// dispatcher filters directory entries down to supported image files
	// and stamps the detected format on report entries.
	dispatcher codec.CodecDispatcher

	// uuids mints the run identifier stamped on reports and log entries.
	uuids *utils.UUIDGenerator

	// concurrency is the number of files processed at the same time.
	concurrency int

	// failFast cancels the run on the first per-file failure.
	failFast bool

	// timeout bounds the whole run; zero means no bound.
	timeout time.Duration

	// logger is the structured logger used for diagnostic output.
	logger *logger.Logger
}

// collection is what target discovery hands to the worker pool.
type collection struct {
	// files are the image files to process.
	files []string

	// failed holds report entries for targets that could not be read.
	failed []models.FileReport

	// skipped counts directory entries ignored as non-image files.
	skipped int
}

// NewRunner constructs a Runner processing files with cfg.Concurrency
// workers. A concurrency below one falls back to sequential processing.
func NewRunner(
	notes service.NoteService,
	dispatcher codec.CodecDispatcher,
	uuids *utils.UUIDGenerator,
	cfg config.Batch,
	logger *logger.Logger,
) Runner {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &runner{
		notes:       notes,
		dispatcher:  dispatcher,
		uuids:       uuids,
		concurrency: concurrency,
		failFast:    cfg.FailFast,
		timeout:     cfg.Timeout,
		logger:      logger,
	}
}

// Run implements [Runner].
//
// Targets are collected up front: file arguments are taken as-is,
// directory arguments are walked for supported image files. The files
// then fan out over the worker pool and their outcomes land in the
// report in completion order.
func (r *runner) Run(ctx context.Context, request models.BatchRequest) (models.BatchReport, error) {
	if len(request.Paths) == 0 {
		return models.BatchReport{}, ErrNoTargets
	}

	runID := r.uuids.Generate()
	started := time.Now()

	// Every log entry below this point carries the run ID.
	runCtx := context.WithValue(ctx, utils.RunIDCtxKey, runID)
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, r.timeout)
		defer cancel()
	}

	log := logger.FromContext(runCtx)
	log.Debug().
		Int("targets", len(request.Paths)).
		Bool("recursive", request.Recursive).
		Bool("verify_only", request.VerifyOnly).
		Msg("starting batch run")

	targets := r.collectTargets(runCtx, request)

	report := models.BatchReport{
		RunID:   runID,
		Files:   make([]models.FileReport, 0, len(targets.files)+len(targets.failed)),
		Skipped: targets.skipped,
	}
	for _, bad := range targets.failed {
		report.Files = append(report.Files, bad)
		report.Failed++
	}

	if r.failFast && report.Failed > 0 {
		// A target already failed during collection.
		report.ElapsedMS = time.Since(started).Milliseconds()
		return report, nil
	}

	r.processAll(runCtx, targets.files, request.VerifyOnly, &report)

	report.ElapsedMS = time.Since(started).Milliseconds()
	log.Debug().
		Int("scanned", report.Scanned).
		Int("with_note", report.WithNote).
		Int("failed", report.Failed).
		Int("skipped", report.Skipped).
		Int64("elapsed_ms", report.ElapsedMS).
		Msg("batch run finished")

	if err := runCtx.Err(); err != nil {
		return report, fmt.Errorf("batch run interrupted: %w", err)
	}

	return report, nil
}

// collectTargets expands the request's file and directory targets into
// the list of image files to process. Directory entries that are not
// supported image files count as skipped; unreadable targets turn into
// failed report entries.
func (r *runner) collectTargets(ctx context.Context, request models.BatchRequest) collection {
	log := logger.FromContext(ctx)

	var c collection
	for _, target := range request.Paths {
		info, err := os.Stat(target)
		if err != nil {
			log.Warn().Err(err).Str("path", target).Msg("batch target is not readable")
			c.failed = append(c.failed, models.FileReport{Path: target, Err: err.Error()})
			continue
		}

		if !info.IsDir() {
			// Explicitly named files skip the extension filter, so an
			// unsupported one surfaces as a per-file error.
			c.files = append(c.files, target)
			continue
		}

		r.collectDir(ctx, target, request.Recursive, &c)
	}

	return c
}

// collectDir walks one directory target, keeping supported image files.
// The walk callback only ever returns the skip sentinels, so the walk
// itself cannot fail.
func (r *runner) collectDir(ctx context.Context, root string, recursive bool, c *collection) {
	log := logger.FromContext(ctx)

	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return fs.SkipAll
		}

		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("directory entry is not readable")
			c.failed = append(c.failed, models.FileReport{Path: path, Err: err.Error()})
			if entry != nil && entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if !recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}

		if _, err := r.dispatcher.Detect(ctx, path, nil); err != nil {
			c.skipped++
			return nil
		}

		c.files = append(c.files, path)
		return nil
	})
}

// processAll fans the files out over the worker pool and folds their
// outcomes into the report. With fail-fast configured the first failure
// cancels the remaining work.
func (r *runner) processAll(ctx context.Context, files []string, verifyOnly bool, report *models.BatchReport) {
	if len(files) == 0 {
		return
	}

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan string)
	outcomes := make(chan models.FileReport)

	var wg sync.WaitGroup
	for i := 0; i < r.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-poolCtx.Done():
					return
				case path, ok := <-jobs:
					if !ok {
						return
					}

					outcome := r.processFile(poolCtx, path, verifyOnly)
					select {
					case outcomes <- outcome:
					case <-poolCtx.Done():
						return
					}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-poolCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	tripped := false
	for outcome := range outcomes {
		report.Files = append(report.Files, outcome)
		report.Scanned++

		if outcome.Err != "" {
			report.Failed++
			if r.failFast && !tripped {
				tripped = true
				logger.FromContext(ctx).Warn().
					Str("path", outcome.Path).
					Msg("fail-fast triggered, cancelling remaining files")
				cancel()
			}
			continue
		}

		if outcome.Found {
			report.WithNote++
		}
	}
}

// processFile runs the per-file pipeline. It never fails the run: any
// error lands in the report entry instead.
func (r *runner) processFile(ctx context.Context, path string, verifyOnly bool) models.FileReport {
	log := logger.FromContext(ctx)

	outcome := models.FileReport{Path: path}
	if format, err := r.dispatcher.Detect(ctx, path, nil); err == nil {
		outcome.Format = format.String()
	}

	var result models.ExtractResult
	var err error
	if verifyOnly {
		result, err = r.notes.Verify(ctx, models.VerifyRequest{Path: path})
	} else {
		result, err = r.notes.Extract(ctx, models.ExtractRequest{Path: path})
	}
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("processing file failed")
		outcome.Err = err.Error()
		return outcome
	}

	outcome.Found = result.Found
	outcome.Encrypted = result.IsEncrypted
	outcome.Version = result.Version

	// An encrypted note surfaces as a flag, not as its ciphertext
	// envelope. Revealing it needs a password and a single-file extract.
	if !verifyOnly && !result.IsEncrypted {
		outcome.Note = result.Note
	}

	return outcome
}
