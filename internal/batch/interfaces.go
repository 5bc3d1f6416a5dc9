// Package batch fans scan and verify operations out over many files
// and directories at once.
package batch

import (
	"context"

	"github.com/eyad6789/images-with-memory/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/batch_runner_mock.go -package=mock

// Runner is the multi-file engine behind the scan and verify commands.
// It expands file and directory targets into a list of image files,
// processes them on a bounded worker pool and aggregates the per-file
// outcomes into one report.
type Runner interface {
	// Run processes every image file named by the request and returns
	// the aggregated report. Per-file failures land in the report and do
	// not fail the run; with fail-fast configured the first failure
	// cancels the remaining files instead.
	// Returns [ErrNoTargets] when the request names no paths at all, and
	// the partial report with a wrapped context error when the run is
	// cut short from outside (cancellation or the configured timeout).
	Run(ctx context.Context, request models.BatchRequest) (models.BatchReport, error)
}
