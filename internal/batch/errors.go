package batch

import "errors"

var ErrNoTargets = errors.New("no files or directories to process")
