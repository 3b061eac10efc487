package main

import (
	"errors"
	"os"

	novelfmt "github.com/alnah/go-novelfmt"
	"github.com/alnah/go-novelfmt/internal/config"
)

// Exit codes for the novelfmt CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All chapters written or skipped
	ExitGeneral = 1 // General/unexpected error, or some chapters failed
	ExitUsage   = 2 // Invalid flags, config, or assets
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/asset errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, novelfmt.ErrStyleNotFound) ||
		errors.Is(err, novelfmt.ErrTemplateSetNotFound) ||
		errors.Is(err, novelfmt.ErrIncompleteTemplateSet) ||
		errors.Is(err, novelfmt.ErrInvalidAssetPath) ||
		errors.Is(err, novelfmt.ErrInvalidAssetName) ||
		errors.Is(err, novelfmt.ErrInvalidTemplate) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadChapter) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoChapters) {
		return ExitIO
	}

	return ExitGeneral
}
