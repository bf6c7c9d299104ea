package main

import (
	"errors"
	"os"

	mdbadge "github.com/alnah/go-mdbadge"
	"github.com/alnah/go-mdbadge/internal/config"
	"github.com/alnah/go-mdbadge/internal/logging"
)

// Exit codes for the mdbadge CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // All pages processed
	ExitGeneral    = 1 // General/unexpected error, or some pages failed
	ExitUsage      = 2 // Invalid flags, config, or validation
	ExitIO         = 3 // Docs dir missing, read or write failure
	ExitUnresolved = 4 // check --strict found unresolved references
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrUnresolvedReferences) {
		return ExitUnresolved
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoDocsDir) ||
		errors.Is(err, ErrReadPage) ||
		errors.Is(err, ErrWritePage) ||
		errors.Is(err, mdbadge.ErrTreeScan) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputInsideDocs) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrUnsupportedFormat) ||
		errors.Is(err, mdbadge.ErrInvalidStripDepth) ||
		errors.Is(err, mdbadge.ErrInvalidSitePath) ||
		errors.Is(err, mdbadge.ErrStyleNotFound) ||
		errors.Is(err, mdbadge.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
