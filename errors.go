package mdbadge

import "errors"

// Sentinel errors for library operations.
// Transform itself never fails; these cover tree scanning and HTML output.
var (
	ErrTreeScan          = errors.New("failed to scan site tree")
	ErrHTMLConversion    = errors.New("HTML conversion failed")
	ErrInvalidStripDepth = errors.New("invalid strip depth")
	ErrInvalidSitePath   = errors.New("invalid site path")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
