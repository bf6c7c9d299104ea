package assets

import (
	"fmt"
	"strings"
)

// MaxAssetNameLength bounds style names.
const MaxAssetNameLength = 64

// ValidateAssetName checks that a style name is safe to use as a file name.
// Path separators, dots and NUL bytes are rejected so a name can never
// address a file outside the styles directory or change its extension.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > MaxAssetNameLength:
		return fmt.Errorf("%w: %d chars (max %d)", ErrInvalidAssetName, len(name), MaxAssetNameLength)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
