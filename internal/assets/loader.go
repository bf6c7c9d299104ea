package assets

// DefaultStyleName is the name of the built-in badge stylesheet.
const DefaultStyleName = "default"

// AssetLoader loads CSS styles by name (without the .css extension).
// Returns ErrStyleNotFound if the style doesn't exist and
// ErrInvalidAssetName if the name contains invalid characters.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
}
