package pathkit

import (
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Preferences reads and writes named string preferences.
// A missing preference reads as the empty string.
type Preferences interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// IconResolver maps a pseudo path (usually "file://...") to an icon reference.
type IconResolver func(pseudoPath string) string

// SizeFormatter renders a byte count for humans.
type SizeFormatter func(size int64) string

// Icon references used by the bundled backends.
const (
	IconFolder   = "folder"
	IconFile     = "file"
	IconFavorite = "favorite"
)

// Env bundles the host collaborators a backend needs. A zero Env is usable;
// missing collaborators fall back to the defaults below.
type Env struct {
	Preferences    Preferences
	Icons          IconResolver
	Sizes          SizeFormatter
	Logger         *zap.Logger
	FavoritesLabel string
}

// DefaultFavoritesLabel is the display name of the favorites root.
const DefaultFavoritesLabel = "Favorites"

// Log returns the configured logger or a no-op logger.
func (e *Env) Log() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// Icon resolves an icon for pseudoPath, falling back to DefaultIcon.
func (e *Env) Icon(pseudoPath string) string {
	if e == nil || e.Icons == nil {
		return DefaultIcon(pseudoPath)
	}
	return e.Icons(pseudoPath)
}

// FormatSize renders size with the configured formatter.
func (e *Env) FormatSize(size int64) string {
	if e == nil || e.Sizes == nil {
		return humanizeSize(size)
	}
	return e.Sizes(size)
}

// Label returns the favorites label.
func (e *Env) Label() string {
	if e == nil || e.FavoritesLabel == "" {
		return DefaultFavoritesLabel
	}
	return e.FavoritesLabel
}

func humanizeSize(size int64) string {
	if size < 0 {
		return "?"
	}
	return humanize.IBytes(uint64(size))
}
