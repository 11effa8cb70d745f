package pathkit

import (
	"strings"

	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Preference file holding favorites (TOML)
	PrefsFile string `env:"PATHKIT_PREFS_FILE,default:./pathkit.toml"`

	// Logging
	LogLevel  string `env:"PATHKIT_LOG_LEVEL,default:info"`
	LogFormat string `env:"PATHKIT_LOG_FORMAT,default:console"` // console or json

	// Extensions opened as archives, comma-separated (empty means zip,jar,xpi)
	ArchiveExtensions string `env:"PATHKIT_ARCHIVE_EXTENSIONS"`

	// Display name of the favorites root
	FavoritesLabel string `env:"PATHKIT_FAVORITES_LABEL,default:Favorites"`

	// Algorithm used by checksum commands
	ChecksumAlgorithm string `env:"PATHKIT_CHECKSUM_ALGORITHM,default:xxhash"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultArchiveExtensions are opened as archives unless configured otherwise.
var DefaultArchiveExtensions = []string{"zip", "jar", "xpi"}

// Extensions splits ArchiveExtensions into normalized extensions.
func (c *Config) Extensions() []string {
	if strings.TrimSpace(c.ArchiveExtensions) == "" {
		return append([]string(nil), DefaultArchiveExtensions...)
	}
	var out []string
	for _, ext := range strings.Split(c.ArchiveExtensions, ",") {
		if ext = normalizeKey(ext); ext != "" {
			out = append(out, ext)
		}
	}
	return out
}
