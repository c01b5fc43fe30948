package menukit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the file FindConfig looks for.
const ConfigFileName = "menukit.toml"

// Config is a menukit.toml appearance file: band heights and theme tweaks
// shared by every tool built on the package.
type Config struct {
	Layout LayoutSection `toml:"layout"`
	Theme  ThemeSection  `toml:"theme"`
}

// LayoutSection overrides band heights. Zero keeps the default.
type LayoutSection struct {
	HeaderHeight int `toml:"header_height,omitempty"`
	HintsHeight  int `toml:"hints_height,omitempty"`
	PromptHeight int `toml:"prompt_height,omitempty"`
}

// ThemeSection adjusts the stock theme.
type ThemeSection struct {
	// Accent recolors the title and selection styles. Any color lipgloss
	// accepts, e.g. "212" or "#ff87d7".
	Accent string `toml:"accent,omitempty"`

	// Dim recolors the subdued styles.
	Dim string `toml:"dim,omitempty"`

	// Plain drops all color and unicode glyphs.
	Plain bool `toml:"plain,omitempty"`

	// ASCII keeps colors but swaps glyphs for ASCII fallbacks.
	ASCII bool `toml:"ascii,omitempty"`
}

// LoadConfig loads a menukit.toml from the given path.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &config, nil
}

// FindConfig searches for a menukit.toml starting from dir and walking up
// parent directories. Returns the path and the parsed config, or
// ("", nil, nil) if not found.
func FindConfig(dir string) (string, *Config, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", nil, err
	}
	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			config, err := LoadConfig(path)
			if err != nil {
				return "", nil, err
			}
			return path, config, nil
		}

		// Stop at .git boundary
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil, nil
		}
		dir = parent
	}
}

// LayoutConfig resolves the configured band heights over the defaults.
// Works on a nil receiver, yielding the defaults.
func (c *Config) LayoutConfig() LayoutConfig {
	lc := DefaultLayoutConfig()
	if c == nil {
		return lc
	}
	if c.Layout.HeaderHeight > 0 {
		lc.HeaderHeight = c.Layout.HeaderHeight
	}
	if c.Layout.HintsHeight > 0 {
		lc.HintsHeight = c.Layout.HintsHeight
	}
	if c.Layout.PromptHeight > 0 {
		lc.PromptHeight = c.Layout.PromptHeight
	}
	return lc
}

// BuildTheme resolves the configured theme tweaks over the defaults.
// Works on a nil receiver, yielding DefaultTheme.
func (c *Config) BuildTheme() Theme {
	if c == nil {
		return DefaultTheme()
	}
	var th Theme
	if c.Theme.Plain {
		th = PlainTheme()
	} else {
		th = DefaultTheme()
	}
	if c.Theme.Accent != "" {
		th = th.WithAccent(c.Theme.Accent)
	}
	if c.Theme.Dim != "" {
		th = th.WithDim(c.Theme.Dim)
	}
	if c.Theme.ASCII {
		th = th.ASCII()
	}
	return th
}

// configKey is a context key for passing the resolved config around.
type configKey struct{}

type configEntry struct {
	path   string
	config *Config
}

// ContextWithConfig attaches a loaded config and its path to the context.
func ContextWithConfig(ctx context.Context, path string, config *Config) context.Context {
	return context.WithValue(ctx, configKey{}, &configEntry{path: path, config: config})
}

// ConfigFromContext returns the config attached by ContextWithConfig, or
// ("", nil) when there is none.
func ConfigFromContext(ctx context.Context) (string, *Config) {
	if v := ctx.Value(configKey{}); v != nil {
		e := v.(*configEntry)
		return e.path, e.config
	}
	return "", nil
}
