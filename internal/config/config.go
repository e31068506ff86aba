// Package config loads texpack tool settings from TOML files.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/texpack"
)

// Config holds all tool settings. Zero fields are filled by Default.
type Config struct {
	Atlas  AtlasConfig  `toml:"atlas"`
	Output OutputConfig `toml:"output"`
	Glyphs GlyphsConfig `toml:"glyphs"`
}

// AtlasConfig controls packing.
type AtlasConfig struct {
	// MinSize is the initial atlas size (square). Default: 64
	MinSize int `toml:"min_size"`

	// MaxSize caps atlas growth (square). Default: GPU 2D texture limit.
	MaxSize int `toml:"max_size"`

	// Smooth requests bilinear filtering for the atlas.
	Smooth bool `toml:"smooth"`

	// Sort names a registered sort order. Default: "perimeter"
	Sort string `toml:"sort"`
}

// OutputConfig names the files written by the tool.
type OutputConfig struct {
	// Image is the atlas PNG path. Default: "atlas.png"
	Image string `toml:"image"`

	// Manifest is the JSON manifest path. Default: "atlas.json"
	Manifest string `toml:"manifest"`
}

// GlyphsConfig controls glyph atlas generation.
type GlyphsConfig struct {
	// Font is a TTF/OTF path. Empty uses Go Regular.
	Font string `toml:"font"`

	// Size is the font size in points. Default: 32
	Size float64 `toml:"size"`

	// DPI is the rasterization resolution. Default: 72
	DPI float64 `toml:"dpi"`

	// Scripts lists Unicode script names, e.g. ["Latin", "Greek"].
	// Default: ["Latin"]
	Scripts []string `toml:"scripts"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Atlas: AtlasConfig{
			MinSize: texpack.DefaultMinimumSize.Width,
			MaxSize: texpack.DefaultMaximumSize.Width,
			Sort:    "perimeter",
		},
		Output: OutputConfig{
			Image:    "atlas.png",
			Manifest: "atlas.json",
		},
		Glyphs: GlyphsConfig{
			Size:    32,
			DPI:     72,
			Scripts: []string{"Latin"},
		},
	}
}

// Load reads a TOML file on top of the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to load %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, &ConfigError{Field: strings.Join(keys, ", "), Reason: "unknown key"}
	}
	return cfg, cfg.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Atlas.MinSize < 1 {
		return &ConfigError{Field: "atlas.min_size", Reason: "must be at least 1"}
	}
	if c.Atlas.MaxSize < c.Atlas.MinSize {
		return &ConfigError{Field: "atlas.max_size", Reason: "must be at least min_size"}
	}
	if _, ok := texpack.LookupSortFunc(c.Atlas.Sort); !ok {
		return &ConfigError{
			Field:  "atlas.sort",
			Reason: fmt.Sprintf("unknown order %q, want one of %s", c.Atlas.Sort, strings.Join(texpack.SortFuncNames(), ", ")),
		}
	}
	if c.Output.Image == "" {
		return &ConfigError{Field: "output.image", Reason: "must not be empty"}
	}
	if c.Glyphs.Size <= 0 {
		return &ConfigError{Field: "glyphs.size", Reason: "must be positive"}
	}
	if c.Glyphs.DPI <= 0 {
		return &ConfigError{Field: "glyphs.dpi", Reason: "must be positive"}
	}
	return nil
}

// PackerOptions converts the atlas settings to texpack options.
func (c *Config) PackerOptions() []texpack.Option {
	return []texpack.Option{
		texpack.WithMinimumSize(texpack.Size{Width: c.Atlas.MinSize, Height: c.Atlas.MinSize}),
		texpack.WithMaximumSize(texpack.Size{Width: c.Atlas.MaxSize, Height: c.Atlas.MaxSize}),
		texpack.WithSmooth(c.Atlas.Smooth),
	}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "config: invalid " + e.Field + ": " + e.Reason
}
