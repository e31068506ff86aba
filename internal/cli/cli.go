// Package cli implements the texpack command-line interface.
//
// # Commands
//
//   - pack: pack image files into an atlas PNG and JSON manifest
//   - glyphs: rasterize font glyphs into a glyph atlas
//   - inspect: list the frames of a manifest
//   - sorts: list the available sort orders
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The same
// charmbracelet logger receives the texpack library's slog output.
package cli

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/texpack"
	"github.com/gogpu/texpack/internal/config"
)

// Version is reported by --version.
const Version = "0.1.0"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a CLI that logs to w. The logger also becomes the texpack
// library logger.
func New(w io.Writer, level log.Level) *CLI {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	texpack.SetLogger(slog.New(l))
	return &CLI{Logger: l}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "texpack",
		Short:        "texpack packs images into texture atlases",
		Long:         `texpack packs many small images into a single atlas image and writes a TexturePacker-compatible JSON manifest describing where each image ended up.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML config file")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.glyphsCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.sortsCommand())

	return root
}

// loadConfig reads the --config file, or returns the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	c.Logger.Debug("loading config", "path", c.configPath)
	return config.Load(c.configPath)
}

// atlasFlags are the packing flags shared by pack and glyphs.
type atlasFlags struct {
	minSize  int
	maxSize  int
	smooth   bool
	sort     string
	image    string
	manifest string
}

func (f *atlasFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.minSize, "min-size", 0, "initial atlas size in pixels")
	flags.IntVar(&f.maxSize, "max-size", 0, "maximum atlas size in pixels")
	flags.BoolVar(&f.smooth, "smooth", false, "request bilinear filtering")
	flags.StringVar(&f.sort, "sort", "", "sort order (see 'texpack sorts')")
	flags.StringVarP(&f.image, "output", "o", "", "atlas PNG path")
	flags.StringVarP(&f.manifest, "manifest", "m", "", "JSON manifest path")
}

// apply overrides cfg with the flags that were set on the command line.
func (f *atlasFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("min-size") {
		cfg.Atlas.MinSize = f.minSize
	}
	if flags.Changed("max-size") {
		cfg.Atlas.MaxSize = f.maxSize
	}
	if flags.Changed("smooth") {
		cfg.Atlas.Smooth = f.smooth
	}
	if flags.Changed("sort") {
		cfg.Atlas.Sort = f.sort
	}
	if flags.Changed("output") {
		cfg.Output.Image = f.image
	}
	if flags.Changed("manifest") {
		cfg.Output.Manifest = f.manifest
	}
	return cfg.Validate()
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
