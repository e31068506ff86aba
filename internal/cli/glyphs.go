package cli

import (
	"fmt"
	"image"
	"os"
	"unicode"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/rangetable"

	"github.com/gogpu/texpack/internal/config"
	"github.com/gogpu/texpack/manifest"
)

// glyphsCommand creates the glyphs command for building glyph atlases.
func (c *CLI) glyphsCommand() *cobra.Command {
	var (
		flags    atlasFlags
		fontPath string
		size     float64
		dpi      float64
		scripts  []string
	)

	cmd := &cobra.Command{
		Use:   "glyphs",
		Short: "Rasterize font glyphs into an atlas",
		Long: `Rasterize every glyph of the selected Unicode scripts into one atlas.

Frames are named U+XXXX after their code point. Without --font the Go
Regular font is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			f := cmd.Flags()
			if f.Changed("font") {
				cfg.Glyphs.Font = fontPath
			}
			if f.Changed("size") {
				cfg.Glyphs.Size = size
			}
			if f.Changed("dpi") {
				cfg.Glyphs.DPI = dpi
			}
			if f.Changed("script") {
				cfg.Glyphs.Scripts = scripts
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			return c.runGlyphs(cmd, cfg)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&fontPath, "font", "", "TTF/OTF font file (default Go Regular)")
	cmd.Flags().Float64Var(&size, "size", 0, "font size in points")
	cmd.Flags().Float64Var(&dpi, "dpi", 0, "rasterization DPI")
	cmd.Flags().StringSliceVar(&scripts, "script", nil, "Unicode script names, e.g. Latin,Greek")
	return cmd
}

func (c *CLI) runGlyphs(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	f, err := loadFont(cfg.Glyphs.Font)
	if err != nil {
		return err
	}
	runes, err := scriptTable(cfg.Glyphs.Scripts)
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    cfg.Glyphs.Size,
		DPI:     cfg.Glyphs.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("create face: %w", err)
	}
	defer face.Close()

	p, err := newPacker(cfg)
	if err != nil {
		return err
	}

	var (
		buf     sfnt.Buffer
		entries []manifest.Entry
		skipped int
	)
	rangetable.Visit(runes, func(r rune) {
		if idx, err := f.GlyphIndex(&buf, r); err != nil || idx == 0 {
			skipped++
			return
		}
		img := renderGlyph(face, r)
		if img == nil {
			return
		}
		entries = append(entries, manifest.Entry{
			Name: fmt.Sprintf("U+%04X", r),
			ID:   p.AddOwn(img),
		})
	})
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("font has no visible glyphs for scripts %v", cfg.Glyphs.Scripts)
	}
	c.Logger.Debug("rendered glyphs", "count", len(entries), "missing", skipped)

	missing, err := c.writeAtlas(p, entries, cfg)
	if err != nil {
		return err
	}
	prog.done("packed glyph atlas",
		"glyphs", len(entries)-len(missing),
		"size", p.Texture().Size(),
		"utilization", fmt.Sprintf("%.1f%%", 100*utilization(p)),
	)
	return nil
}

// loadFont parses the font at path, or Go Regular when path is empty.
func loadFont(path string) (*opentype.Font, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return f, nil
}

// scriptTable merges the Unicode tables of the named scripts.
func scriptTable(names []string) (*unicode.RangeTable, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no scripts selected")
	}
	tables := make([]*unicode.RangeTable, 0, len(names))
	for _, name := range names {
		t, ok := unicode.Scripts[name]
		if !ok {
			return nil, fmt.Errorf("unknown Unicode script %q", name)
		}
		tables = append(tables, t)
	}
	return rangetable.Merge(tables...), nil
}

// renderGlyph draws r in white on a transparent image cropped to its ink
// bounds. It returns nil for glyphs without ink, such as spaces.
func renderGlyph(face font.Face, r rune) *image.RGBA {
	dr, mask, maskp, _, ok := face.Glyph(fixed.Point26_6{}, r)
	if !ok || dr.Empty() {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	draw.DrawMask(dst, dst.Bounds(), image.White, image.Point{}, mask, maskp, draw.Over)
	return dst
}
