package cli

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	// Registered decoders for the pack command.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/texpack"
	"github.com/gogpu/texpack/internal/config"
	"github.com/gogpu/texpack/manifest"
)

// imageExts lists the file extensions collected by the pack command.
var imageExts = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// source is an image file found on disk and the frame name it gets.
type source struct {
	path string
	name string
}

// collectImages walks paths and returns image files in lexical order.
// Directories are walked recursively; frame names are relative to the
// directory, without extension, using forward slashes. A file argument is
// named by its base name.
func collectImages(ctx context.Context, paths []string) ([]source, error) {
	var out []source
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, source{path: root, name: frameName(filepath.Base(root))})
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() || !isImageFile(path) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			out = append(out, source{path: path, name: frameName(rel)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func isImageFile(path string) bool {
	return slices.Contains(imageExts, strings.ToLower(filepath.Ext(path)))
}

func frameName(rel string) string {
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))
}

// decodeImage reads and decodes one image file.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// newPacker builds the sorting packer described by cfg.
func newPacker(cfg config.Config) (*texpack.SortingTexturePacker, error) {
	less, ok := texpack.LookupSortFunc(cfg.Atlas.Sort)
	if !ok {
		return nil, fmt.Errorf("unknown sort order %q", cfg.Atlas.Sort)
	}
	inner := texpack.NewTexturePacker(cfg.PackerOptions()...)
	return texpack.NewSortingTexturePacker(
		texpack.WithInner(inner),
		texpack.WithSortFunc(less),
	), nil
}

// writeAtlas packs the queued images of p and writes the atlas PNG and
// manifest named by cfg. It returns the entries that could not be packed.
func (c *CLI) writeAtlas(p *texpack.SortingTexturePacker, entries []manifest.Entry, cfg config.Config) ([]manifest.Entry, error) {
	if failed := p.Pack(); failed > 0 {
		c.Logger.Warn("some images did not fit", "count", failed)
	}

	imageRef := filepath.Base(cfg.Output.Image)
	m, missing, err := manifest.Build(p, entries, imageRef)
	if err != nil {
		return nil, err
	}
	for _, e := range missing {
		c.Logger.Warn("image not packed", "name", e.Name)
	}

	if err := ensureDir(cfg.Output.Image); err != nil {
		return nil, err
	}
	if err := p.Texture().SavePNG(cfg.Output.Image); err != nil {
		return nil, err
	}
	c.Logger.Debug("wrote atlas image", "path", cfg.Output.Image, "size", p.Texture().Size())

	if cfg.Output.Manifest == "" {
		return missing, nil
	}
	if err := ensureDir(cfg.Output.Manifest); err != nil {
		return nil, err
	}
	f, err := os.Create(cfg.Output.Manifest)
	if err != nil {
		return nil, err
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	c.Logger.Debug("wrote manifest", "path", cfg.Output.Manifest, "frames", len(m.Frames))
	return missing, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// utilization reports the share of the atlas covered by packed images.
func utilization(p *texpack.SortingTexturePacker) float64 {
	if tp, ok := p.Inner().(*texpack.TexturePacker); ok {
		return tp.Utilization()
	}
	return 0
}
