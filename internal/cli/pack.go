package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/texpack/manifest"
)

// packCommand creates the pack command for building atlases from image files.
func (c *CLI) packCommand() *cobra.Command {
	var flags atlasFlags

	cmd := &cobra.Command{
		Use:   "pack [paths...]",
		Short: "Pack image files into an atlas",
		Long: `Pack PNG, JPEG, GIF, BMP, TIFF and WebP files into one atlas image.

Directories are walked recursively. Each image becomes a frame named by its
path relative to the directory, without extension.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			prog := newProgress(c.Logger)

			sources, err := collectImages(ctx, args)
			if err != nil {
				return err
			}
			if len(sources) == 0 {
				return errors.New("no image files found")
			}
			c.Logger.Debug("collected images", "count", len(sources))

			p, err := newPacker(cfg)
			if err != nil {
				return err
			}
			entries := make([]manifest.Entry, 0, len(sources))
			for _, src := range sources {
				if err := ctx.Err(); err != nil {
					return err
				}
				img, err := decodeImage(src.path)
				if err != nil {
					return err
				}
				entries = append(entries, manifest.Entry{Name: src.name, ID: p.Add(img)})
			}

			missing, err := c.writeAtlas(p, entries, cfg)
			if err != nil {
				return err
			}
			prog.done("packed atlas",
				"frames", len(entries)-len(missing),
				"size", p.Texture().Size(),
				"utilization", fmt.Sprintf("%.1f%%", 100*utilization(p)),
			)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
