package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/texpack"
	"github.com/gogpu/texpack/manifest"
)

// inspectCommand creates the inspect command for listing manifest frames.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [manifest]",
		Short: "List the frames of an atlas manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			m, err := manifest.Decode(f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image: %s (%dx%d)\n", m.Meta.Image, m.Meta.Size.W, m.Meta.Size.H)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tX\tY\tW\tH")
			for _, name := range m.Names() {
				r, _ := m.Rect(name)
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", name, r.X, r.Y, r.Width, r.Height)
			}
			return tw.Flush()
		},
	}
}

// sortsCommand creates the sorts command for listing sort orders.
func (c *CLI) sortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sorts",
		Short: "List the available sort orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := texpack.SortFuncNames()
			for i, name := range names {
				suffix := ""
				if i == 0 {
					suffix = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, suffix)
			}
			return nil
		},
	}
}
