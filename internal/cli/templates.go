package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/template"
)

func newTemplatesCommand(_ *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List the frame templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs := template.All()
			if done, err := printStructured(cmd.OutOrStdout(), format, defs); done {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
			for _, d := range defs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Name, d.Description)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "table, json or yaml")
	return cmd
}

func newContrastCommand(_ *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "contrast <fg> <bg>",
		Short: "Grade the WCAG contrast of two hex colours",
		Example: `  qrframe contrast "#000000" "#FFFFFF"
  qrframe contrast 333 eee --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, bg := hexArg(args[0]), hexArg(args[1])
			for _, c := range []string{fg, bg} {
				if _, err := render.ParseHexColor(c); err != nil {
					return err
				}
			}
			c := render.CheckContrast(fg, bg)
			if done, err := printStructured(cmd.OutOrStdout(), format, c); done {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%.2f:1 %s - %s\n", c.Ratio, c.Level, c.Message)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "text, json or yaml")
	return cmd
}

// hexArg accepts colours with or without the leading #, which shells
// otherwise treat as a comment.
func hexArg(s string) string {
	if s != "" && s[0] != '#' {
		return "#" + s
	}
	return s
}
