package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/assets"
	"github.com/cristianadrielbraun/qrframe/internal/export"
	"github.com/cristianadrielbraun/qrframe/internal/render"
	"github.com/cristianadrielbraun/qrframe/internal/server"
	"github.com/cristianadrielbraun/qrframe/internal/symbol"
)

type renderOptions struct {
	output   string
	format   string
	as       string
	size     int
	raw      bool
	in       render.Input
	level    string
	style    string
	margin   int
	template string
}

func newRenderCommand(a *app) *cobra.Command {
	var o renderOptions
	cmd := &cobra.Command{
		Use:   "render <url>",
		Short: "Render a QR code to a file or stdout",
		Long: `Render a QR code.

By default the argument is treated like user input: "?qr=1" is appended and
the symbol is encoded at level Q into a 1024 unit document. With --raw the
value is encoded verbatim using the render section of the configuration.

The format follows the output file extension unless --format is given;
stdout defaults to SVG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := server.NewComponents(a.cfg, a.log)
			if err != nil {
				return err
			}
			req, err := o.request(args[0], a.cfg.RenderDefaults(), cmd)
			if err != nil {
				return err
			}
			doc, err := comps.Renderer.Render(req)
			if err != nil {
				return err
			}
			return o.write(cmd.Context(), cmd.OutOrStdout(), comps.Exporter, doc)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.output, "output", "o", "-", "output file, - for stdout")
	f.StringVarP(&o.format, "format", "f", "", "png, jpeg, svg or datauri")
	f.StringVar(&o.as, "as", "png", "data URI payload format: png, jpeg or svg")
	f.IntVar(&o.size, "size", 0, "raster size in pixels (default: document size)")
	f.BoolVar(&o.raw, "raw", false, "encode the value verbatim with configured defaults")
	f.StringVar(&o.in.FgColor, "fg", "", "foreground colour")
	f.StringVar(&o.in.BgColor, "bg", "", "background colour")
	f.StringVar(&o.in.EyeColor, "eye", "", "finder ring colour")
	f.StringVar(&o.in.DotColor, "dot", "", "finder dot colour")
	f.BoolVar(&o.in.ShowLogo, "show-logo", false, "excavate the centre and draw a logo")
	f.StringVar(&o.in.Logo, "logo", "", "logo source: file, URL or data URI (default: built-in)")
	f.StringVarP(&o.template, "template", "t", "", "frame template id")
	f.StringVar(&o.in.CustomText, "text", "", "caption for templates that show one")
	f.StringVar(&o.level, "level", "", "error correction level L, M, Q or H")
	f.StringVar(&o.style, "style", "", "module style: dots or squares")
	f.IntVar(&o.margin, "margin", 0, "quiet zone in modules")
	return cmd
}

func (o *renderOptions) request(value string, defaults render.Request, cmd *cobra.Command) (render.Request, error) {
	o.in.URL = value
	o.in.TemplateID = o.template

	var req render.Request
	if o.raw {
		req = defaults
		req.Value = value
		req.FgColor, req.BgColor = o.in.FgColor, o.in.BgColor
		req.EyeColor, req.DotColor = o.in.EyeColor, o.in.DotColor
		req.TemplateID, req.CustomText = o.template, o.in.CustomText
		if o.in.ShowLogo {
			src := o.in.Logo
			if src == "" {
				src = assets.DefaultLogoSrc
			}
			req.Image = &render.ImageSettings{Src: src, Excavate: true}
		}
	} else {
		req = render.FromInput(o.in)
		req.Margin, req.Style = defaults.Margin, defaults.Style
	}

	if cmd.Flags().Changed("level") {
		l, err := symbol.ParseLevel(o.level)
		if err != nil {
			return req, err
		}
		req.Level = l
	}
	if cmd.Flags().Changed("style") {
		s, err := render.ParseStyle(o.style)
		if err != nil {
			return req, err
		}
		req.Style = s
	}
	if cmd.Flags().Changed("margin") {
		req.Margin = o.margin
	}
	for _, c := range []string{req.FgColor, req.BgColor, req.EyeColor, req.DotColor} {
		if c == "" {
			continue
		}
		if _, err := render.ParseHexColor(c); err != nil {
			return req, err
		}
	}
	return req, nil
}

// resolveFormat picks the output format from --format or the file name.
func (o *renderOptions) resolveFormat() string {
	if o.format != "" {
		return strings.ToLower(o.format)
	}
	if ext := strings.TrimPrefix(filepath.Ext(o.output), "."); o.output != "-" && ext != "" {
		return strings.ToLower(ext)
	}
	return "svg"
}

func (o *renderOptions) write(ctx context.Context, stdout io.Writer, e *export.Exporter, doc *render.Document) (err error) {
	w := stdout
	if o.output != "-" {
		var file *os.File
		if file, err = os.Create(o.output); err != nil {
			return err
		}
		defer func() {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}()
		w = file
	}

	format := o.resolveFormat()
	if format == "datauri" {
		as, err := export.ParseFormat(o.as)
		if err != nil {
			return err
		}
		uri, err := e.DataURI(ctx, doc, as, o.size)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, uri)
		return err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return e.Write(ctx, w, doc, f, o.size)
}
