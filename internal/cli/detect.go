package cli

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrframe/internal/detect"
	"github.com/cristianadrielbraun/qrframe/internal/server"
)

func newDetectCommand(a *app) *cobra.Command {
	var (
		asJSON  bool
		overlay string
	)
	cmd := &cobra.Command{
		Use:   "detect <image>",
		Short: "Find and decode a QR code in a photo",
		Long: `Find and decode a QR code in a photo.

Prints the decoded text, or NO_QR when no region decodes. --json prints the
text with its bounding box and the region that found it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			img, err := detect.LoadImage(f)
			f.Close()
			if err != nil {
				return err
			}

			comps, err := server.NewComponents(a.cfg, a.log)
			if err != nil {
				return err
			}
			res, err := comps.Detector.Detect(cmd.Context(), img)
			if err != nil && !errors.Is(err, detect.ErrNoQR) {
				return err
			}

			if overlay != "" && res != nil {
				if err := writeOverlay(overlay, img, res.BoundingBox); err != nil {
					return err
				}
			}

			resp := detect.NewResponse(res, asJSON)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			_, err = fmt.Fprintln(out, resp.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print text, bounding box and region as JSON")
	cmd.Flags().StringVar(&overlay, "overlay", "", "write the photo with the detected box drawn to this PNG file")
	return cmd
}

func writeOverlay(name string, img image.Image, box detect.BoundingBox) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return detect.WriteOverlay(f, img, box)
}
