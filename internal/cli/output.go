package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/internal/labels"
	"github.com/mesh-intelligence/stockbook/internal/pdfdoc"
	"github.com/mesh-intelligence/stockbook/internal/qrcode"
	"github.com/mesh-intelligence/stockbook/internal/report"
)

func newLabelsCmd(e *env) *cobra.Command {
	var out string
	var qrSize int
	cmd := &cobra.Command{
		Use:   "labels [selector...]",
		Short: "Print a QR label sheet",
		Long: `Labels lays out one QR code and caption per selected record on A4 sheets of
2 x 5 labels and writes a PDF. Without selectors every record is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sels, err := parseSelectors(args)
			if err != nil {
				return err
			}
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				sels = labels.All(records)
			}
			enc := qrcode.New(qrcode.WithSize(qrSize), qrcode.WithLogger(e.log), qrcode.WithMetrics(e.metrics))
			sheet := labels.Build(labels.A4, sels, records, enc)
			if err := writePDF(out, sheet.Render); err != nil {
				return err
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"file":    out,
					"labels":  sheet.Labels(),
					"pages":   len(sheet.Pages),
					"missing": sheet.Missing,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d label(s) on %d page(s) to %s", sheet.Labels(), len(sheet.Pages), out)
			if sheet.Missing > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (%d selector(s) not found)", sheet.Missing)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "labels.pdf", "output PDF file")
	cmd.Flags().IntVar(&qrSize, "qr-size", 2*qrcode.DefaultSize, "QR image edge in pixels")
	return cmd
}

func newReportCmd(e *env) *cobra.Command {
	var out, title string
	var noImages bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the location summary report",
		Long: `Report groups records by location, sums quantities per item and writes a
paginated PDF, followed by a grid of item images when any record's image
reference can be read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List()
			if err != nil {
				return err
			}
			opts := report.Options{Title: title}
			if !noImages {
				opts.Images = pdfdoc.LoadImage
			}
			r := report.Build(records, opts)
			if err := writePDF(out, r.Render); err != nil {
				return err
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"file":      out,
					"locations": len(r.Summary.Sections),
					"lines":     r.Summary.Lines,
					"units":     r.Summary.Units,
					"pages":     len(r.Document.Pages),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote report of %d location(s), %s unit(s) on %d page(s) to %s\n",
				len(r.Summary.Sections), humanize.Comma(int64(r.Summary.Units)), len(r.Document.Pages), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "report.pdf", "output PDF file")
	cmd.Flags().StringVar(&title, "title", "", "report heading")
	cmd.Flags().BoolVar(&noImages, "no-images", false, "omit the image grid")
	return cmd
}

// writePDF renders into path, removing a partial file on failure.
func writePDF(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return sysError(fmt.Errorf("create %s: %w", path, err))
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return sysError(err)
	}
	if err := f.Close(); err != nil {
		return sysError(fmt.Errorf("close %s: %w", path, err))
	}
	return nil
}
