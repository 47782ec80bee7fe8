package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/podoc/pkg/config"
	"github.com/matzehuels/podoc/pkg/document"
	"github.com/matzehuels/podoc/pkg/io"
	"github.com/matzehuels/podoc/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	renderFlags
	output string // PDF path; empty writes next to the input
}

// renderCommand creates the render command for printing one document.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a purchase order document to PDF",
		Long: `Render a purchase order document (.json, .yaml or .toml) to a single-page A4 PDF.

Long item tables are truncated with a notice row so the totals, terms and
signature always fit on the page. Use "podoc plan" to preview the layout.`,
		Example: `  podoc render po-2025-001.yaml
  podoc render po.json -o out/po.pdf --locale en --currency USD`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output PDF path (default: input name with .pdf)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cfg *config.Config, path string, opts *renderOpts) error {
	doc, err := io.ImportFile(path)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", orderLabel(doc)))
	spinner.Start()
	res, err := renderDocument(ctx, runner, doc, opts.options(cfg))
	spinner.Stop()
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = outputPath(path, "")
	}
	if err := writePDF(output, res.PDF); err != nil {
		return err
	}

	printSuccess("Rendered %s", StyleValue.Render(orderLabel(doc)))
	printFile(output)
	printStats(res.Report, res.CacheHit)
	printWarnings(res.Report)
	return nil
}

// renderDocument runs one document through the pipeline with opts as the
// render settings.
func renderDocument(ctx context.Context, runner *pipeline.Runner, doc document.Document, opts pipeline.Options) (*pipeline.Result, error) {
	opts.Document = doc
	opts.Logger = loggerFromContext(ctx)
	return runner.Execute(ctx, opts)
}

// outputPath swaps the extension of input for .pdf. A non-empty dir
// replaces the input's directory.
func outputPath(input, dir string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".pdf"
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, base)
}

func writePDF(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func orderLabel(doc document.Document) string {
	if doc.Order.Number == "" {
		return "purchase order"
	}
	return doc.Order.Number
}
