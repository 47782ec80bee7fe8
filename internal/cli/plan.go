package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/podoc/pkg/config"
	"github.com/matzehuels/podoc/pkg/io"
	"github.com/matzehuels/podoc/pkg/render/po"
)

type planOpts struct {
	renderFlags
	json bool
}

// planCommand creates the plan command, which renders a document and
// prints the layout report instead of writing the PDF.
func (c *CLI) planCommand() *cobra.Command {
	var opts planOpts

	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Show how a document is laid out on the page",
		Long: `Render a document and print the layout report: the band each section
occupied, the space reserved below the item table, and how many rows fit.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return c.runPlan(cmd.Context(), cfg, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")

	return cmd
}

func (c *CLI) runPlan(ctx context.Context, cfg *config.Config, path string, opts *planOpts) error {
	doc, err := io.ImportFile(path)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := renderDocument(ctx, runner, doc, opts.options(cfg))
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Report)
	}

	fmt.Fprintln(out, StyleTitle.Render("Layout plan "+orderLabel(doc)))
	fmt.Fprintln(out)
	printPlanSummary(res.Report)
	fmt.Fprintln(out)
	fmt.Fprintln(out, planTable(res.Report))
	printWarnings(res.Report)
	return nil
}

func printPlanSummary(r po.Report) {
	printKeyValue("Items", fmt.Sprintf("%d (%d shown, %d omitted)", r.Items, r.Displayed, r.Omitted))
	printKeyValue("Max rows", fmt.Sprintf("%d", r.MaxRows))
	printKeyValue("Available", fmt.Sprintf("%.1fpt (table %.1fpt)", r.Available, r.TableHeight))
	printKeyValue("Reserved", fmt.Sprintf("%.1fpt: totals %.0f, terms %.0f, signature %.0f, footer %.0f",
		r.Budget.Total(), r.Budget.Totals, r.Budget.Terms, r.Budget.Signature, r.Budget.Footer))
	printKeyValue("Variants", fmt.Sprintf("totals %s, signature %s, counterparty %s",
		r.Variants.Totals, r.Variants.Signature, r.Variants.Counterparty))
	printKeyValue("Scan code", yesNo(r.ScanCodeEmbedded))
	if r.OverflowRisk {
		printWarning("table was truncated to keep the page from overflowing")
	}
}

// planTable renders one row per placed section, top to bottom.
func planTable(r po.Report) string {
	rows := make([][]string, 0, len(r.Sections))
	for _, p := range r.Sections {
		rows = append(rows, []string{
			p.Section,
			fmt.Sprintf("%.1f", p.Box.Top),
			fmt.Sprintf("%.1f", p.Box.Bottom),
			fmt.Sprintf("%.1f", p.Box.Height()),
			sectionWarnings(r, p.Section),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Section", "Top", "Bottom", "Height", "Warnings").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			switch {
			case col == 0:
				return cell.Foreground(colorCyan)
			case col == 4:
				return cell.Foreground(colorYellow)
			case col >= 1 && col <= 3:
				return cell.Foreground(colorWhite).Align(lipgloss.Right)
			}
			return cell
		})
	return t.Render()
}

func sectionWarnings(r po.Report, section string) string {
	var codes []string
	for _, w := range r.Warnings {
		if w.Section == section {
			codes = append(codes, string(w.Code))
		}
	}
	return strings.Join(codes, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
