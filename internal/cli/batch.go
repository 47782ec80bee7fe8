package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/podoc/pkg/config"
	"github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/io"
	"github.com/matzehuels/podoc/pkg/pipeline"
	"github.com/matzehuels/podoc/pkg/render/po"
)

type batchOpts struct {
	renderFlags
	outputDir   string
	concurrency int
	plain       bool
}

// batchResult is the outcome of one document. It doubles as the tea.Msg
// workers send to the progress view.
type batchResult struct {
	Path     string
	Output   string
	Report   po.Report
	CacheHit bool
	Err      error
	Duration time.Duration
}

// batchCommand creates the batch command for rendering a directory.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{concurrency: runtime.NumCPU()}

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Render every document in a directory",
		Long: `Render every .json, .yaml and .toml document in a directory concurrently.

A document that fails is reported and skipped; the command exits with an
error when any document failed.`,
		Example:           `  podoc batch orders/ -d pdf/ -j 8`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return c.runBatch(cmd.Context(), cfg, args[0], &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "d", "", "directory for the PDFs (default: next to each document)")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", opts.concurrency, "documents rendered at once")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "print one line per document instead of the progress view")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, cfg *config.Config, dir string, opts *batchOpts) error {
	files, err := collectDocuments(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		printInfo("No documents found in %s", dir)
		return nil
	}

	runner, err := c.newRunner(cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := newProgress(c.Logger)
	var results []batchResult
	if opts.plain {
		results, err = c.batchPlain(ctx, runner, cfg, files, opts)
	} else {
		results, err = c.batchTUI(ctx, cancel, runner, cfg, files, opts)
	}
	if err != nil {
		return err
	}

	var failed, rendered int
	for _, r := range results {
		switch {
		case r.Path == "":
		case r.Err != nil:
			failed++
		default:
			rendered++
		}
	}
	prog.done(fmt.Sprintf("Rendered %d documents", rendered), "failed", failed)

	printSuccess("Rendered %d of %d documents", rendered, len(files))
	if failed > 0 {
		for _, r := range results {
			if r.Err != nil {
				printError("%s: %s", filepath.Base(r.Path), errors.UserMessage(r.Err))
			}
		}
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// batchPlain renders with one status line per finished document.
func (c *CLI) batchPlain(ctx context.Context, runner *pipeline.Runner, cfg *config.Config, files []string, opts *batchOpts) ([]batchResult, error) {
	var mu sync.Mutex
	ctx = withLogger(ctx, c.Logger)
	return renderAll(ctx, runner, opts.options(cfg), files, opts, func(r batchResult) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, resultLine(r))
	})
}

// batchTUI renders behind the bubbletea progress view. Quitting the view
// cancels the documents still pending.
func (c *CLI) batchTUI(ctx context.Context, cancel context.CancelFunc, runner *pipeline.Runner, cfg *config.Config, files []string, opts *batchOpts) ([]batchResult, error) {
	p := tea.NewProgram(newBatchModel(len(files)), tea.WithOutput(os.Stderr))

	// Log lines would tear the view; only errors get through.
	quiet := c.Logger.With()
	quiet.SetLevel(log.ErrorLevel)
	ctx = withLogger(ctx, quiet)

	type outcome struct {
		results []batchResult
		err     error
	}
	done := make(chan outcome, 1)
	go func() {
		results, err := renderAll(ctx, runner, opts.options(cfg), files, opts, func(r batchResult) { p.Send(r) })
		done <- outcome{results, err}
		p.Send(batchDoneMsg{})
	}()
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	final, err := p.Run()
	if m, ok := final.(batchModel); ok && m.Interrupted {
		cancel()
	}
	o := <-done
	if err != nil {
		return o.results, err
	}
	return o.results, o.err
}

// renderAll renders files with at most opts.concurrency documents in
// flight. Per-document failures are recorded in the results; only
// cancellation stops the remaining work.
func renderAll(ctx context.Context, runner *pipeline.Runner, base pipeline.Options, files []string, opts *batchOpts, report func(batchResult)) ([]batchResult, error) {
	limit := opts.concurrency
	if limit < 1 {
		limit = 1
	}
	results := make([]batchResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r := renderFile(gctx, runner, base, path, opts.outputDir)
			results[i] = r
			report(r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func renderFile(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, path, outDir string) (r batchResult) {
	start := time.Now()
	r.Path = path
	defer func() { r.Duration = time.Since(start) }()

	doc, err := io.ImportFile(path)
	if err != nil {
		r.Err = err
		return r
	}
	res, err := renderDocument(ctx, runner, doc, opts)
	if err != nil {
		r.Err = err
		return r
	}
	r.Report, r.CacheHit = res.Report, res.CacheHit
	r.Output = outputPath(path, outDir)
	r.Err = writePDF(r.Output, res.PDF)
	return r
}

// collectDocuments lists the readable documents directly inside dir,
// sorted by name. Hidden files and unknown extensions are skipped.
func collectDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "directory %s", dir)
	}
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || errors.ValidateDocumentFilename(e.Name()) != nil {
			continue
		}
		if _, err := io.FormatFromPath(e.Name()); err != nil {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
