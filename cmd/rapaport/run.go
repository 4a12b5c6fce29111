package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pyhub-apps/diamondprice-golang/pkg/config"
	"github.com/pyhub-apps/diamondprice-golang/pkg/pipeline"
	"github.com/pyhub-apps/diamondprice-golang/pkg/rapaport"
	"github.com/pyhub-apps/diamondprice-golang/pkg/render"
)

// fileResult is the outcome of extracting one file
type fileResult struct {
	path   string
	result *rapaport.Result
	err    error
}

func newPipeline(logger *zap.Logger, cfg *config.Config) *pipeline.Pipeline {
	return pipeline.New(
		pipeline.WithSource(pipeline.PDFSource{
			Password:    cfg.Extraction.Password,
			TextOptions: cfg.TextOptions(),
		}),
		pipeline.WithReconstructor(rapaport.New(
			rapaport.WithRules(cfg.ReconstructorRules()),
			rapaport.WithLogger(logger),
		)),
		pipeline.WithLogger(logger),
	)
}

// extractAll runs every file through the pipeline, at most workers at a time.
// A failing file does not stop the others.
func extractAll(ctx context.Context, logger *zap.Logger, p *pipeline.Pipeline, paths []string, workers int) ([]fileResult, error) {
	results := make([]fileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			logger.Debug("extracting", zap.String("file", path))
			result, err := p.ExtractFile(ctx, path)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			results[i] = fileResult{path: path, result: result, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runExtract(ctx context.Context, logger *zap.Logger, cfg *config.Config, paths []string, workers int) error {
	renderer, err := render.New(cfg.Output.Format, cfg.Output.Precision, cfg.Output.Color)
	if err != nil {
		return err
	}

	results, err := extractAll(ctx, logger, newPipeline(logger, cfg), paths, workers)
	if err != nil {
		return err
	}

	return writeResults(os.Stdout, logger, renderer, cfg.Output.Format, results)
}

// writeResults renders results in input order and reports how many failed.
// Several files in JSON form a single array with one entry per file.
func writeResults(w io.Writer, logger *zap.Logger, renderer render.Renderer, format string, results []fileResult) error {
	jsonRenderer, ok := renderer.(*render.JSONRenderer)
	combined := ok && len(results) > 1

	failed := 0
	var files []render.FileResult
	for i, fr := range results {
		if fr.err != nil {
			failed++
			logger.Error("failed to extract tables", zap.String("file", fr.path), zap.Error(fr.err))
			if combined {
				files = append(files, render.FileResult{File: fr.path, Error: fr.err.Error()})
			}
			continue
		}

		if fr.result.Empty() {
			logger.Info("no price data found", zap.String("file", fr.path))
		} else {
			logger.Info("extracted tables", zap.String("file", fr.path), zap.Int("tables", fr.result.Len()))
		}

		if combined {
			files = append(files, render.FileResult{File: fr.path, Tables: fr.result})
			continue
		}

		if len(results) > 1 && format == render.FormatText {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "==> %s <==\n", fr.path)
		}
		if err := renderer.Render(w, fr.result); err != nil {
			return fmt.Errorf("failed to render %s: %w", fr.path, err)
		}
	}

	if combined {
		if err := jsonRenderer.RenderFiles(w, files); err != nil {
			return fmt.Errorf("failed to render results: %w", err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(results))
	}
	return nil
}

func runText(ctx context.Context, logger *zap.Logger, cfg *config.Config, path string, numbered bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	lines, err := newPipeline(logger, cfg).Lines(ctx, data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return writeLines(os.Stdout, lines, numbered)
}

func writeLines(w io.Writer, lines []string, numbered bool) error {
	for i, line := range lines {
		var err error
		if numbered {
			_, err = fmt.Fprintf(w, "%5d  %s\n", i+1, line)
		} else {
			_, err = fmt.Fprintln(w, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
