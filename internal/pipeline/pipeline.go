// Package pipeline orchestrates the end-to-end run: load a tabular file,
// clean it, summarize it, and render narrative reports; optionally extract
// and summarize a folder of PDFs. Each invocation works on its own dataset
// copies and shares no state with concurrent runs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/KaramelBytes/dataloom/internal/clean"
	"github.com/KaramelBytes/dataloom/internal/dataset"
	"github.com/KaramelBytes/dataloom/internal/eda"
	"github.com/KaramelBytes/dataloom/internal/loader"
	"github.com/KaramelBytes/dataloom/internal/report"
)

// TabularResult is the outcome of the tabular branch.
type TabularResult struct {
	Raw            *dataset.Dataset
	Cleaned        *dataset.Dataset
	Summary        *eda.Summary
	ReportMarkdown string
}

// PDFResult is the outcome of the document branch.
type PDFResult struct {
	Summaries map[string]string
	Combined  string
}

// Result is one full pipeline invocation. Branch pointers are nil when the
// corresponding input was not provided.
type Result struct {
	RunID     string
	Tabular   *TabularResult
	PDFs      *PDFResult
	Executive string
}

// Runner holds the pipeline's collaborators. A nil Generator skips all
// narrative rendering and leaves report fields empty.
type Runner struct {
	gen           report.Generator
	logger        *slog.Logger
	maxCategories int
}

func NewRunner(gen report.Generator, logger *slog.Logger, maxCategories int) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if maxCategories <= 0 {
		maxCategories = eda.DefaultMaxCategories
	}
	return &Runner{gen: gen, logger: logger, maxCategories: maxCategories}
}

// Run executes the pipeline over an optional tabular file and an optional
// PDF folder. Input-shape problems (unsupported extension, unreadable
// file) are returned as errors; text-generation failures degrade to
// marker-prefixed report strings and never fail the run.
func (r *Runner) Run(ctx context.Context, tabularPath, pdfFolder string) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	log := r.logger.With(slog.String("run_id", res.RunID))

	if tabularPath != "" {
		tab, err := r.runTabular(ctx, log, tabularPath)
		if err != nil {
			return nil, err
		}
		res.Tabular = tab
	}
	if pdfFolder != "" {
		pdfs, err := r.runPDFs(ctx, log, pdfFolder)
		if err != nil {
			return nil, err
		}
		res.PDFs = pdfs
	}

	if r.gen != nil && res.Tabular != nil && res.PDFs != nil {
		exec := report.ExecutiveReport(ctx, r.gen, res.Tabular.ReportMarkdown, res.PDFs.Combined)
		if exec.Degraded() {
			log.WarnContext(ctx, "executive report degraded", slog.String("error", exec.Err.Error()))
		}
		res.Executive = exec.Render()
	}
	return res, nil
}

func (r *Runner) runTabular(ctx context.Context, log *slog.Logger, path string) (*TabularResult, error) {
	raw, err := loader.LoadTabular(path)
	if err != nil {
		return nil, fmt.Errorf("load tabular: %w", err)
	}
	cleaned := clean.Clean(raw)
	summary := eda.Summarize(cleaned, r.maxCategories)
	log.InfoContext(ctx, "tabular pipeline complete",
		slog.String("file", filepath.Base(path)),
		slog.Int("raw_rows", raw.Rows()),
		slog.Int("cleaned_rows", cleaned.Rows()),
		slog.Int("cleaned_columns", len(cleaned.Cols)))

	tab := &TabularResult{Raw: raw, Cleaned: cleaned, Summary: summary}
	if r.gen != nil {
		rep := report.EDAReport(ctx, r.gen, summary)
		if rep.Degraded() {
			log.WarnContext(ctx, "eda report degraded", slog.String("error", rep.Err.Error()))
		}
		tab.ReportMarkdown = rep.Render()
	}
	return tab, nil
}

func (r *Runner) runPDFs(ctx context.Context, log *slog.Logger, folder string) (*PDFResult, error) {
	paths, err := loader.ListPDFFiles(folder)
	if err != nil {
		return nil, fmt.Errorf("list pdfs: %w", err)
	}
	out := &PDFResult{Summaries: make(map[string]string, len(paths))}
	for _, p := range paths {
		name := filepath.Base(p)
		text, err := loader.ExtractPDFText(p)
		if err != nil {
			// Extraction failure for one document degrades that entry only.
			log.WarnContext(ctx, "pdf extraction failed",
				slog.String("file", name), slog.String("error", err.Error()))
			out.Summaries[name] = fmt.Sprintf("%s could not extract text: %v", report.FailurePrefix, err)
			continue
		}
		if r.gen == nil {
			continue
		}
		sum := report.DocumentSummary(ctx, r.gen, name, text)
		if sum.Degraded() {
			log.WarnContext(ctx, "pdf summary degraded",
				slog.String("file", name), slog.String("error", sum.Err.Error()))
		}
		out.Summaries[name] = sum.Render()
	}
	if r.gen != nil && len(out.Summaries) > 0 {
		combined := report.CombinedSummary(ctx, r.gen, out.Summaries)
		if combined.Degraded() {
			log.WarnContext(ctx, "combined pdf summary degraded", slog.String("error", combined.Err.Error()))
		}
		out.Combined = combined.Render()
	}
	return out, nil
}
