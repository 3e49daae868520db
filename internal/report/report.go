// Package report turns structured summaries into natural-language Markdown
// through a text-generation collaborator. Generation failures are carried
// as explicit degraded results, not errors: the structured summary stays
// valid whether or not narrative rendering succeeded.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/dataloom/internal/eda"
)

// FailurePrefix marks a degraded report string. Consumers must treat any
// report beginning with it as a non-fatal missing narrative.
const FailurePrefix = "[ERROR]"

// maxDocumentChars bounds the text embedded in a per-document prompt.
const maxDocumentChars = 100000

// Generator is the text-generation collaborator: prompt in, markdown out.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one generation call: markdown on success, the
// failure reason otherwise.
type Result struct {
	Markdown string
	Err      error
}

// Degraded reports whether generation failed.
func (r Result) Degraded() bool { return r.Err != nil }

// Render flattens the result to a plain string, prefixing failures with
// the recognizable marker. This is the only place the marker is produced.
func (r Result) Render() string {
	if r.Err != nil {
		return fmt.Sprintf("%s report generation failed: %v", FailurePrefix, r.Err)
	}
	return r.Markdown
}

// EDAReport renders a structured EDA summary into a Markdown report.
func EDAReport(ctx context.Context, gen Generator, sum *eda.Summary) Result {
	body, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		return Result{Err: fmt.Errorf("marshal summary: %w", err)}
	}
	prompt := fmt.Sprintf(`You are a senior data analyst. Convert this structured EDA summary
into a clean, professional Markdown report.

Summary (JSON):
%s

Include sections:

1. Dataset Overview
2. Missing Value Analysis
3. Numeric Insights
4. Categorical Patterns
5. Correlation Highlights (if any)
6. Key Takeaways

Write clearly and concisely.`, body)
	return generate(ctx, gen, prompt)
}

// DocumentSummary summarizes one extracted document text.
func DocumentSummary(ctx context.Context, gen Generator, name, text string) Result {
	if len(text) > maxDocumentChars {
		text = text[:maxDocumentChars]
	}
	prompt := fmt.Sprintf(`Summarize the key points of the following document (%s) as concise
Markdown bullet points. Focus on facts, figures, and conclusions.

Document text:
%s`, name, text)
	return generate(ctx, gen, prompt)
}

// CombinedSummary merges several per-document summaries into one overview.
func CombinedSummary(ctx context.Context, gen Generator, summaries map[string]string) Result {
	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", name, summaries[name])
	}
	prompt := fmt.Sprintf(`Combine the following document summaries into a single cohesive
Markdown overview, grouping related findings and removing repetition.

%s`, b.String())
	return generate(ctx, gen, prompt)
}

// ExecutiveReport produces a top-level narrative over the tabular EDA
// report and the combined document summary. Either input may be empty.
func ExecutiveReport(ctx context.Context, gen Generator, edaMarkdown, docsMarkdown string) Result {
	prompt := fmt.Sprintf(`Write an executive summary in Markdown combining the dataset analysis
and the supporting document findings below. Lead with the most decision-
relevant insights.

Dataset analysis:
%s

Document findings:
%s`, edaMarkdown, docsMarkdown)
	return generate(ctx, gen, prompt)
}

func generate(ctx context.Context, gen Generator, prompt string) Result {
	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Markdown: text}
}
