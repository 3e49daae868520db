package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dataloom/internal/dataset"
	"github.com/KaramelBytes/dataloom/internal/eda"
)

type stubGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func testSummary(t *testing.T) *eda.Summary {
	t.Helper()
	ds, err := dataset.FromRecords([]string{"x", "cat"}, [][]string{
		{"1", "a"}, {"2", "b"},
	})
	require.NoError(t, err)
	return eda.Summarize(ds, eda.DefaultMaxCategories)
}

func TestEDAReportEmbedsSummaryJSON(t *testing.T) {
	gen := &stubGenerator{reply: "# Analysis"}
	res := EDAReport(context.Background(), gen, testSummary(t))

	require.False(t, res.Degraded())
	assert.Equal(t, "# Analysis", res.Render())

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	for _, want := range []string{`"shape"`, `"numeric_stats"`, "Dataset Overview", "Key Takeaways"} {
		assert.Contains(t, prompt, want)
	}
}

func TestResultRenderDegraded(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	res := EDAReport(context.Background(), gen, testSummary(t))

	require.True(t, res.Degraded())
	out := res.Render()
	assert.True(t, strings.HasPrefix(out, FailurePrefix), "degraded render must start with the failure marker: %q", out)
	assert.Contains(t, out, "quota exceeded")
}

func TestDocumentSummaryTruncatesLongText(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	long := strings.Repeat("x", maxDocumentChars+100)
	res := DocumentSummary(context.Background(), gen, "big.pdf", long)

	require.False(t, res.Degraded())
	require.Len(t, gen.prompts, 1)
	assert.Less(t, len(gen.prompts[0]), maxDocumentChars+500)
	assert.Contains(t, gen.prompts[0], "big.pdf")
}

func TestCombinedSummaryStableOrder(t *testing.T) {
	gen := &stubGenerator{reply: "ok"}
	_ = CombinedSummary(context.Background(), gen, map[string]string{
		"b.pdf": "B",
		"a.pdf": "A",
	})
	require.Len(t, gen.prompts, 1)
	assert.Less(t, strings.Index(gen.prompts[0], "a.pdf"), strings.Index(gen.prompts[0], "b.pdf"))
}

func TestExecutiveReportCombinesBoth(t *testing.T) {
	gen := &stubGenerator{reply: "exec"}
	res := ExecutiveReport(context.Background(), gen, "EDA-PART", "DOCS-PART")
	require.False(t, res.Degraded())
	assert.Contains(t, gen.prompts[0], "EDA-PART")
	assert.Contains(t, gen.prompts[0], "DOCS-PART")
}
