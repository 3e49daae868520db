package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dataloom/internal/report"
)

type stubGenerator struct {
	reply string
	err   error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func writeCSV(t *testing.T, rows ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644))
	return path
}

func TestRunTabular(t *testing.T) {
	path := writeCSV(t,
		"x,cat",
		"1,a",
		"2,a",
		",b",
		"1,a",
	)
	runner := NewRunner(&stubGenerator{reply: "# Report"}, nil, 0)
	res, err := runner.Run(context.Background(), path, "")
	require.NoError(t, err)
	require.NotNil(t, res.Tabular)
	assert.NotEmpty(t, res.RunID)

	tab := res.Tabular
	assert.Equal(t, 4, tab.Raw.Rows())
	// Row 4 duplicates row 1 and is dropped after median imputation.
	assert.Equal(t, 3, tab.Cleaned.Rows())
	assert.Empty(t, tab.Summary.MissingValues, "cleaned dataset must report no missing values")
	assert.Equal(t, "# Report", tab.ReportMarkdown)
	assert.Nil(t, res.PDFs)
	assert.Empty(t, res.Executive)
}

func TestRunDegradedReportIsNotAnError(t *testing.T) {
	path := writeCSV(t, "x", "1", "2")
	runner := NewRunner(&stubGenerator{err: errors.New("backend down")}, nil, 0)
	res, err := runner.Run(context.Background(), path, "")
	require.NoError(t, err, "generation failure must degrade, not fail the run")
	assert.True(t, strings.HasPrefix(res.Tabular.ReportMarkdown, report.FailurePrefix))
	assert.Contains(t, res.Tabular.ReportMarkdown, "backend down")
	// The structured summary stays valid regardless of narrative rendering.
	assert.Equal(t, 2, res.Tabular.Summary.Shape.Rows)
}

func TestRunUnsupportedExtension(t *testing.T) {
	runner := NewRunner(nil, nil, 0)
	_, err := runner.Run(context.Background(), "data.txt", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported tabular extension")
}

func TestRunNilGeneratorSkipsReports(t *testing.T) {
	path := writeCSV(t, "x", "1", "2")
	runner := NewRunner(nil, nil, 0)
	res, err := runner.Run(context.Background(), path, "")
	require.NoError(t, err)
	assert.Empty(t, res.Tabular.ReportMarkdown)
	assert.NotNil(t, res.Tabular.Summary)
}

func TestRunPDFFolderOnly(t *testing.T) {
	// An empty folder runs the document branch without any summaries.
	dir := t.TempDir()
	runner := NewRunner(&stubGenerator{reply: "md"}, nil, 0)
	res, err := runner.Run(context.Background(), "", dir)
	require.NoError(t, err)
	assert.Nil(t, res.Tabular)
	require.NotNil(t, res.PDFs)
	assert.Empty(t, res.PDFs.Summaries)
	assert.Empty(t, res.PDFs.Combined)
}
