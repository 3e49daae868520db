package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/dataloom/internal/dataset"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		path string
		want FileType
	}{
		{"data.csv", TypeCSV},
		{"data.TSV", TypeCSV},
		{"book.xlsx", TypeExcel},
		{"legacy.XLS", TypeExcel},
		{"doc.pdf", TypePDF},
		{"notes.txt", TypeUnknown},
		{"noext", TypeUnknown},
	}
	for _, tt := range tests {
		if got := DetectFileType(tt.path); got != tt.want {
			t.Errorf("DetectFileType(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	content := "price,city\n1.5,Oslo\n2,Bergen\n,Oslo\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Rows() != 3 || len(ds.Cols) != 2 {
		t.Fatalf("shape = %d×%d, want 3×2", ds.Rows(), len(ds.Cols))
	}
	price, _ := ds.Column("price")
	if price.Kind != dataset.KindNumeric {
		t.Errorf("price kind = %q, want numeric", price.Kind)
	}
	if price.MissingCount() != 1 {
		t.Errorf("price missing = %d, want 1", price.MissingCount())
	}
	city, _ := ds.Column("city")
	if city.Kind != dataset.KindCategorical {
		t.Errorf("city kind = %q, want categorical", city.Kind)
	}
}

func TestLoadCSVTabSeparated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.tsv")
	if err := os.WriteFile(path, []byte("a\tb\n1\t2\n"), 0o644); err != nil {
		t.Fatalf("write tsv: %v", err)
	}
	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if len(ds.Cols) != 2 {
		t.Fatalf("columns = %d, want 2 (tab delimiter not sniffed)", len(ds.Cols))
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Rows() != 0 || len(ds.Cols) != 0 {
		t.Fatalf("shape = %d×%d, want 0×0", ds.Rows(), len(ds.Cols))
	}
}

func TestLoadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"score", "label"},
		{10, "a"},
		{20, "b"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = f.Close()

	ds, err := LoadExcel(path, "")
	if err != nil {
		t.Fatalf("LoadExcel: %v", err)
	}
	if ds.Rows() != 2 || len(ds.Cols) != 2 {
		t.Fatalf("shape = %d×%d, want 2×2", ds.Rows(), len(ds.Cols))
	}
	score, _ := ds.Column("score")
	if score.Kind != dataset.KindNumeric {
		t.Errorf("score kind = %q, want numeric", score.Kind)
	}
}

func TestLoadTabularRejectsUnknown(t *testing.T) {
	if _, err := LoadTabular("report.docx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestListPDFFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, p := range []string{
		filepath.Join(dir, "a.pdf"),
		filepath.Join(sub, "b.PDF"),
		filepath.Join(dir, "ignore.txt"),
	} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	paths, err := ListPDFFiles(dir)
	if err != nil {
		t.Fatalf("ListPDFFiles: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("found %d pdfs, want 2: %v", len(paths), paths)
	}
}
