// Package loader materializes datasets from on-disk files. The core
// pipeline never parses files itself; it only accepts datasets produced
// here.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/dataloom/internal/dataset"
)

// FileType identifies a supported input format by extension.
type FileType string

const (
	TypeCSV     FileType = "csv"
	TypeExcel   FileType = "excel"
	TypePDF     FileType = "pdf"
	TypeUnknown FileType = "unknown"
)

// DetectFileType classifies a path by its extension.
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return TypeCSV
	case ".xlsx", ".xls":
		return TypeExcel
	case ".pdf":
		return TypePDF
	default:
		return TypeUnknown
	}
}

// LoadTabular reads a CSV or Excel file into a dataset. Unsupported
// extensions are rejected immediately as input-shape errors.
func LoadTabular(path string) (*dataset.Dataset, error) {
	switch DetectFileType(path) {
	case TypeCSV:
		return LoadCSV(path)
	case TypeExcel:
		return LoadExcel(path, "")
	default:
		return nil, fmt.Errorf("unsupported tabular extension for path: %s", path)
	}
}
