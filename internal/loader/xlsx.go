package loader

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/dataloom/internal/dataset"
)

// LoadExcel reads one sheet of an Excel workbook into a dataset. An empty
// sheet name selects the first sheet. The first row is the header.
func LoadExcel(path, sheet string) (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataset.New(nil)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return dataset.New(nil)
	}
	return dataset.FromRecords(rows[0], rows[1:])
}
