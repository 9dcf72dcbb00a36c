package towerdb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadFile loads a tower table, dispatching on file extension: .xlsx for
// spreadsheet exports, anything else is treated as CSV.
func LoadFile(path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tower table: %w", err)
	}
	defer f.Close()
	return LoadCSV(f)
}

// LoadCSV reads a tower table from CSV. Ragged rows are tolerated; missing
// trailing columns read as empty.
func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tower csv: %w", err)
	}
	return fromRows(rows), nil
}

// LoadXLSX reads a tower table from the first sheet of an XLSX workbook.
func LoadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open tower xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return newTable(), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read tower xlsx sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows), nil
}
