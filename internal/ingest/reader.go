package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var errEmptyFile = errors.New("file has no header row")

// Table holds one decoded report file: the header row and the data rows in
// file order. Rows may be shorter or longer than the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadTable decodes a report file into rows, dispatching on the file
// extension. CSV is the primary format; XLSX workbooks are read from their
// first sheet. Any decode failure here is terminal for the whole file.
func ReadTable(reader io.Reader, filename string) (Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return readXLSX(reader)
	default:
		return readCSV(reader)
	}
}

func readCSV(reader io.Reader) (Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read delimited data: %w", err)
	}

	if len(records) == 0 {
		return Table{}, errEmptyFile
	}

	return Table{Header: records[0], Rows: records[1:]}, nil
}

func readXLSX(reader io.Reader) (Table, error) {
	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		return Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}

	if len(rows) == 0 {
		return Table{}, errEmptyFile
	}

	return Table{Header: rows[0], Rows: rows[1:]}, nil
}
