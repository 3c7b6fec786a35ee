package ingest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"kayak/internal/ingest"
)

func TestReadTable_CSV(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		data := "LeadId,LeadDate,Revenue\nL-1,01/02/2023 10:00:00,120.50\nL-2,02/02/2023 11:00:00,80.00\n"

		table, err := ingest.ReadTable(strings.NewReader(data), "report.csv")

		assert.NoError(t, err)
		assert.Equal(t, []string{"LeadId", "LeadDate", "Revenue"}, table.Header)
		assert.Len(t, table.Rows, 2)
		assert.Equal(t, []string{"L-1", "01/02/2023 10:00:00", "120.50"}, table.Rows[0])
	})

	t.Run("ragged rows are preserved", func(t *testing.T) {
		data := "LeadId,LeadDate,Revenue\nL-1,01/02/2023 10:00:00\nL-2,02/02/2023 11:00:00,80.00,extra\n"

		table, err := ingest.ReadTable(strings.NewReader(data), "report.csv")

		assert.NoError(t, err)
		assert.Len(t, table.Rows[0], 2)
		assert.Len(t, table.Rows[1], 4)
	})

	t.Run("header only", func(t *testing.T) {
		table, err := ingest.ReadTable(strings.NewReader("LeadId,LeadDate\n"), "report.csv")

		assert.NoError(t, err)
		assert.Empty(t, table.Rows)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ingest.ReadTable(strings.NewReader(""), "report.csv")

		assert.EqualError(t, err, "file has no header row")
	})

	t.Run("unknown extension falls back to csv", func(t *testing.T) {
		table, err := ingest.ReadTable(strings.NewReader("LeadId\nL-1\n"), "report.txt")

		assert.NoError(t, err)
		assert.Equal(t, []string{"LeadId"}, table.Header)
	})
}

func TestReadTable_XLSX(t *testing.T) {
	workbook := excelize.NewFile()

	sheet := workbook.GetSheetName(0)
	assert.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]any{"LeadId", "LeadDate", "Revenue"}))
	assert.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]any{"L-1", "01/02/2023 10:00:00", "120.50"}))

	buf, err := workbook.WriteToBuffer()
	assert.NoError(t, err)

	table, err := ingest.ReadTable(buf, "report.xlsx")

	assert.NoError(t, err)
	assert.Equal(t, []string{"LeadId", "LeadDate", "Revenue"}, table.Header)
	if assert.Len(t, table.Rows, 1) {
		assert.Equal(t, "L-1", table.Rows[0][0])
	}
}

func TestReadTable_XLSXGarbage(t *testing.T) {
	_, err := ingest.ReadTable(strings.NewReader("this is not a workbook"), "report.xlsx")

	assert.ErrorContains(t, err, "failed to open workbook")
}
