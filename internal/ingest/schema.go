package ingest

import (
	"fmt"
	"strings"
)

// Column names are matched against the header row exactly, case-sensitive.
const (
	ColumnLeadID       = "LeadId"
	ColumnLeadDate     = "LeadDate"
	ColumnLeadCheckin  = "LeadCheckin"
	ColumnLeadCheckout = "LeadCheckout"
	ColumnRevenue      = "Revenue"
	ColumnCommission   = "Commission"
	ColumnHotelID      = "HotelID"
	ColumnHotelCountry = "HotelCountry"
	ColumnHotelCity    = "HotelCity"
)

// requiredColumns must be present in the header for a file to be processed
// at all. Revenue and Commission are deliberately not structural: a file
// missing them entirely is still ingested with zero amounts for every row,
// matching the tolerant policy for monetary fields.
var requiredColumns = []string{
	ColumnLeadID,
	ColumnLeadDate,
	ColumnLeadCheckin,
	ColumnLeadCheckout,
}

// Schema maps the column layout of one report file, resolved once from the
// header row instead of per field access.
type Schema struct {
	index map[string]int
}

func NewSchema(header []string) (Schema, error) {
	index := make(map[string]int, len(header))

	for pos, name := range header {
		if _, ok := index[name]; ok {
			continue
		}

		index[name] = pos
	}

	missing := []string{}

	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return Schema{}, fmt.Errorf("malformed header: missing required columns %s", strings.Join(missing, ", "))
	}

	return Schema{index: index}, nil
}

// Has reports whether the file carries the given column at all.
func (s Schema) Has(column string) bool {
	_, ok := s.index[column]

	return ok
}

// Value returns the raw cell for the given column, or an empty string when
// the column is absent from the file or the row is shorter than the header.
func (s Schema) Value(row []string, column string) string {
	pos, ok := s.index[column]
	if !ok || pos >= len(row) {
		return ""
	}

	return row[pos]
}
