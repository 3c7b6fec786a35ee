package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"kayak/shared/timezone"
)

// hotelIDSentinel stands in for an absent hotel identifier before the
// negativity check. Any negative value, the sentinel included, normalizes
// to no hotel at all.
const hotelIDSentinel = -100

// dateLayouts is the fixed try-order for report timestamps: day-first,
// month-first, ISO, then the same three without seconds. The first layout
// that parses wins. Day-first deliberately precedes month-first; a value
// like "03/04/2023" is ambiguous and resolves day-first by precedence, so
// the order must not be changed without confirming the report locale.
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"01/02/2006 15:04",
	"2006-01-02 15:04",
}

// Record is the typed output of parsing one report row, prior to
// normalization. Country and city are still raw strings at this stage.
type Record struct {
	LeadID       string
	LeadDate     time.Time
	LeadCheckin  time.Time
	LeadCheckout time.Time
	Revenue      decimal.Decimal
	Commission   decimal.Decimal
	HotelID      *int64
	HotelCountry string
	HotelCity    string
}

// Parser decodes raw report rows against a resolved column schema.
type Parser struct {
	schema Schema
}

func NewParser(schema Schema) Parser {
	return Parser{schema: schema}
}

// Parse converts one raw row into a typed Record. A missing lead identifier
// or an unparseable date is a row-level failure; monetary and hotel fields
// never fail, they coerce to zero and absent respectively.
func (p Parser) Parse(row []string) (Record, error) {
	record := Record{}

	record.LeadID = strings.TrimSpace(p.schema.Value(row, ColumnLeadID))
	if record.LeadID == "" {
		return Record{}, fmt.Errorf("missing required value for %s", ColumnLeadID)
	}

	var err error

	if record.LeadDate, err = parseDate(p.schema.Value(row, ColumnLeadDate)); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColumnLeadDate, err)
	}

	if record.LeadCheckin, err = parseDate(p.schema.Value(row, ColumnLeadCheckin)); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColumnLeadCheckin, err)
	}

	if record.LeadCheckout, err = parseDate(p.schema.Value(row, ColumnLeadCheckout)); err != nil {
		return Record{}, fmt.Errorf("%s: %w", ColumnLeadCheckout, err)
	}

	record.Revenue = parseAmount(p.schema.Value(row, ColumnRevenue))
	record.Commission = parseAmount(p.schema.Value(row, ColumnCommission))
	record.HotelID = parseHotelID(p.schema.Value(row, ColumnHotelID))
	record.HotelCountry = p.schema.Value(row, ColumnHotelCountry)
	record.HotelCity = p.schema.Value(row, ColumnHotelCity)

	return record, nil
}

func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range dateLayouts {
		parsed, err := timezone.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("time data %q does not match any expected formats", value)
}

// parseAmount favors complete ingestion over strictness: anything that is
// not a non-negative number becomes exactly 0.00.
func parseAmount(value string) decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || amount.IsNegative() {
		return decimal.Zero
	}

	return amount.Round(2)
}

func parseHotelID(value string) *int64 {
	id := int64(hotelIDSentinel)

	if trimmed := strings.TrimSpace(value); trimmed != "" {
		parsed, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil
		}

		id = parsed
	}

	if id < 0 {
		return nil
	}

	return &id
}
