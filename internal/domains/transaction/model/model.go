package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"kayak/shared/model"
)

const (
	TableName  = "kayak_transactions"
	EntityName = "transaction"

	FieldLeadID       = "lead_id"
	FieldLeadDate     = "lead_date"
	FieldLeadCheckin  = "lead_checkin"
	FieldLeadCheckout = "lead_checkout"
	FieldRevenue      = "revenue"
	FieldCommission   = "commission"
	FieldHotelID      = "hotel_id"
	FieldHotelCountry = "hotel_country"
	FieldHotelCity    = "hotel_city"
)

// LocationStatusNone is the display value for any record whose hotel
// location cannot be fully resolved.
const LocationStatusNone = "None"

type Transaction struct {
	LeadID       string          `db:"lead_id"`
	LeadDate     time.Time       `db:"lead_date"`
	LeadCheckin  time.Time       `db:"lead_checkin"`
	LeadCheckout time.Time       `db:"lead_checkout"`
	Revenue      decimal.Decimal `db:"revenue"`
	Commission   decimal.Decimal `db:"commission"`
	HotelID      *int64          `db:"hotel_id"`
	HotelCountry *string         `db:"hotel_country"`
	HotelCity    *string         `db:"hotel_city"`
	model.Metadata
}

// LocationStatus derives the display location for a transaction. It is
// computed on read, never stored. Any absent contributing field collapses
// the whole status to "None".
func (t *Transaction) LocationStatus() string {
	if t.HotelCity == nil || *t.HotelCity == "" {
		return LocationStatusNone
	}

	if t.HotelCountry == nil || *t.HotelCountry == "" {
		return LocationStatusNone
	}

	if t.HotelID == nil {
		return LocationStatusNone
	}

	return fmt.Sprintf("%s, %s (ID: %d)", *t.HotelCity, *t.HotelCountry, *t.HotelID)
}

// MonthlyRevenue is one point of the revenue-per-month aggregate, keyed by
// the first instant of the month of lead_date.
type MonthlyRevenue struct {
	Month        time.Time       `db:"month"`
	TotalRevenue decimal.Decimal `db:"total_revenue"`
}

// CountryRevenue is one slice of the revenue-per-country aggregate. A nil
// country groups the records with no resolved hotel country.
type CountryRevenue struct {
	HotelCountry *string         `db:"hotel_country"`
	TotalRevenue decimal.Decimal `db:"total_revenue"`
}
