package dto

import (
	"kayak/internal/domains/transaction/model"
	"kayak/shared"
	"kayak/shared/constant"
	gDto "kayak/shared/dto"
	"kayak/shared/timezone"
)

// ImportReport summarizes one import run. Counts are run-scoped; Error is
// set only when the whole file could not be processed.
type ImportReport struct {
	RunID        string `json:"run_id"`
	SuccessCount int    `json:"success_count"`
	ErrorCount   int    `json:"error_count"`
	Error        string `json:"error,omitempty"`
}

type TransactionResponse struct {
	LeadID         string  `json:"lead_id"`
	LeadDate       string  `json:"lead_date"`
	LeadCheckin    string  `json:"lead_checkin"`
	LeadCheckout   string  `json:"lead_checkout"`
	Revenue        string  `json:"revenue"`
	Commission     string  `json:"commission"`
	HotelID        *int64  `json:"hotel_id,omitempty"`
	HotelCountry   *string `json:"hotel_country,omitempty"`
	HotelCity      *string `json:"hotel_city,omitempty"`
	LocationStatus string  `json:"location_status"`
	gDto.Metadata
}

func (r *TransactionResponse) FromModel(mod model.Transaction) {
	r.LeadID = mod.LeadID
	r.LeadDate = timezone.Format(mod.LeadDate, constant.DateFormat)
	r.LeadCheckin = timezone.Format(mod.LeadCheckin, constant.DateFormat)
	r.LeadCheckout = timezone.Format(mod.LeadCheckout, constant.DateFormat)
	r.Revenue = mod.Revenue.StringFixed(2)
	r.Commission = mod.Commission.StringFixed(2)
	r.HotelID = mod.HotelID
	r.HotelCountry = mod.HotelCountry
	r.HotelCity = mod.HotelCity
	r.LocationStatus = mod.LocationStatus()
	r.Metadata.FromModel(mod.Metadata)
}

type GetTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTransactionsResponse) FromModels(models []model.Transaction, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Transactions = make([]TransactionResponse, len(models))
	for i, mod := range models {
		r.Transactions[i].FromModel(mod)
	}
}

// MonthlyRevenuePoint is one {x, y} sample of the monthly revenue series,
// shaped for the line chart consumer.
type MonthlyRevenuePoint struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

type GetMonthlyRevenueResponse struct {
	Series []MonthlyRevenuePoint `json:"series"`
}

func (r *GetMonthlyRevenueResponse) FromModels(models []model.MonthlyRevenue) {
	r.Series = make([]MonthlyRevenuePoint, len(models))
	for i, mod := range models {
		r.Series[i] = MonthlyRevenuePoint{
			X: timezone.Format(mod.Month, constant.DateFormat),
			Y: mod.TotalRevenue.InexactFloat64(),
		}
	}
}

// CountryRevenueChart is the pie-chart shape: parallel label and value
// slices, with minor countries already folded into a trailing Others slice.
type CountryRevenueChart struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}
