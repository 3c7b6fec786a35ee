package transaction

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"kayak/infras/otel"
	"kayak/internal/domains/transaction/model"
	"kayak/internal/domains/transaction/service"
	"kayak/shared/constant"
	gDto "kayak/shared/dto"
	"kayak/shared/failure"
	"kayak/shared/validator"
	"kayak/transport/http/response"
)

const exportFileName = "kayak_transactions.csv"

// allowedReportExtensions mirrors the formats the ingest reader can decode.
var allowedReportExtensions = []string{".csv", ".xlsx", ".xls"}

type uploadRequest struct {
	File multipart.FileHeader `validate:"maxfilesize=32"`
}

type Handler struct {
	service service.Transaction
	otel    otel.Otel
}

func New(service service.Transaction, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/transactions", func(routerGroup chi.Router) {
		routerGroup.Post("/import", handler.ImportTransactions)
		routerGroup.Get("/", handler.GetTransactions)
		routerGroup.Get("/export", handler.ExportTransactions)
		routerGroup.Get("/charts/monthly-revenue", handler.MonthlyRevenue)
		routerGroup.Get("/charts/country-revenue", handler.CountryRevenue)
	})
}

// ImportTransactions ingests one uploaded report file.
// @Summary Import a transaction report
// @Description Upload a CSV or XLSX transaction report and ingest it row by row.
// @Tags Transaction
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Report file (.csv, .xlsx)"
// @Success 200 {object} response.Data[dto.ImportReport] "Import report with success and error counts"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transactions/import [post]
func (handler *Handler) ImportTransactions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ImportTransactions")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequestFromString("request is not a valid multipart form"))

		return
	}

	file, fileHeader, err := request.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("no report file in upload")

		response.WithError(writer, failure.BadRequestFromString("no file selected, please upload a report file"))

		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !slices.Contains(allowedReportExtensions, ext) {
		response.WithError(writer, failure.BadRequestFromString("invalid file format, please upload a CSV or XLSX report"))

		return
	}

	req := uploadRequest{File: *fileHeader}
	if err = validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate report upload")

		response.WithError(writer, err)

		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read report file")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	report, err := handler.service.Import(ctx, fileHeader.Filename, data)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to import report")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Report imported: " + report.RunID)

	response.WithJSON(writer, http.StatusOK, report)
}

// GetTransactions retrieves stored transactions with optional filters.
// @Summary Get transactions
// @Description Retrieve imported transactions with optional filtering and pagination.
// @Tags Transaction
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param lead_id query string false "Search by lead ID (substring match)"
// @Param hotel_country query string false "Filter by hotel country"
// @Param hotel_city query string false "Filter by hotel city"
// @Success 200 {object} response.Data[dto.TransactionResponse] "List of transactions"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/transactions [get]
func (handler *Handler) GetTransactions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	transactions, err := handler.service.GetAll(ctx, queryParams, filterFromRequest(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transactions")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Transactions retrieved successfully")

	response.WithJSON(writer, http.StatusOK, transactions)
}

// ExportTransactions streams the stored records as a CSV attachment.
// @Summary Export transactions as CSV
// @Description Download imported transactions as a CSV file with the fixed report header.
// @Tags Transaction
// @Produce text/csv
// @Param pagination query gDto.QueryParams false "Ordering and pagination parameters"
// @Param lead_id query string false "Search by lead ID (substring match)"
// @Param hotel_country query string false "Filter by hotel country"
// @Param hotel_city query string false "Filter by hotel city"
// @Success 200 {string} string "CSV payload"
// @Failure 500 {object} response.Error
// @Router /v1/transactions/export [get]
func (handler *Handler) ExportTransactions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeCSV)
	writer.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)

	if err := handler.service.Export(ctx, writer, queryParams, filterFromRequest(request)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export transactions")

		return
	}

	scope.AddEvent("Transactions exported successfully")
}

// MonthlyRevenue returns the revenue-per-month line chart series.
// @Summary Monthly revenue chart
// @Description Revenue summed per calendar month of the lead date, oldest first.
// @Tags Transaction
// @Produce json
// @Success 200 {object} response.Data[dto.GetMonthlyRevenueResponse] "Monthly revenue series"
// @Failure 500 {object} response.Error
// @Router /v1/transactions/charts/monthly-revenue [get]
func (handler *Handler) MonthlyRevenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MonthlyRevenue")
	defer scope.End()

	series, err := handler.service.MonthlyRevenue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get monthly revenue")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, series)
}

// CountryRevenue returns the revenue-per-country pie chart data.
// @Summary Country revenue chart
// @Description Revenue summed per hotel country, minor shares grouped as Others.
// @Tags Transaction
// @Produce json
// @Success 200 {object} response.Data[dto.CountryRevenueChart] "Country revenue slices"
// @Failure 500 {object} response.Error
// @Router /v1/transactions/charts/country-revenue [get]
func (handler *Handler) CountryRevenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CountryRevenue")
	defer scope.End()

	chart, err := handler.service.CountryRevenue(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get country revenue")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, chart)
}

func filterFromRequest(request *http.Request) gDto.FilterGroup {
	leadID := request.URL.Query().Get(model.FieldLeadID)
	country := request.URL.Query().Get(model.FieldHotelCountry)
	city := request.URL.Query().Get(model.FieldHotelCity)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if leadID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLeadID,
			Operator: gDto.FilterOperatorLike,
			Value:    leadID,
			Table:    model.TableName,
		})
	}

	if country != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldHotelCountry,
			Operator: gDto.FilterOperatorEq,
			Value:    country,
			Table:    model.TableName,
		})
	}

	if city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldHotelCity,
			Operator: gDto.FilterOperatorEq,
			Value:    city,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
