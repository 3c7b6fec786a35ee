package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"kayak/config"
	"kayak/infras/kafka"
	"kayak/infras/otel"
	"kayak/infras/s3"
	"kayak/internal/domains/transaction/model"
	"kayak/internal/domains/transaction/model/dto"
	"kayak/internal/domains/transaction/repository"
	"kayak/internal/ingest"
	"kayak/shared"
	"kayak/shared/cache"
	"kayak/shared/constant"
	gDto "kayak/shared/dto"
	"kayak/shared/failure"
	gModel "kayak/shared/model"
	"kayak/shared/timezone"
)

const (
	cacheGetAllTransaction = "transaction:gets"
	cacheCountTransaction  = "transaction:count"
	cacheMonthlyRevenue    = "transaction:revenue:monthly"
	cacheCountryRevenue    = "transaction:revenue:country"
)

const (
	exportDateLayout = "2006-01-02 15:04:05"

	// Countries below this share of total revenue fold into one
	// "Others" slice of the country chart.
	minCountryShare = 0.06

	unknownCountryLabel = "Unknown"
	othersLabel         = "Others"
)

// exportHeader is the fixed column set of the re-export format.
var exportHeader = []string{
	ingest.ColumnLeadID,
	ingest.ColumnLeadDate,
	ingest.ColumnLeadCheckin,
	ingest.ColumnLeadCheckout,
	ingest.ColumnRevenue,
	ingest.ColumnCommission,
	"Hotel Location",
}

type Transaction interface {
	Import(ctx context.Context, filename string, data []byte) (dto.ImportReport, error)
	Export(ctx context.Context, writer io.Writer, params gDto.QueryParams, filter gDto.FilterGroup) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTransactionsResponse, error)
	Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	MonthlyRevenue(ctx context.Context) (dto.GetMonthlyRevenueResponse, error)
	CountryRevenue(ctx context.Context) (dto.CountryRevenueChart, error)
}

type serviceImpl struct {
	repo  repository.Transaction
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
	kafka kafka.Client
}

func New(repo repository.Transaction, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3, kafka kafka.Client) Transaction {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
		kafka: kafka,
	}
}

// Import runs one report file through the pipeline: decode the table,
// resolve the column schema once, then parse, normalize, and upsert row by
// row in file order. A bad row is counted and logged, never fatal; only an
// undecodable file or malformed header aborts the run.
func (s *serviceImpl) Import(ctx context.Context, filename string, data []byte) (report dto.ImportReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Import")
	defer scope.End()
	defer scope.TraceIfError(err)

	report.RunID = uuid.NewString()
	scope.SetAttribute("import.run_id", report.RunID)

	table, err := ingest.ReadTable(bytes.NewReader(data), filename)
	if err != nil {
		return s.terminalFailure(report, filename, err)
	}

	schema, err := ingest.NewSchema(table.Header)
	if err != nil {
		return s.terminalFailure(report, filename, err)
	}

	parser := ingest.NewParser(schema)

	for i, row := range table.Rows {
		record, rowErr := parser.Parse(row)
		if rowErr != nil {
			report.ErrorCount++
			log.Warn().
				Str("runID", report.RunID).
				Int("row", i+1).
				Strs("raw", row).
				Err(rowErr).
				Msg("skipping unparseable report row")

			continue
		}

		record = ingest.Normalize(record)

		if rowErr = s.repo.Upsert(ctx, recordToModel(record, report.RunID)); rowErr != nil {
			report.ErrorCount++
			log.Error().
				Str("runID", report.RunID).
				Str("leadID", record.LeadID).
				Int("row", i+1).
				Strs("raw", row).
				Err(rowErr).
				Msg("failed to persist report row")

			continue
		}

		report.SuccessCount++
	}

	log.Info().
		Str("runID", report.RunID).
		Str("filename", filename).
		Int("success", report.SuccessCount).
		Int("errors", report.ErrorCount).
		Msg("import run finished")

	s.afterImport(ctx, report, filename, data)

	return report, nil
}

func (s *serviceImpl) terminalFailure(report dto.ImportReport, filename string, err error) (dto.ImportReport, error) {
	report.SuccessCount = 0
	report.ErrorCount = 1
	report.Error = err.Error()

	log.Error().
		Str("runID", report.RunID).
		Str("filename", filename).
		Err(err).
		Msg("import run aborted")

	return report, failure.BadRequest(fmt.Errorf("failed to import %s: %w", filename, err)) //nolint:wrapcheck
}

// afterImport handles the non-persistence tail of a run: cache
// invalidation, raw file archiving, and the run event. None of these may
// fail the run itself.
func (s *serviceImpl) afterImport(ctx context.Context, report dto.ImportReport, filename string, data []byte) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTransaction)
		shared.InvalidateCaches(c, s.cache, cacheCountTransaction)
		shared.InvalidateCaches(c, s.cache, cacheMonthlyRevenue)
		shared.InvalidateCaches(c, s.cache, cacheCountryRevenue)

		if s.cfg.Importer.Archive.Enable {
			objectName := report.RunID + path.Ext(filename)

			url, err := s.s3.UploadFileBytes(c, "", s.cfg.Importer.Archive.Directory, objectName, "text/csv", data)
			if err != nil {
				log.Error().Err(err).Str("runID", report.RunID).Msg("failed to archive report file")
			} else {
				log.Info().Str("runID", report.RunID).Str("url", url).Msg("report file archived")
			}
		}

		if s.cfg.Importer.Events.Enable {
			err := s.kafka.SendMessages(c, s.cfg.Importer.Events.Topic, kafka.Message{Key: report.RunID, Value: report})
			if err != nil {
				log.Error().Err(err).Str("runID", report.RunID).Msg("failed to publish import report event")
			}
		}
	}()
}

// Export writes the stored records as delimited data with the fixed
// re-export header, in the order the caller asked for.
func (s *serviceImpl) Export(ctx context.Context, writer io.Writer, params gDto.QueryParams, filter gDto.FilterGroup) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer scope.TraceIfError(err)

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions for export")

		return fmt.Errorf("failed to get transactions for export: %w", err)
	}

	csvWriter := csv.NewWriter(writer)

	if err = csvWriter.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for i := range models {
		mod := &models[i]

		err = csvWriter.Write([]string{
			mod.LeadID,
			timezone.Format(mod.LeadDate, exportDateLayout),
			timezone.Format(mod.LeadCheckin, exportDateLayout),
			timezone.Format(mod.LeadCheckout, exportDateLayout),
			mod.Revenue.StringFixed(2),
			mod.Commission.StringFixed(2),
			mod.LocationStatus(),
		})
		if err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	csvWriter.Flush()

	if err = csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTransaction, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for transactions")

		return res, nil
	}

	total, err := s.Count(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count transactions")

		return res, fmt.Errorf("failed to count transactions: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transactions")

		return res, fmt.Errorf("failed to get transactions: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTransaction, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for transaction count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count transactions")

		return res, fmt.Errorf("failed to count transactions: %w", err)
	}

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

// MonthlyRevenue returns the revenue-per-month line series.
func (s *serviceImpl) MonthlyRevenue(ctx context.Context) (res dto.GetMonthlyRevenueResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MonthlyRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheMonthlyRevenue, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheMonthlyRevenue).Msg("cache hit for monthly revenue")

		return res, nil
	}

	months, err := s.repo.RevenueByMonth(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate monthly revenue")

		return res, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}

	res.FromModels(months)

	s.saveToCache(ctx, cacheMonthlyRevenue, res)

	return res, nil
}

// CountryRevenue returns the revenue-per-country pie chart. Countries whose
// share of total revenue is below the threshold fold into a trailing
// "Others" slice; records with no country chart as "Unknown".
func (s *serviceImpl) CountryRevenue(ctx context.Context) (res dto.CountryRevenueChart, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountryRevenue")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheCountryRevenue, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheCountryRevenue).Msg("cache hit for country revenue")

		return res, nil
	}

	countries, err := s.repo.RevenueByCountry(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to aggregate country revenue")

		return res, fmt.Errorf("failed to aggregate country revenue: %w", err)
	}

	res = groupCountryRevenue(countries)

	s.saveToCache(ctx, cacheCountryRevenue, res)

	return res, nil
}

func (s *serviceImpl) saveToCache(ctx context.Context, key string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save to cache")
		}
	}()
}

func groupCountryRevenue(countries []model.CountryRevenue) dto.CountryRevenueChart {
	res := dto.CountryRevenueChart{Labels: []string{}, Values: []float64{}}

	total := 0.0
	for i := range countries {
		total += countries[i].TotalRevenue.InexactFloat64()
	}

	others := 0.0

	for i := range countries {
		label := unknownCountryLabel
		if countries[i].HotelCountry != nil && *countries[i].HotelCountry != "" {
			label = *countries[i].HotelCountry
		}

		revenue := countries[i].TotalRevenue.InexactFloat64()

		share := 0.0
		if total > 0 {
			share = revenue / total
		}

		if share < minCountryShare {
			others += revenue

			continue
		}

		res.Labels = append(res.Labels, label)
		res.Values = append(res.Values, revenue)
	}

	if others > 0 {
		res.Labels = append(res.Labels, othersLabel)
		res.Values = append(res.Values, others)
	}

	return res
}

func recordToModel(record ingest.Record, runID string) model.Transaction {
	mod := model.Transaction{
		LeadID:       record.LeadID,
		LeadDate:     record.LeadDate,
		LeadCheckin:  record.LeadCheckin,
		LeadCheckout: record.LeadCheckout,
		Revenue:      record.Revenue,
		Commission:   record.Commission,
		HotelID:      record.HotelID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  runID,
			ModifiedBy: runID,
		},
	}

	if record.HotelCountry != "" {
		mod.HotelCountry = &record.HotelCountry
	}

	if record.HotelCity != "" {
		mod.HotelCity = &record.HotelCity
	}

	return mod
}
