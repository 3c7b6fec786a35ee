package service_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"kayak/config"
	kafkaMocks "kayak/infras/kafka/mocks"
	"kayak/infras/otel/mocks"
	s3Mocks "kayak/infras/s3/mocks"
	transactionMocks "kayak/internal/domains/transaction/mocks"
	"kayak/internal/domains/transaction/model"
	"kayak/internal/domains/transaction/service"
	cacheMocks "kayak/shared/cache/mocks"
	gDto "kayak/shared/dto"
	"kayak/shared/failure"
)

const reportHeader = "LeadId,LeadDate,LeadCheckin,LeadCheckout,Revenue,Commission,HotelID,HotelCountry,HotelCity\n"

type serviceFixture struct {
	repo    *transactionMocks.MockTransaction
	cache   *cacheMocks.MockRedisCache
	s3      *s3Mocks.MockS3
	kafka   *kafkaMocks.MockClient
	cfg     *config.Config
	service service.Transaction
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &serviceFixture{
		repo:  transactionMocks.NewMockTransaction(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
	}

	f.cfg = &config.Config{}
	f.cfg.Cache.TTL = 3600

	f.service = service.New(f.repo, f.cfg, f.cache, mocks.NewOtel(), f.s3, f.kafka)

	return f
}

func (f *serviceFixture) expectCacheInvalidation() {
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestTransactionService_Import(t *testing.T) {
	t.Run("successful import", func(t *testing.T) {
		f := newFixture(t)
		f.expectCacheInvalidation()

		var upserted []model.Transaction

		f.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.Transaction) error {
				upserted = append(upserted, mod)

				return nil
			}).
			Times(2)

		data := []byte(reportHeader +
			"L-1,01/02/2023 10:00:00,05/02/2023 14:00:00,08/02/2023 11:00:00,250.55,25.10,42,France,Paris\n" +
			"L-2,02/02/2023 10:00:00,06/02/2023 14:00:00,09/02/2023 11:00:00,100.00,10.00,,Not Applicable,\n")

		report, err := f.service.Import(context.Background(), "report.csv", data)

		assert.NoError(t, err)
		assert.NotEmpty(t, report.RunID)
		assert.Equal(t, 2, report.SuccessCount)
		assert.Equal(t, 0, report.ErrorCount)
		assert.Empty(t, report.Error)

		if assert.Len(t, upserted, 2) {
			assert.Equal(t, "L-1", upserted[0].LeadID)
			assert.Equal(t, "250.55", upserted[0].Revenue.StringFixed(2))
			if assert.NotNil(t, upserted[0].HotelID) {
				assert.Equal(t, int64(42), *upserted[0].HotelID)
			}
			assert.Equal(t, "France", *upserted[0].HotelCountry)
			assert.Equal(t, report.RunID, upserted[0].CreatedBy)

			// "Not Applicable" and empty geography normalize to absent
			assert.Nil(t, upserted[1].HotelCountry)
			assert.Nil(t, upserted[1].HotelCity)
			assert.Nil(t, upserted[1].HotelID)
		}
	})

	t.Run("bad rows are skipped, good rows land", func(t *testing.T) {
		f := newFixture(t)
		f.expectCacheInvalidation()

		f.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(1)

		data := []byte(reportHeader +
			",01/02/2023 10:00:00,05/02/2023 14:00:00,08/02/2023 11:00:00,1,1,,,\n" +
			"L-2,not a date,05/02/2023 14:00:00,08/02/2023 11:00:00,1,1,,,\n" +
			"L-3,02/02/2023 10:00:00,06/02/2023 14:00:00,09/02/2023 11:00:00,1,1,,,\n")

		report, err := f.service.Import(context.Background(), "report.csv", data)

		assert.NoError(t, err)
		assert.Equal(t, 1, report.SuccessCount)
		assert.Equal(t, 2, report.ErrorCount)
	})

	t.Run("failed upsert counts as row error", func(t *testing.T) {
		f := newFixture(t)
		f.expectCacheInvalidation()

		gomock.InOrder(
			f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(errors.New("database error")),
			f.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil),
		)

		data := []byte(reportHeader +
			"L-1,01/02/2023 10:00:00,05/02/2023 14:00:00,08/02/2023 11:00:00,1,1,,,\n" +
			"L-2,02/02/2023 10:00:00,06/02/2023 14:00:00,09/02/2023 11:00:00,1,1,,,\n")

		report, err := f.service.Import(context.Background(), "report.csv", data)

		assert.NoError(t, err)
		assert.Equal(t, 1, report.SuccessCount)
		assert.Equal(t, 1, report.ErrorCount)
	})

	t.Run("malformed header aborts the run", func(t *testing.T) {
		f := newFixture(t)

		data := []byte("foo,bar\n1,2\n")

		report, err := f.service.Import(context.Background(), "report.csv", data)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, 0, report.SuccessCount)
		assert.Equal(t, 1, report.ErrorCount)
		assert.NotEmpty(t, report.Error)
	})

	t.Run("undecodable file aborts the run", func(t *testing.T) {
		f := newFixture(t)

		report, err := f.service.Import(context.Background(), "report.csv", []byte(`"unterminated`))

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, 1, report.ErrorCount)
	})

	t.Run("missing revenue column ingests with zero amounts", func(t *testing.T) {
		f := newFixture(t)
		f.expectCacheInvalidation()

		var upserted []model.Transaction

		f.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod model.Transaction) error {
				upserted = append(upserted, mod)

				return nil
			})

		data := []byte("LeadId,LeadDate,LeadCheckin,LeadCheckout\n" +
			"L-1,01/02/2023 10:00:00,05/02/2023 14:00:00,08/02/2023 11:00:00\n")

		report, err := f.service.Import(context.Background(), "report.csv", data)

		assert.NoError(t, err)
		assert.Equal(t, 1, report.SuccessCount)

		if assert.Len(t, upserted, 1) {
			assert.Equal(t, "0.00", upserted[0].Revenue.StringFixed(2))
			assert.Equal(t, "0.00", upserted[0].Commission.StringFixed(2))
		}
	})

	t.Run("repeated lead id upserts each occurrence", func(t *testing.T) {
		f := newFixture(t)
		f.expectCacheInvalidation()

		f.repo.EXPECT().
			Upsert(gomock.Any(), gomock.Any()).
			Return(nil).
			Times(2)

		data := []byte(reportHeader +
			"L-1,01/02/2023 10:00:00,05/02/2023 14:00:00,08/02/2023 11:00:00,100,10,,,\n" +
			"L-1,01/02/2023 10:00:00,05/02/2023 14:00:00,08/02/2023 11:00:00,200,20,,,\n")

		report, err := f.service.Import(context.Background(), "report.csv", data)

		assert.NoError(t, err)
		assert.Equal(t, 2, report.SuccessCount)
	})
}

func TestTransactionService_Export(t *testing.T) {
	f := newFixture(t)

	leadDate := time.Date(2023, 2, 1, 10, 30, 0, 0, time.UTC)
	hotelID := int64(42)
	country := "France"
	city := "Paris"

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Transaction{
			{
				LeadID:       "L-1",
				LeadDate:     leadDate,
				LeadCheckin:  leadDate.AddDate(0, 0, 4),
				LeadCheckout: leadDate.AddDate(0, 0, 7),
				Revenue:      decimal.NewFromFloat(250.5),
				Commission:   decimal.NewFromFloat(25.1),
				HotelID:      &hotelID,
				HotelCountry: &country,
				HotelCity:    &city,
			},
			{
				LeadID:       "L-2",
				LeadDate:     leadDate,
				LeadCheckin:  leadDate,
				LeadCheckout: leadDate,
				Revenue:      decimal.Zero,
				Commission:   decimal.Zero,
			},
		}, nil)

	var buf bytes.Buffer

	err := f.service.Export(context.Background(), &buf, gDto.QueryParams{}, gDto.FilterGroup{})

	assert.NoError(t, err)

	want := "LeadId,LeadDate,LeadCheckin,LeadCheckout,Revenue,Commission,Hotel Location\n" +
		"L-1,2023-02-01 10:30:00,2023-02-05 10:30:00,2023-02-08 10:30:00,250.50,25.10,\"Paris, France (ID: 42)\"\n" +
		"L-2,2023-02-01 10:30:00,2023-02-01 10:30:00,2023-02-01 10:30:00,0.00,0.00,None\n"

	assert.Equal(t, want, buf.String())
}

func TestTransactionService_ExportRepositoryError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("database error"))

	var buf bytes.Buffer

	err := f.service.Export(context.Background(), &buf, gDto.QueryParams{}, gDto.FilterGroup{})

	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestTransactionService_GetAll(t *testing.T) {
	t.Run("cache miss hits the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Transaction{{LeadID: "L-1"}}, nil)

		res, err := f.service.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 12, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		assert.Len(t, res.Transactions, 1)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		res, err := f.service.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Equal(t, 0, res.TotalData)
	})

	t.Run("repository error is surfaced", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database error"))

		_, err := f.service.GetAll(context.Background(), gDto.QueryParams{}, gDto.FilterGroup{})

		assert.Error(t, err)
	})
}

func TestTransactionService_MonthlyRevenue(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

	f.repo.EXPECT().
		RevenueByMonth(gomock.Any()).
		Return([]model.MonthlyRevenue{
			{Month: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), TotalRevenue: decimal.NewFromFloat(120.5)},
			{Month: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), TotalRevenue: decimal.NewFromInt(300)},
		}, nil)

	res, err := f.service.MonthlyRevenue(context.Background())

	assert.NoError(t, err)

	if assert.Len(t, res.Series, 2) {
		assert.InDelta(t, 120.5, res.Series[0].Y, 0.001)
		assert.InDelta(t, 300.0, res.Series[1].Y, 0.001)
	}
}

func TestTransactionService_CountryRevenue(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 3600).Return(nil).AnyTimes()

	france := "France"
	germany := "Germany"
	spain := "Spain"

	f.repo.EXPECT().
		RevenueByCountry(gomock.Any()).
		Return([]model.CountryRevenue{
			{HotelCountry: &france, TotalRevenue: decimal.NewFromInt(500)},
			{HotelCountry: &germany, TotalRevenue: decimal.NewFromInt(400)},
			{HotelCountry: nil, TotalRevenue: decimal.NewFromInt(100)},
			{HotelCountry: &spain, TotalRevenue: decimal.NewFromInt(30)},
		}, nil)

	res, err := f.service.CountryRevenue(context.Background())

	assert.NoError(t, err)

	// Spain is below the minimum share and folds into Others; the
	// country-less bucket charts as Unknown.
	assert.Equal(t, []string{"France", "Germany", "Unknown", "Others"}, res.Labels)
	assert.Equal(t, []float64{500, 400, 100, 30}, res.Values)
}

func TestTransactionService_CountryRevenueEmpty(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.repo.EXPECT().
		RevenueByCountry(gomock.Any()).
		Return([]model.CountryRevenue{}, nil)

	res, err := f.service.CountryRevenue(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, res.Labels)
	assert.Empty(t, res.Values)
}
