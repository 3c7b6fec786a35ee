package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"kayak/infras/otel"
	"kayak/infras/postgres"
	"kayak/internal/domains/transaction/model"
	"kayak/shared/constant"
	gDto "kayak/shared/dto"
	"kayak/shared/logger"
	gRepo "kayak/shared/repository"
)

type Transaction interface {
	Upsert(ctx context.Context, model model.Transaction) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	RevenueByMonth(ctx context.Context) ([]model.MonthlyRevenue, error)
	RevenueByCountry(ctx context.Context) ([]model.CountryRevenue, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Transaction]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Transaction {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Transaction](model.EntityName, model.TableName, model.FieldLeadID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert writes one transaction keyed by its lead identifier: insert when
// new, overwrite every non-key column when the lead was imported before.
// One statement per row, no surrounding transaction.
func (repo *repositoryImpl) Upsert(ctx context.Context, mod model.Transaction) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Upsert")
	defer scope.End()

	query := fmt.Sprintf(`INSERT INTO %s
		(lead_id, lead_date, lead_checkin, lead_checkout, revenue, commission, hotel_id, hotel_country, hotel_city, created_by, modified_by)
		VALUES (:lead_id, :lead_date, :lead_checkin, :lead_checkout, :revenue, :commission, :hotel_id, :hotel_country, :hotel_city, :created_by, :modified_by)
		ON CONFLICT (lead_id) DO UPDATE SET
			lead_date = EXCLUDED.lead_date,
			lead_checkin = EXCLUDED.lead_checkin,
			lead_checkout = EXCLUDED.lead_checkout,
			revenue = EXCLUDED.revenue,
			commission = EXCLUDED.commission,
			hotel_id = EXCLUDED.hotel_id,
			hotel_country = EXCLUDED.hotel_country,
			hotel_city = EXCLUDED.hotel_city,
			modified_by = EXCLUDED.modified_by,
			modified_at = NOW()`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	_, err := repo.db.Write.NamedExecContext(ctx, query, mod)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to upsert data (%s): %w", model.EntityName, err)
	}

	return nil
}

// RevenueByMonth sums revenue per calendar month of lead_date, oldest
// month first.
func (repo *repositoryImpl) RevenueByMonth(ctx context.Context) ([]model.MonthlyRevenue, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".RevenueByMonth")
	defer scope.End()

	query := fmt.Sprintf(`SELECT DATE_TRUNC('month', lead_date) AS month, SUM(revenue) AS total_revenue
		FROM %s GROUP BY month ORDER BY month`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var months []model.MonthlyRevenue

	err := repo.db.Read.SelectContext(ctx, &months, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to aggregate monthly revenue (%s): %w", model.EntityName, err)
	}

	return months, nil
}

// RevenueByCountry sums revenue per hotel country, largest share first.
// Records with no resolved country aggregate under a NULL country.
func (repo *repositoryImpl) RevenueByCountry(ctx context.Context) ([]model.CountryRevenue, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".RevenueByCountry")
	defer scope.End()

	query := fmt.Sprintf(`SELECT hotel_country, SUM(revenue) AS total_revenue
		FROM %s GROUP BY hotel_country ORDER BY total_revenue DESC`, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var countries []model.CountryRevenue

	err := repo.db.Read.SelectContext(ctx, &countries, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to aggregate country revenue (%s): %w", model.EntityName, err)
	}

	return countries, nil
}
