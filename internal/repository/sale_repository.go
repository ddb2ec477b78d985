package repository

import (
	"context"
	"errors"
	"fmt"

	"veggie-market/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// saleRepository implements the SaleRepository interface using PostgreSQL.
type saleRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSaleRepository creates a new PostgreSQL-backed sale repository.
func NewSaleRepository(pool *pgxpool.Pool, logger zerolog.Logger) SaleRepository {
	return &saleRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "sale").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *saleRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateSale inserts a sale header within the provided transaction.
func (r *saleRepository) CreateSale(ctx context.Context, tx pgx.Tx, sale *model.Sale) error {
	query := `
		INSERT INTO sales (id, sold_at, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	_, err := tx.Exec(ctx, query, sale.ID.Value(), sale.SoldAt, sale.TotalAmount)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("sale_id", sale.ID.String()).
			Msg("failed to create sale")
		return fmt.Errorf("failed to create sale: %w", err)
	}

	r.logger.Debug().
		Str("sale_id", sale.ID.String()).
		Int64("total_amount", sale.TotalAmount).
		Msg("sale created successfully")

	return nil
}

// CreateSaleDetails inserts the line items of a sale within the provided transaction.
// A detail referencing an unknown vegetable yields model.ErrVegetableNotFound.
func (r *saleRepository) CreateSaleDetails(ctx context.Context, tx pgx.Tx, details []model.SaleDetail) error {
	if len(details) == 0 {
		return nil
	}

	query := `
		INSERT INTO sale_details (id, sale_id, vegetable_id, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, d := range details {
		batch.Queue(query, d.ID.Value(), d.SaleID.Value(), d.VegetableID.Value(), int32(d.UnitPrice), int32(d.Quantity))
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range details {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("sale_id", details[i].SaleID.String()).
				Str("vegetable_id", details[i].VegetableID.String()).
				Msg("failed to create sale detail")

			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return model.ErrVegetableNotFound
			}
			return fmt.Errorf("failed to create sale detail: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(details)).
		Msg("sale details created successfully")

	return nil
}

// FindByID retrieves a sale with its line items.
func (r *saleRepository) FindByID(ctx context.Context, id model.SaleID) (*model.Sale, error) {
	saleQuery := `
		SELECT id, sold_at, total_amount
		FROM sales
		WHERE id = $1
	`

	var (
		sale   model.Sale
		saleID uuid.UUID
	)
	err := r.pool.QueryRow(ctx, saleQuery, id.Value()).Scan(&saleID, &sale.SoldAt, &sale.TotalAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("sale_id", id.String()).Msg("sale not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("sale_id", id.String()).Msg("failed to query sale")
		return nil, fmt.Errorf("failed to query sale: %w", err)
	}
	sale.ID = model.EntityIDFrom[model.Sale](saleID)

	detailsQuery := `
		SELECT id, vegetable_id, unit_price, quantity
		FROM sale_details
		WHERE sale_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, detailsQuery, id.Value())
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("sale_id", id.String()).
			Msg("failed to query sale details")
		return nil, fmt.Errorf("failed to query sale details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			detailID, vegetableID uuid.UUID
			unitPrice, quantity   int32
		)
		if err := rows.Scan(&detailID, &vegetableID, &unitPrice, &quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan sale detail row")
			return nil, fmt.Errorf("failed to scan sale detail: %w", err)
		}
		sale.Details = append(sale.Details, model.SaleDetail{
			ID:          model.EntityIDFrom[model.SaleDetail](detailID),
			SaleID:      sale.ID,
			VegetableID: model.EntityIDFrom[model.Vegetable](vegetableID),
			UnitPrice:   model.Price(unitPrice),
			Quantity:    model.Quantity(quantity),
		})
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating sale detail rows")
		return nil, fmt.Errorf("error iterating sale details: %w", err)
	}

	return &sale, nil
}

// FindAll retrieves sale headers, newest first.
func (r *saleRepository) FindAll(ctx context.Context) ([]model.Sale, error) {
	query := `
		SELECT id, sold_at, total_amount
		FROM sales
		ORDER BY sold_at DESC, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query sales")
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []model.Sale{}
	for rows.Next() {
		var (
			sale   model.Sale
			saleID uuid.UUID
		)
		if err := rows.Scan(&saleID, &sale.SoldAt, &sale.TotalAmount); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan sale row")
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sale.ID = model.EntityIDFrom[model.Sale](saleID)
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating sale rows")
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return sales, nil
}
