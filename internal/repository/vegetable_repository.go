package repository

import (
	"context"
	"errors"
	"fmt"

	"veggie-market/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const vegetableColumns = "id, name, unit_price, created_at, updated_at"

// vegetableRepository implements the VegetableRepository interface using PostgreSQL.
type vegetableRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewVegetableRepository creates a new PostgreSQL-backed vegetable repository.
func NewVegetableRepository(pool *pgxpool.Pool, logger zerolog.Logger) VegetableRepository {
	return &vegetableRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "vegetable").Logger(),
	}
}

// scanVegetable reads one row selected with vegetableColumns.
func scanVegetable(row pgx.Row) (*model.Vegetable, error) {
	var (
		v         model.Vegetable
		id        uuid.UUID
		unitPrice int32
	)
	if err := row.Scan(&id, &v.Name, &unitPrice, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	v.ID = model.EntityIDFrom[model.Vegetable](id)
	v.UnitPrice = model.Price(unitPrice)
	return &v, nil
}

func collectVegetables(rows pgx.Rows) ([]model.Vegetable, error) {
	defer rows.Close()

	vegetables := []model.Vegetable{}
	for rows.Next() {
		v, err := scanVegetable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vegetable: %w", err)
		}
		vegetables = append(vegetables, *v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vegetables: %w", err)
	}

	return vegetables, nil
}

// FindByID retrieves a single vegetable by its ID.
func (r *vegetableRepository) FindByID(ctx context.Context, id model.VegetableID) (*model.Vegetable, error) {
	query := `
		SELECT ` + vegetableColumns + `
		FROM vegetables
		WHERE id = $1
	`

	v, err := scanVegetable(r.pool.QueryRow(ctx, query, id.Value()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("vegetable_id", id.String()).Msg("vegetable not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("vegetable_id", id.String()).Msg("failed to query vegetable")
		return nil, fmt.Errorf("failed to query vegetable: %w", err)
	}

	return v, nil
}

// FindAll retrieves every vegetable ordered by ID.
func (r *vegetableRepository) FindAll(ctx context.Context) ([]model.Vegetable, error) {
	query := `
		SELECT ` + vegetableColumns + `
		FROM vegetables
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query vegetables")
		return nil, fmt.Errorf("failed to query vegetables: %w", err)
	}

	vegetables, err := collectVegetables(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read vegetable rows")
		return nil, err
	}

	return vegetables, nil
}

// FindByIDs retrieves the vegetables whose IDs are listed.
func (r *vegetableRepository) FindByIDs(ctx context.Context, ids []model.VegetableID) ([]model.Vegetable, error) {
	if len(ids) == 0 {
		return []model.Vegetable{}, nil
	}

	values := make([]uuid.UUID, len(ids))
	for i, id := range ids {
		values[i] = id.Value()
	}

	query := `
		SELECT ` + vegetableColumns + `
		FROM vegetables
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, values)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query vegetables by IDs")
		return nil, fmt.Errorf("failed to query vegetables by IDs: %w", err)
	}

	vegetables, err := collectVegetables(rows)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read vegetable rows")
		return nil, err
	}

	return vegetables, nil
}

// Register inserts a new vegetable with a server-generated ID.
func (r *vegetableRepository) Register(ctx context.Context, vegetable model.UpsertVegetable) (*model.Vegetable, error) {
	id := model.NewEntityID[model.Vegetable]()

	query := `
		INSERT INTO vegetables (id, name, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING ` + vegetableColumns

	var created *model.Vegetable
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		created, err = scanVegetable(tx.QueryRow(ctx, query, id.Value(), vegetable.Name, int32(vegetable.UnitPrice)))
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Str("name", vegetable.Name).Msg("failed to register vegetable")
		return nil, fmt.Errorf("failed to register vegetable: %w", err)
	}

	r.logger.Debug().Str("vegetable_id", created.ID.String()).Msg("vegetable registered")

	return created, nil
}

// RegisterAll inserts every vegetable in one transaction. Either all rows
// are stored or none are.
func (r *vegetableRepository) RegisterAll(ctx context.Context, vegetables []model.UpsertVegetable) (int64, error) {
	if len(vegetables) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO vegetables (id, name, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`

	batch := &pgx.Batch{}
	for _, v := range vegetables {
		batch.Queue(query, model.NewEntityID[model.Vegetable]().Value(), v.Name, int32(v.UnitPrice))
	}

	var inserted int64
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for i := range vegetables {
			tag, err := results.Exec()
			if err != nil {
				results.Close()
				return fmt.Errorf("failed to insert %q: %w", vegetables[i].Name, err)
			}
			inserted += tag.RowsAffected()
		}
		// The batch must be closed before the transaction can commit.
		return results.Close()
	})
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(vegetables)).Msg("failed to register vegetables")
		return 0, fmt.Errorf("failed to register vegetables: %w", err)
	}

	r.logger.Debug().Int64("count", inserted).Msg("vegetables registered")

	return inserted, nil
}

// Update replaces every writable field of a vegetable.
func (r *vegetableRepository) Update(ctx context.Context, id model.VegetableID, vegetable model.UpsertVegetable) (*model.Vegetable, error) {
	query := `
		UPDATE vegetables
		SET name = $2, unit_price = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + vegetableColumns

	return r.updateOne(ctx, id, query, id.Value(), vegetable.Name, int32(vegetable.UnitPrice))
}

// PartialUpdate changes only the supplied fields.
func (r *vegetableRepository) PartialUpdate(ctx context.Context, id model.VegetableID, vegetable model.PartialVegetable) (*model.Vegetable, error) {
	if vegetable.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	var unitPrice *int32
	if vegetable.UnitPrice != nil {
		p := int32(*vegetable.UnitPrice)
		unitPrice = &p
	}

	// NULL parameters keep the stored value.
	query := `
		UPDATE vegetables
		SET name = COALESCE($2, name),
			unit_price = COALESCE($3, unit_price),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + vegetableColumns

	return r.updateOne(ctx, id, query, id.Value(), vegetable.Name, unitPrice)
}

// updateOne runs a single-row UPDATE ... RETURNING in its own transaction.
func (r *vegetableRepository) updateOne(ctx context.Context, id model.VegetableID, query string, args ...any) (*model.Vegetable, error) {
	var updated *model.Vegetable
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		updated, err = scanVegetable(tx.QueryRow(ctx, query, args...))
		if errors.Is(err, pgx.ErrNoRows) {
			updated = nil
			return nil
		}
		return err
	})
	if err != nil {
		r.logger.Error().Err(err).Str("vegetable_id", id.String()).Msg("failed to update vegetable")
		return nil, fmt.Errorf("failed to update vegetable: %w", err)
	}

	if updated == nil {
		r.logger.Debug().Str("vegetable_id", id.String()).Msg("vegetable to update not found")
	}

	return updated, nil
}

// Delete removes a vegetable and returns the number of affected rows.
func (r *vegetableRepository) Delete(ctx context.Context, id model.VegetableID) (int64, error) {
	query := `
		DELETE FROM vegetables
		WHERE id = $1
	`

	var affected int64
	err := withTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, id.Value())
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})
	if err != nil {
		r.logger.Error().Err(err).Str("vegetable_id", id.String()).Msg("failed to delete vegetable")
		return 0, fmt.Errorf("failed to delete vegetable: %w", err)
	}

	r.logger.Debug().
		Str("vegetable_id", id.String()).
		Int64("rows_affected", affected).
		Msg("vegetable delete executed")

	return affected, nil
}

// Count returns the number of stored vegetables.
func (r *vegetableRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM vegetables").Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count vegetables")
		return 0, fmt.Errorf("failed to count vegetables: %w", err)
	}
	return count, nil
}
