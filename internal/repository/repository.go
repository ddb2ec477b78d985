package repository

import (
	"context"

	"veggie-market/internal/model"

	"github.com/jackc/pgx/v5"
)

// VegetableRepository defines the interface for vegetable data access operations.
// Lookups and writes on a missing row return a nil vegetable and a nil error.
type VegetableRepository interface {
	// FindByID retrieves a single vegetable by its ID.
	FindByID(ctx context.Context, id model.VegetableID) (*model.Vegetable, error)

	// FindAll retrieves every vegetable ordered by ID.
	FindAll(ctx context.Context) ([]model.Vegetable, error)

	// FindByIDs retrieves the vegetables whose IDs are listed. Unknown IDs are skipped.
	FindByIDs(ctx context.Context, ids []model.VegetableID) ([]model.Vegetable, error)

	// Register inserts a new vegetable with a server-generated ID.
	Register(ctx context.Context, vegetable model.UpsertVegetable) (*model.Vegetable, error)

	// RegisterAll inserts every vegetable in one transaction and returns the
	// number stored. A failure stores nothing.
	RegisterAll(ctx context.Context, vegetables []model.UpsertVegetable) (int64, error)

	// Update replaces every writable field of a vegetable.
	Update(ctx context.Context, id model.VegetableID, vegetable model.UpsertVegetable) (*model.Vegetable, error)

	// PartialUpdate changes only the supplied fields. With no fields supplied
	// it returns the current row untouched.
	PartialUpdate(ctx context.Context, id model.VegetableID, vegetable model.PartialVegetable) (*model.Vegetable, error)

	// Delete removes a vegetable and returns the number of affected rows.
	Delete(ctx context.Context, id model.VegetableID) (int64, error)

	// Count returns the number of stored vegetables.
	Count(ctx context.Context) (int64, error)
}

// SaleRepository defines the interface for sale data access operations.
type SaleRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateSale inserts a sale header within the provided transaction.
	CreateSale(ctx context.Context, tx pgx.Tx, sale *model.Sale) error

	// CreateSaleDetails inserts the line items of a sale within the provided transaction.
	CreateSaleDetails(ctx context.Context, tx pgx.Tx, details []model.SaleDetail) error

	// FindByID retrieves a sale with its line items.
	FindByID(ctx context.Context, id model.SaleID) (*model.Sale, error)

	// FindAll retrieves sale headers, newest first.
	FindAll(ctx context.Context) ([]model.Sale, error)
}
