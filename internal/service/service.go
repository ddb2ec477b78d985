package service

import (
	"context"

	"veggie-market/internal/model"
)

// VegetableService defines the use cases for vegetable management.
// Identifiers arrive as raw strings; a malformed one yields model.ErrInvalidVegetableID.
type VegetableService interface {
	// FindByID retrieves a single vegetable by ID.
	FindByID(ctx context.Context, id string) (*model.Vegetable, error)

	// FindAll retrieves every vegetable.
	FindAll(ctx context.Context) ([]model.Vegetable, error)

	// Register validates and stores a new vegetable.
	Register(ctx context.Context, req *model.UpsertVegetableRequest) (*model.Vegetable, error)

	// RegisterAll validates every request, then stores them all or none.
	RegisterAll(ctx context.Context, reqs []*model.UpsertVegetableRequest) (int64, error)

	// Update replaces a vegetable.
	Update(ctx context.Context, id string, req *model.UpsertVegetableRequest) (*model.Vegetable, error)

	// PartialUpdate patches the supplied fields of a vegetable.
	PartialUpdate(ctx context.Context, id string, req *model.PartialVegetableRequest) (*model.Vegetable, error)

	// Delete removes a vegetable and returns the number of affected rows.
	Delete(ctx context.Context, id string) (int64, error)

	// Count returns the number of stored vegetables.
	Count(ctx context.Context) (int64, error)
}

// SaleService defines the use cases for sales.
type SaleService interface {
	// RegisterSale validates a sale request and stores the sale with its line items.
	RegisterSale(ctx context.Context, req *model.SaleRequest) (*model.Sale, error)

	// FindByID retrieves a sale with its line items.
	FindByID(ctx context.Context, id string) (*model.Sale, error)

	// FindAll retrieves sale headers, newest first.
	FindAll(ctx context.Context) ([]model.Sale, error)
}
