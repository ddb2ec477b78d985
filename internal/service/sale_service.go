package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"veggie-market/internal/model"
	"veggie-market/internal/repository"

	"github.com/rs/zerolog"
)

// saleService implements SaleService.
type saleService struct {
	saleRepo      repository.SaleRepository
	vegetableRepo repository.VegetableRepository
	now           func() time.Time
	logger        zerolog.Logger
}

// NewSaleService creates a new sale service.
func NewSaleService(
	saleRepo repository.SaleRepository,
	vegetableRepo repository.VegetableRepository,
	logger zerolog.Logger,
) SaleService {
	return &saleService{
		saleRepo:      saleRepo,
		vegetableRepo: vegetableRepo,
		now:           time.Now,
		logger:        logger.With().Str("service", "sale").Logger(),
	}
}

// saleLine is a validated sale item whose unit price may still be unknown.
type saleLine struct {
	vegetableID model.VegetableID
	quantity    model.Quantity
	unitPrice   *model.Price
}

// RegisterSale validates a sale request and stores the sale with its line items.
func (s *saleService) RegisterSale(ctx context.Context, req *model.SaleRequest) (*model.Sale, error) {
	lines, err := s.validateSaleRequest(req)
	if err != nil {
		return nil, err
	}

	// Resolve referenced vegetables; their current price is the default unit price
	ids := make([]model.VegetableID, 0, len(lines))
	seen := make(map[model.VegetableID]bool, len(lines))
	for _, line := range lines {
		if !seen[line.vegetableID] {
			seen[line.vegetableID] = true
			ids = append(ids, line.vegetableID)
		}
	}

	vegetables, err := s.vegetableRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Int("vegetable_count", len(ids)).Msg("failed to load vegetables for sale")
		return nil, fmt.Errorf("failed to register sale: %w", err)
	}

	prices := make(map[model.VegetableID]model.Price, len(vegetables))
	for _, v := range vegetables {
		prices[v.ID] = v.UnitPrice
	}

	details := make([]model.SaleDetail, len(lines))
	for i, line := range lines {
		current, ok := prices[line.vegetableID]
		if !ok {
			s.logger.Warn().
				Str("vegetable_id", line.vegetableID.String()).
				Msg("sale references unknown vegetable")
			return nil, model.ErrVegetableNotFound
		}

		unitPrice := current
		if line.unitPrice != nil {
			unitPrice = *line.unitPrice
		}
		details[i] = model.NewSaleDetail(line.vegetableID, unitPrice, line.quantity)
	}

	soldAt := s.now().UTC()
	if req.SoldAt != nil {
		soldAt = *req.SoldAt
	}

	sale, err := model.NewSale(soldAt, details)
	if err != nil {
		return nil, err
	}

	// Start transaction
	tx, err := s.saleRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to register sale: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.saleRepo.CreateSale(ctx, tx, sale); err != nil {
		s.logger.Error().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to create sale")
		return nil, fmt.Errorf("failed to register sale: %w", err)
	}

	if err = s.saleRepo.CreateSaleDetails(ctx, tx, sale.Details); err != nil {
		if errors.Is(err, model.ErrVegetableNotFound) {
			return nil, err
		}
		s.logger.Error().
			Err(err).
			Str("sale_id", sale.ID.String()).
			Int("detail_count", len(sale.Details)).
			Msg("failed to create sale details")
		return nil, fmt.Errorf("failed to register sale details: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("sale_id", sale.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to register sale: %w", err)
	}

	s.logger.Info().
		Str("sale_id", sale.ID.String()).
		Int("detail_count", len(sale.Details)).
		Int64("total_amount", sale.TotalAmount).
		Msg("sale registered successfully")

	return sale, nil
}

// FindByID retrieves a sale with its line items.
func (s *saleService) FindByID(ctx context.Context, id string) (*model.Sale, error) {
	saleID, err := model.ParseEntityID[model.Sale](id)
	if err != nil {
		return nil, model.ErrInvalidSaleID
	}

	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		s.logger.Error().Err(err).Str("sale_id", id).Msg("failed to get sale")
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	if sale == nil {
		s.logger.Debug().Str("sale_id", id).Msg("sale not found")
		return nil, model.ErrSaleNotFound
	}

	return sale, nil
}

// FindAll retrieves sale headers, newest first.
func (s *saleService) FindAll(ctx context.Context) ([]model.Sale, error) {
	sales, err := s.saleRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get sales")
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, nil
}

// validateSaleRequest validates the sale request.
func (s *saleService) validateSaleRequest(req *model.SaleRequest) ([]saleLine, error) {
	if req == nil {
		return nil, model.ErrInvalidJSON
	}

	if len(req.Items) == 0 {
		return nil, model.ErrEmptySale
	}

	lines := make([]saleLine, len(req.Items))
	for i, item := range req.Items {
		vegetableID, err := model.ParseEntityID[model.Vegetable](item.VegetableID)
		if err != nil {
			s.logger.Warn().
				Int("item_index", i).
				Str("vegetable_id", item.VegetableID).
				Msg("invalid vegetable ID")
			return nil, model.ErrInvalidVegetableID
		}

		quantity, err := model.NewQuantity(item.Quantity)
		if err != nil {
			s.logger.Warn().
				Int("item_index", i).
				Int64("quantity", item.Quantity).
				Msg("invalid quantity")
			return nil, err
		}

		lines[i] = saleLine{vegetableID: vegetableID, quantity: quantity}

		if item.UnitPrice != nil {
			price, err := model.NewPrice(*item.UnitPrice)
			if err != nil {
				return nil, err
			}
			lines[i].unitPrice = &price
		}
	}

	return lines, nil
}
