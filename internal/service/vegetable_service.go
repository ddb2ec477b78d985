package service

import (
	"context"
	"fmt"

	"veggie-market/internal/model"
	"veggie-market/internal/repository"

	"github.com/rs/zerolog"
)

// vegetableService implements VegetableService.
type vegetableService struct {
	vegetableRepo repository.VegetableRepository
	logger        zerolog.Logger
}

// NewVegetableService creates a new vegetable service.
func NewVegetableService(vegetableRepo repository.VegetableRepository, logger zerolog.Logger) VegetableService {
	return &vegetableService{
		vegetableRepo: vegetableRepo,
		logger:        logger.With().Str("service", "vegetable").Logger(),
	}
}

func (s *vegetableService) parseID(id string) (model.VegetableID, error) {
	vegetableID, err := model.ParseEntityID[model.Vegetable](id)
	if err != nil {
		s.logger.Debug().Str("vegetable_id", id).Msg("malformed vegetable ID")
		return model.VegetableID{}, model.ErrInvalidVegetableID
	}
	return vegetableID, nil
}

// FindByID retrieves a single vegetable by ID.
func (s *vegetableService) FindByID(ctx context.Context, id string) (*model.Vegetable, error) {
	vegetableID, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	vegetable, err := s.vegetableRepo.FindByID(ctx, vegetableID)
	if err != nil {
		s.logger.Error().Err(err).Str("vegetable_id", id).Msg("failed to get vegetable by ID")
		return nil, fmt.Errorf("failed to get vegetable: %w", err)
	}

	if vegetable == nil {
		return nil, model.ErrVegetableNotFound
	}

	return vegetable, nil
}

// FindAll retrieves every vegetable.
func (s *vegetableService) FindAll(ctx context.Context) ([]model.Vegetable, error) {
	vegetables, err := s.vegetableRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all vegetables")
		return nil, fmt.Errorf("failed to get vegetables: %w", err)
	}

	s.logger.Debug().Int("count", len(vegetables)).Msg("retrieved vegetables")

	return vegetables, nil
}

// Register validates and stores a new vegetable.
func (s *vegetableService) Register(ctx context.Context, req *model.UpsertVegetableRequest) (*model.Vegetable, error) {
	if req == nil {
		return nil, model.ErrInvalidJSON
	}

	input, err := req.Validate()
	if err != nil {
		s.logger.Warn().Err(err).Msg("invalid vegetable registration")
		return nil, err
	}

	vegetable, err := s.vegetableRepo.Register(ctx, input)
	if err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to register vegetable")
		return nil, fmt.Errorf("failed to register vegetable: %w", err)
	}

	s.logger.Info().
		Str("vegetable_id", vegetable.ID.String()).
		Str("name", vegetable.Name).
		Msg("vegetable registered")

	return vegetable, nil
}

// RegisterAll validates every request before storing any of them.
func (s *vegetableService) RegisterAll(ctx context.Context, reqs []*model.UpsertVegetableRequest) (int64, error) {
	inputs := make([]model.UpsertVegetable, 0, len(reqs))
	for i, req := range reqs {
		if req == nil {
			return 0, fmt.Errorf("entry %d: %w", i, model.ErrInvalidJSON)
		}
		input, err := req.Validate()
		if err != nil {
			s.logger.Warn().Err(err).Int("entry", i).Msg("invalid vegetable in bulk registration")
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		inputs = append(inputs, input)
	}

	registered, err := s.vegetableRepo.RegisterAll(ctx, inputs)
	if err != nil {
		s.logger.Error().Err(err).Int("count", len(inputs)).Msg("failed to register vegetables")
		return 0, fmt.Errorf("failed to register vegetables: %w", err)
	}

	s.logger.Info().Int64("count", registered).Msg("vegetables registered")

	return registered, nil
}

// Update replaces a vegetable.
func (s *vegetableService) Update(ctx context.Context, id string, req *model.UpsertVegetableRequest) (*model.Vegetable, error) {
	vegetableID, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, model.ErrInvalidJSON
	}

	input, err := req.Validate()
	if err != nil {
		s.logger.Warn().Err(err).Str("vegetable_id", id).Msg("invalid vegetable update")
		return nil, err
	}

	vegetable, err := s.vegetableRepo.Update(ctx, vegetableID, input)
	if err != nil {
		s.logger.Error().Err(err).Str("vegetable_id", id).Msg("failed to update vegetable")
		return nil, fmt.Errorf("failed to update vegetable: %w", err)
	}

	if vegetable == nil {
		return nil, model.ErrVegetableNotFound
	}

	return vegetable, nil
}

// PartialUpdate patches the supplied fields of a vegetable.
func (s *vegetableService) PartialUpdate(ctx context.Context, id string, req *model.PartialVegetableRequest) (*model.Vegetable, error) {
	vegetableID, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		req = &model.PartialVegetableRequest{}
	}

	patch, err := req.Validate()
	if err != nil {
		s.logger.Warn().Err(err).Str("vegetable_id", id).Msg("invalid vegetable patch")
		return nil, err
	}

	vegetable, err := s.vegetableRepo.PartialUpdate(ctx, vegetableID, patch)
	if err != nil {
		s.logger.Error().Err(err).Str("vegetable_id", id).Msg("failed to patch vegetable")
		return nil, fmt.Errorf("failed to patch vegetable: %w", err)
	}

	if vegetable == nil {
		return nil, model.ErrVegetableNotFound
	}

	return vegetable, nil
}

// Delete removes a vegetable. Deleting a missing vegetable affects zero rows.
func (s *vegetableService) Delete(ctx context.Context, id string) (int64, error) {
	vegetableID, err := s.parseID(id)
	if err != nil {
		return 0, err
	}

	affected, err := s.vegetableRepo.Delete(ctx, vegetableID)
	if err != nil {
		s.logger.Error().Err(err).Str("vegetable_id", id).Msg("failed to delete vegetable")
		return 0, fmt.Errorf("failed to delete vegetable: %w", err)
	}

	s.logger.Info().
		Str("vegetable_id", id).
		Int64("rows_affected", affected).
		Msg("vegetable delete executed")

	return affected, nil
}

// Count returns the number of stored vegetables.
func (s *vegetableService) Count(ctx context.Context) (int64, error) {
	count, err := s.vegetableRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count vegetables: %w", err)
	}
	return count, nil
}
