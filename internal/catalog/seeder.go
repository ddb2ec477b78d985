package catalog

import (
	"context"
	"fmt"

	"veggie-market/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Seeder fills an empty vegetable table from catalogue files.
type Seeder struct {
	loader    Loader
	registrar Registrar
	logger    zerolog.Logger
}

// NewSeeder creates a new catalogue seeder.
func NewSeeder(loader Loader, registrar Registrar, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:    loader,
		registrar: registrar,
		logger:    logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads every file concurrently and, when no vegetable is stored yet,
// registers the entries in file order. It returns the number registered.
// The write is all-or-nothing: a load or registration failure leaves the
// table empty so the next start seeds again.
func (s *Seeder) Seed(ctx context.Context, paths []string) (int, error) {
	s.logger.Info().Int("file_count", len(paths)).Msg("seeding vegetable catalogue")

	results := make([][]Entry, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			entries, err := s.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load catalogue file %s: %w", path, err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to load catalogue")
		return 0, err
	}

	existing, err := s.registrar.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count vegetables: %w", err)
	}
	if existing > 0 {
		s.logger.Info().Int64("existing", existing).Msg("vegetables already present, skipping catalogue seed")
		return 0, nil
	}

	var reqs []*model.UpsertVegetableRequest
	for _, entries := range results {
		for _, entry := range entries {
			price := entry.UnitPrice.Int64()
			reqs = append(reqs, &model.UpsertVegetableRequest{
				Name:      entry.Name,
				UnitPrice: &price,
			})
		}
	}
	if len(reqs) == 0 {
		s.logger.Info().Msg("catalogue files are empty, nothing to seed")
		return 0, nil
	}

	stored, err := s.registrar.RegisterAll(ctx, reqs)
	if err != nil {
		s.logger.Error().Err(err).Int("entries", len(reqs)).Msg("failed to seed vegetable catalogue")
		return 0, fmt.Errorf("failed to register catalogue: %w", err)
	}

	s.logger.Info().Int64("registered", stored).Msg("vegetable catalogue seeded")

	return int(stored), nil
}
