package service

import (
	"context"

	"github.com/alexivanou/composer-atlas/internal/model"
	"go.uber.org/zap"
)

// GetComposerByID returns a composer with its resolved cities and its locations
// ordered by start date
func (s *Service) GetComposerByID(ctx context.Context, id string) (*model.Composer, error) {
	composer, err := s.composerRepo.GetComposerByID(ctx, id)
	if err != nil {
		return nil, s.storeError("get composer", err, zap.String("composer_id", id))
	}
	if composer == nil {
		return nil, ErrComposerNotFound
	}

	locations, err := s.locationRepo.ListLocationsByComposer(ctx, id)
	if err != nil {
		return nil, s.storeError("list composer locations", err, zap.String("composer_id", id))
	}
	composer.Locations = locations

	return composer, nil
}

// ListComposers returns every composer ordered by birth date then birthplace name.
// Locations are fetched in one query and attached per composer.
func (s *Service) ListComposers(ctx context.Context) ([]model.Composer, error) {
	composers, err := s.composerRepo.ListComposers(ctx)
	if err != nil {
		return nil, s.storeError("list composers", err)
	}

	locations, err := s.locationRepo.ListLocations(ctx)
	if err != nil {
		return nil, s.storeError("list locations", err)
	}

	byComposer := make(map[string][]model.Location, len(composers))
	for _, l := range locations {
		byComposer[l.ComposerID] = append(byComposer[l.ComposerID], l)
	}
	for i := range composers {
		if locs, ok := byComposer[composers[i].ID]; ok {
			composers[i].Locations = locs
		} else {
			composers[i].Locations = []model.Location{}
		}
	}

	return composers, nil
}

// ListLocationsByComposer returns the locations of one composer, ordered by start date.
// An unknown composer yields an empty list.
func (s *Service) ListLocationsByComposer(ctx context.Context, composerID string) ([]model.Location, error) {
	locations, err := s.locationRepo.ListLocationsByComposer(ctx, composerID)
	if err != nil {
		return nil, s.storeError("list composer locations", err, zap.String("composer_id", composerID))
	}
	return locations, nil
}

// ListCities returns every city ordered by name
func (s *Service) ListCities(ctx context.Context) ([]model.City, error) {
	cities, err := s.cityRepo.ListCities(ctx)
	if err != nil {
		return nil, s.storeError("list cities", err)
	}
	return cities, nil
}

// GetCityByID returns a city, or nil when it does not exist
func (s *Service) GetCityByID(ctx context.Context, id string) (*model.City, error) {
	city, err := s.cityRepo.GetCityByID(ctx, id)
	if err != nil {
		return nil, s.storeError("get city", err, zap.String("city_id", id))
	}
	return city, nil
}
