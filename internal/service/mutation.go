package service

import (
	"context"
	"net/url"

	"github.com/alexivanou/composer-atlas/internal/model"
	"go.uber.org/zap"
)

// AddCity validates an add-city submission and stores the city.
// Invalid input returns validation.Errors and writes nothing. An empty
// wikidata_id lets the store generate the identifier.
func (s *Service) AddCity(ctx context.Context, values url.Values) (*model.City, error) {
	form, err := s.validator.City(values)
	if err != nil {
		return nil, err
	}

	city, err := s.cityRepo.CreateCity(ctx, model.City{
		ID:   form.WikidataID,
		Name: form.Name,
		Coordinates: model.Coordinate{
			Latitude:  form.Latitude,
			Longitude: form.Longitude,
		},
	})
	if err != nil {
		return nil, s.storeError("create city", err, zap.String("name", form.Name))
	}

	s.logger.Info("City added", zap.String("city_id", city.ID), zap.String("name", city.Name))
	return city, nil
}

// AddLocation validates an add-location submission and stores the location.
// Start and end years become January 1st of the respective year.
func (s *Service) AddLocation(ctx context.Context, values url.Values) (*model.Location, error) {
	form, err := s.validator.Location(values)
	if err != nil {
		return nil, err
	}

	location, err := s.locationRepo.CreateLocation(ctx, model.LocationRecord{
		ComposerID:  form.ComposerID,
		CityID:      form.CityID,
		StartDate:   model.YearStart(form.StartDate),
		EndDate:     model.YearStart(form.EndDate),
		Reason:      string(form.Reason),
		Description: form.Description,
	})
	if err != nil {
		return nil, s.storeError("create location", err,
			zap.String("composer_id", form.ComposerID),
			zap.String("city_id", form.CityID),
		)
	}

	s.logger.Info("Location added",
		zap.String("location_id", location.ID),
		zap.String("composer_id", location.ComposerID),
	)
	return location, nil
}
