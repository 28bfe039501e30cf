package service

import (
	"context"
	"net/url"

	"github.com/alexivanou/composer-atlas/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	GetComposerByID(ctx context.Context, id string) (*model.Composer, error)
	ListComposers(ctx context.Context) ([]model.Composer, error)
	ListLocationsByComposer(ctx context.Context, composerID string) ([]model.Location, error)
	ListCities(ctx context.Context) ([]model.City, error)
	GetCityByID(ctx context.Context, id string) (*model.City, error)
	AddCity(ctx context.Context, values url.Values) (*model.City, error)
	AddLocation(ctx context.Context, values url.Values) (*model.Location, error)
}
