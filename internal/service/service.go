package service

import (
	"errors"

	"github.com/alexivanou/composer-atlas/internal/repository"
	"github.com/alexivanou/composer-atlas/internal/validation"
	"go.uber.org/zap"
)

var (
	// ErrComposerNotFound is returned when no composer has the requested id
	ErrComposerNotFound = errors.New("composer not found")
	// ErrStore reports a persistence failure. The cause is logged, not returned.
	ErrStore = errors.New("store operation failed")
)

// Service implements the read and write operations behind the pages and the API
type Service struct {
	composerRepo repository.ComposerRepository
	cityRepo     repository.CityRepository
	locationRepo repository.LocationRepository
	validator    *validation.Validator
	logger       *zap.Logger
}

// NewService creates a new service instance
func NewService(
	composerRepo repository.ComposerRepository,
	cityRepo repository.CityRepository,
	locationRepo repository.LocationRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		composerRepo: composerRepo,
		cityRepo:     cityRepo,
		locationRepo: locationRepo,
		validator:    validation.New(),
		logger:       logger,
	}
}

// storeError logs the cause of a failed store call and hides it from the caller
func (s *Service) storeError(op string, err error, fields ...zap.Field) error {
	s.logger.Error("Store operation failed", append(fields, zap.String("op", op), zap.Error(err))...)
	return ErrStore
}
