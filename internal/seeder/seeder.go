package seeder

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/alexivanou/composer-atlas/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SchemaProvisioner creates the tables if they do not exist yet
type SchemaProvisioner interface {
	Up() error
}

// Result summarizes one seeding run
type Result struct {
	Users     int `json:"users"`
	Cities    int `json:"cities"`
	Composers int `json:"composers"`
	Locations int `json:"locations"`
}

// Seeder loads the CSV exports into the store.
//
// Steps run in a fixed order (schema, users, cities, composers, locations) and the
// first failure aborts the run. Steps are not wrapped in a transaction; every insert
// skips rows whose identifier already exists, so a failed run can simply be retried.
type Seeder struct {
	parser     *Parser
	repos      *repository.Container
	schema     SchemaProvisioner
	bcryptCost int
	logger     *zap.Logger
}

// NewSeeder creates a seeder
func NewSeeder(parser *Parser, repos *repository.Container, schema SchemaProvisioner, bcryptCost int, logger *zap.Logger) *Seeder {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Seeder{
		parser:     parser,
		repos:      repos,
		schema:     schema,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Run performs a full import
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	s.logger.Info("Parsing cities...")
	knownCities, err := s.parser.ParseCities()
	if err != nil {
		return nil, fmt.Errorf("failed to parse cities: %w", err)
	}

	s.logger.Info("Parsing composers...")
	rawComposers, err := s.parser.ParseComposers()
	if err != nil {
		return nil, fmt.Errorf("failed to parse composers: %w", err)
	}

	userSeeds, err := s.parser.ParseUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to parse users: %w", err)
	}

	composers, cities := Normalize(rawComposers, knownCities)
	locations := BuildLocations(composers, CreateCityNameMap(cities))

	if s.schema != nil {
		s.logger.Info("Ensuring schema...")
		if err := s.schema.Up(); err != nil {
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	users, err := s.hashUsers(userSeeds)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Inserting users...", zap.Int("count", len(users)))
	if err := s.repos.User.BulkInsertUsers(ctx, users); err != nil {
		return nil, fmt.Errorf("failed to insert users: %w", err)
	}

	s.logger.Info("Inserting cities...", zap.Int("count", len(cities)))
	if err := s.repos.City.BulkInsertCities(ctx, cities); err != nil {
		return nil, fmt.Errorf("failed to insert cities: %w", err)
	}

	s.logger.Info("Inserting composers...", zap.Int("count", len(composers)))
	if err := s.repos.Composer.BulkInsertComposers(ctx, composers); err != nil {
		return nil, fmt.Errorf("failed to insert composers: %w", err)
	}

	s.logger.Info("Inserting locations...", zap.Int("count", len(locations)))
	if err := s.repos.Location.BulkInsertLocations(ctx, locations); err != nil {
		return nil, fmt.Errorf("failed to insert locations: %w", err)
	}

	return &Result{
		Users:     len(users),
		Cities:    len(cities),
		Composers: len(composers),
		Locations: len(locations),
	}, nil
}

func (s *Seeder) hashUsers(seeds []UserSeed) ([]model.User, error) {
	users := make([]model.User, 0, len(seeds))
	for _, seed := range seeds {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", seed.Email, err)
		}
		email := strings.ToLower(seed.Email)
		users = append(users, model.User{
			ID:       UserID(email),
			Name:     seed.Name,
			Email:    email,
			Password: string(hash),
		})
	}
	return users, nil
}
