package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/alexivanou/composer-atlas/internal/config"
	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/jmoiron/sqlx"
)

// CityRepository defines operations for cities
type CityRepository interface {
	ListCities(ctx context.Context) ([]model.City, error)
	GetCityByID(ctx context.Context, id string) (*model.City, error)
	CreateCity(ctx context.Context, city model.City) (*model.City, error)
	BulkInsertCities(ctx context.Context, cities []model.City) error
}

// ComposerRepository defines operations for composers
type ComposerRepository interface {
	GetComposerByID(ctx context.Context, id string) (*model.Composer, error)
	ListComposers(ctx context.Context) ([]model.Composer, error)
	BulkInsertComposers(ctx context.Context, composers []model.ComposerRecord) error
}

// LocationRepository defines operations for composer locations
type LocationRepository interface {
	ListLocationsByComposer(ctx context.Context, composerID string) ([]model.Location, error)
	ListLocations(ctx context.Context) ([]model.Location, error)
	CreateLocation(ctx context.Context, location model.LocationRecord) (*model.Location, error)
	BulkInsertLocations(ctx context.Context, locations []model.LocationRecord) error
}

// UserRepository defines operations for users
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	BulkInsertUsers(ctx context.Context, users []model.User) error
}

// Container holds all repositories
type Container struct {
	City     CityRepository
	Composer ComposerRepository
	Location LocationRepository
	User     UserRepository
}

// NewRepositories creates repository implementations based on DB type.
// SQL is shared between dialects; only the batch size differs. batchSize is
// capped by the dialect limit, and a non-positive value uses the limit itself.
func NewRepositories(db *sqlx.DB, dbType config.DBType, batchSize int) *Container {
	chunkSize := sqliteChunkSize
	if dbType == config.DBTypePostgreSQL {
		chunkSize = pgChunkSize
	}
	if batchSize > 0 && batchSize < chunkSize {
		chunkSize = batchSize
	}

	return &Container{
		City:     &cityRepository{db: db, chunkSize: chunkSize},
		Composer: &composerRepository{db: db, chunkSize: chunkSize},
		Location: &locationRepository{db: db, chunkSize: chunkSize},
		User:     &userRepository{db: db, chunkSize: chunkSize},
	}
}

// IsDatabaseEmpty reports whether no composer has been imported yet (used by main)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM composers"); err != nil {
		// Missing table means nothing was seeded
		return true, nil
	}
	return count == 0, nil
}

const (
	// Postgres allows 65535 parameters per statement
	pgChunkSize = 2000
	// SQLite variable limit (100 rows * 7 params stays well within standard limits)
	sqliteChunkSize = 100
)

// bulkInsert runs a named batch insert in chunks. The statement must carry its own
// conflict clause so that re-running an import skips rows that already exist.
func bulkInsert[T any](ctx context.Context, db *sqlx.DB, chunkSize int, query string, rows []T) error {
	for i := 0; i < len(rows); i += chunkSize {
		end := i + chunkSize
		if end > len(rows) {
			end = len(rows)
		}
		if _, err := db.NamedExecContext(ctx, query, rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}

const (
	insertCitiesQuery = `
		INSERT INTO cities (id, name, latitude, longitude)
		VALUES (:id, :name, :latitude, :longitude)
		ON CONFLICT (id) DO NOTHING`

	insertComposersQuery = `
		INSERT INTO composers (id, name, birthplace, birthdate, deathplace, deathdate)
		VALUES (:id, :name, :birthplace, :birthdate, :deathplace, :deathdate)
		ON CONFLICT (id) DO NOTHING`

	insertLocationsQuery = `
		INSERT INTO locations (id, composer_id, city_id, start_date, end_date, reason, description)
		VALUES (:id, :composer_id, :city_id, :start_date, :end_date, :reason, :description)
		ON CONFLICT (id) DO NOTHING`

	// No conflict target: a clash on either id or email skips the row
	insertUsersQuery = `
		INSERT INTO users (id, name, email, password)
		VALUES (:id, :name, :email, :password)
		ON CONFLICT DO NOTHING`
)

type userRepository struct {
	db        *sqlx.DB
	chunkSize int
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.GetContext(ctx, &user, r.db.Rebind("SELECT id, name, email, password FROM users WHERE email = ?"), strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	user.Name = decodeText(user.Name)
	return &user, nil
}

func (r *userRepository) BulkInsertUsers(ctx context.Context, users []model.User) error {
	rows := make([]model.User, len(users))
	for i, u := range users {
		rows[i] = encodeUser(u)
	}
	return bulkInsert(ctx, r.db, r.chunkSize, insertUsersQuery, rows)
}
