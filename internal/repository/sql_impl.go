package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/jmoiron/sqlx"
)

// Queries are written with ? placeholders and rebound to the driver dialect
// (sqlx.DOLLAR for pgx, sqlx.QUESTION for sqlite3).

const composerSelect = `
	SELECT
		c.id,
		c.name,
		c.birthdate,
		bc.id AS birthplace_id,
		bc.name AS birthplace_name,
		bc.latitude AS birthplace_latitude,
		bc.longitude AS birthplace_longitude,
		c.deathdate,
		dc.id AS deathplace_id,
		dc.name AS deathplace_name,
		dc.latitude AS deathplace_latitude,
		dc.longitude AS deathplace_longitude
	FROM composers c
	INNER JOIN cities bc ON c.birthplace = bc.id
	INNER JOIN cities dc ON c.deathplace = dc.id`

const locationSelect = `
	SELECT
		l.id,
		l.composer_id,
		l.city_id,
		c.name AS city_name,
		c.latitude AS city_latitude,
		c.longitude AS city_longitude,
		l.start_date,
		l.end_date,
		l.reason,
		l.description
	FROM locations l
	INNER JOIN cities c ON l.city_id = c.id`

type cityRepository struct {
	db        *sqlx.DB
	chunkSize int
}

func (r *cityRepository) ListCities(ctx context.Context) ([]model.City, error) {
	var rows []cityRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT id, name, latitude, longitude FROM cities ORDER BY name"); err != nil {
		return nil, err
	}
	cities := make([]model.City, 0, len(rows))
	for _, row := range rows {
		cities = append(cities, row.toModel())
	}
	sortCitiesByName(cities)
	return cities, nil
}

func (r *cityRepository) GetCityByID(ctx context.Context, id string) (*model.City, error) {
	var row cityRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind("SELECT id, name, latitude, longitude FROM cities WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	city := row.toModel()
	return &city, nil
}

func (r *cityRepository) CreateCity(ctx context.Context, city model.City) (*model.City, error) {
	row := newCityRow(city)
	var id string
	var err error
	if row.ID == "" {
		err = r.db.GetContext(ctx, &id,
			r.db.Rebind("INSERT INTO cities (name, latitude, longitude) VALUES (?, ?, ?) RETURNING id"),
			row.Name, row.Latitude, row.Longitude)
	} else {
		err = r.db.GetContext(ctx, &id,
			r.db.Rebind("INSERT INTO cities (id, name, latitude, longitude) VALUES (?, ?, ?, ?) RETURNING id"),
			row.ID, row.Name, row.Latitude, row.Longitude)
	}
	if err != nil {
		return nil, err
	}
	return r.GetCityByID(ctx, id)
}

func (r *cityRepository) BulkInsertCities(ctx context.Context, cities []model.City) error {
	rows := make([]cityRow, len(cities))
	for i, c := range cities {
		rows[i] = newCityRow(c)
	}
	return bulkInsert(ctx, r.db, r.chunkSize, insertCitiesQuery, rows)
}

type composerRepository struct {
	db        *sqlx.DB
	chunkSize int
}

func (r *composerRepository) GetComposerByID(ctx context.Context, id string) (*model.Composer, error) {
	var row composerRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(composerSelect+" WHERE c.id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	composer := row.toModel()
	return &composer, nil
}

func (r *composerRepository) ListComposers(ctx context.Context) ([]model.Composer, error) {
	var rows []composerRow
	if err := r.db.SelectContext(ctx, &rows, composerSelect+" ORDER BY c.birthdate, birthplace_name"); err != nil {
		return nil, err
	}
	composers := make([]model.Composer, 0, len(rows))
	for _, row := range rows {
		composers = append(composers, row.toModel())
	}
	sortComposersByBirth(composers)
	return composers, nil
}

func (r *composerRepository) BulkInsertComposers(ctx context.Context, composers []model.ComposerRecord) error {
	rows := make([]model.ComposerRecord, len(composers))
	for i, c := range composers {
		rows[i] = encodeComposer(c)
	}
	return bulkInsert(ctx, r.db, r.chunkSize, insertComposersQuery, rows)
}

type locationRepository struct {
	db        *sqlx.DB
	chunkSize int
}

func (r *locationRepository) ListLocationsByComposer(ctx context.Context, composerID string) ([]model.Location, error) {
	var rows []locationRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(locationSelect+" WHERE l.composer_id = ? ORDER BY l.start_date, l.id"), composerID); err != nil {
		return nil, err
	}
	return toLocations(rows), nil
}

func (r *locationRepository) ListLocations(ctx context.Context) ([]model.Location, error) {
	var rows []locationRow
	if err := r.db.SelectContext(ctx, &rows, locationSelect+" ORDER BY l.composer_id, l.start_date, l.id"); err != nil {
		return nil, err
	}
	return toLocations(rows), nil
}

func (r *locationRepository) CreateLocation(ctx context.Context, location model.LocationRecord) (*model.Location, error) {
	rec := encodeLocation(location)
	var id string
	err := r.db.GetContext(ctx, &id, r.db.Rebind(`
		INSERT INTO locations (composer_id, city_id, start_date, end_date, reason, description)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`),
		rec.ComposerID, rec.CityID, rec.StartDate, rec.EndDate, rec.Reason, rec.Description)
	if err != nil {
		return nil, err
	}

	var row locationRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(locationSelect+" WHERE l.id = ?"), id); err != nil {
		return nil, err
	}
	created := row.toModel()
	return &created, nil
}

func (r *locationRepository) BulkInsertLocations(ctx context.Context, locations []model.LocationRecord) error {
	rows := make([]model.LocationRecord, len(locations))
	for i, l := range locations {
		rows[i] = encodeLocation(l)
	}
	return bulkInsert(ctx, r.db, r.chunkSize, insertLocationsQuery, rows)
}
