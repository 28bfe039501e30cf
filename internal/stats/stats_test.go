package stats

import (
	"context"
	"testing"
	"time"

	"github.com/alexivanou/composer-atlas/internal/database/dbtest"
	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/alexivanou/composer-atlas/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Collect(t *testing.T) {
	db, cfg := dbtest.Open(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, "INSERT INTO cities (id, name, latitude, longitude) VALUES ('Q2079', 'Leipzig', 51.3333, 12.3833)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO composers (id, name, birthplace, birthdate, deathplace, deathdate) VALUES ('Q1339', 'Bach', 'Q2079', '1685-03-21', 'Q2079', '1750-07-28')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO locations (id, composer_id, city_id, start_date, end_date, reason, description) VALUES ('l1', 'Q1339', 'Q2079', '1723-01-01', '1750-01-01', 'job', 'Thomaskantor')")
	require.NoError(t, err)

	collector := NewCollector(db, cfg)

	stats, err := collector.Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, "memory", stats.Database.Type)
	assert.Equal(t, int64(3), stats.Database.TotalRecords)

	rowCounts := map[string]int64{}
	for _, ts := range stats.Database.TableStats {
		rowCounts[ts.Name] = ts.RowCount
	}
	assert.Equal(t, map[string]int64{"users": 0, "cities": 1, "composers": 1, "locations": 1}, rowCounts)

	assert.Equal(t, int64(1), stats.Database.LocationsByReason["job"])
	assert.Equal(t, int64(0), stats.Database.LocationsByReason["birth"])
	assert.Len(t, stats.Database.LocationsByReason, 7)

	assert.Equal(t, ContentStats{}, stats.Content)
}

func TestCollector_ContentStats(t *testing.T) {
	db, cfg := dbtest.Open(t)
	ctx := context.Background()

	repos := repository.NewRepositories(db, cfg.Type, 0)
	require.NoError(t, repos.City.BulkInsertCities(ctx, []model.City{
		{ID: "unknown", Name: "Unknown", Coordinates: model.UnknownCoordinate},
		{ID: "Q2079", Name: "Leipzig", Coordinates: model.Coordinate{Latitude: 51.34, Longitude: 12.375}},
	}))
	died := time.Date(1700, time.May, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Composer.BulkInsertComposers(ctx, []model.ComposerRecord{
		{ID: "Q99", Name: "Anonymous", BirthplaceID: "unknown", BirthDate: model.UnknownDate, DeathplaceID: "Q2079", DeathDate: died},
		{ID: "Q100", Name: "Travelling", BirthplaceID: "Q2079", BirthDate: died, DeathplaceID: "Q2079", DeathDate: died},
	}))
	require.NoError(t, repos.Location.BulkInsertLocations(ctx, []model.LocationRecord{
		{ID: "d99", ComposerID: "Q99", CityID: "Q2079", StartDate: died, EndDate: died, Reason: "death", Description: "Died in Leipzig"},
		{ID: "j100", ComposerID: "Q100", CityID: "unknown", StartDate: died, EndDate: died, Reason: "journey", Description: "Somewhere"},
	}))

	stats, err := NewCollector(db, cfg).Collect(ctx)
	require.NoError(t, err)

	assert.Equal(t, ContentStats{UnknownPlaceCities: 1, UnknownBirthDates: 1, ComposersWithoutTravels: 1}, stats.Content)
}

func TestCollector_EmptyDB(t *testing.T) {
	db, cfg := dbtest.Open(t)

	collector := NewCollector(db, cfg)

	stats, err := collector.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Database.TotalRecords)
	assert.Len(t, stats.Database.TableStats, 4)
	assert.Equal(t, int64(0), stats.Content.ComposersWithoutTravels)
}
