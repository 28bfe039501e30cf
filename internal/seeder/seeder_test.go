package seeder_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexivanou/composer-atlas/internal/config"
	"github.com/alexivanou/composer-atlas/internal/database"
	"github.com/alexivanou/composer-atlas/internal/database/dbtest"
	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/alexivanou/composer-atlas/internal/repository"
	"github.com/alexivanou/composer-atlas/internal/seeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	citiesCSV = `item,itemLabel,coords
http://www.wikidata.org/entity/Q2079,Leipzig,Point(12.3833 51.3333)
`
	composersCSV = `item,itemLabel,birthDate,birthplaceLabel,coordsBirth,deathplaceLabel,coordsDeath,deathDate
http://www.wikidata.org/entity/Q1339,Johann Sebastian Bach,1685-03-21T00:00:00Z,Eisenach,Point(10.3167 50.9833),Leipzig,Point(12.3833 51.3333),1750-07-28T00:00:00Z
http://www.wikidata.org/entity/Q7351,George Frideric Handel,1685-02-23T00:00:00Z,Halle (Saale),Point(11.97 51.4828),London,Point(-0.1275 51.5072),1759-04-14T00:00:00Z
http://www.wikidata.org/entity/Q99,Anonymous,,,,,,
`
	usersCSV = `name,email,password
Admin,Admin@Example.com,hunter2
`
)

func newTestSeeder(t *testing.T) (*seeder.Seeder, *repository.Container, *database.Migrator) {
	t.Helper()

	dir := t.TempDir()
	for name, content := range map[string]string{
		"composers.csv": composersCSV,
		"cities.csv":    citiesCSV,
		"users.csv":     usersCSV,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}

	// Schema is provisioned by the seeder itself
	cfg := dbtest.Config()
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repos := repository.NewRepositories(db, cfg.Type, 0)
	migrator := database.NewMigrator(db, cfg)
	parser := seeder.NewParser(config.SeederConfig{
		DataDir:       dir,
		ComposersFile: "composers.csv",
		CitiesFile:    "cities.csv",
		UsersFile:     "users.csv",
	})

	return seeder.NewSeeder(parser, repos, migrator, bcrypt.MinCost, zap.NewNop()), repos, migrator
}

func TestSeeder_Run(t *testing.T) {
	s, repos, _ := newTestSeeder(t)
	ctx := context.Background()

	result, err := s.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, &seeder.Result{Users: 1, Cities: 5, Composers: 3, Locations: 6}, result)

	composers, err := repos.Composer.ListComposers(ctx)
	require.NoError(t, err)
	require.Len(t, composers, 3)
	// Unknown birth date sorts first
	assert.Equal(t, "Anonymous", composers[0].Name)
	assert.Equal(t, "Unknown", composers[0].Birthplace.Name)
	assert.True(t, composers[0].Birthplace.Coordinates.IsUnknown())
	assert.Equal(t, "George Frideric Handel", composers[1].Name)
	assert.Equal(t, "Johann Sebastian Bach", composers[2].Name)

	bach, err := repos.Composer.GetComposerByID(ctx, "Q1339")
	require.NoError(t, err)
	require.NotNil(t, bach)
	assert.Equal(t, "Eisenach", bach.Birthplace.Name)
	assert.Equal(t, "Q2079", bach.Deathplace.ID)
	assert.Equal(t, time.Date(1750, time.July, 28, 0, 0, 0, 0, time.UTC), bach.DeathDate)

	locations, err := repos.Location.ListLocationsByComposer(ctx, "Q1339")
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, model.ReasonBirth, locations[0].Reason)
	assert.Equal(t, "Born in Eisenach", locations[0].Description)
	assert.Equal(t, model.ReasonDeath, locations[1].Reason)
	assert.Equal(t, "Died in Leipzig", locations[1].Description)
}

func TestSeeder_RunIsIdempotent(t *testing.T) {
	s, repos, _ := newTestSeeder(t)
	ctx := context.Background()

	_, err := s.Run(ctx)
	require.NoError(t, err)
	_, err = s.Run(ctx)
	require.NoError(t, err)

	cities, err := repos.City.ListCities(ctx)
	require.NoError(t, err)
	assert.Len(t, cities, 5)

	locations, err := repos.Location.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 6)
}

func TestSeeder_HashesPasswords(t *testing.T) {
	s, repos, _ := newTestSeeder(t)
	ctx := context.Background()

	_, err := s.Run(ctx)
	require.NoError(t, err)

	user, err := repos.User.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Admin", user.Name)
	assert.Equal(t, seeder.UserID("admin@example.com"), user.ID)
	assert.NotEqual(t, "hunter2", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter2")))
}

func TestSeeder_MissingInput(t *testing.T) {
	cfg := dbtest.Config()
	db, err := database.Connect(context.Background(), cfg)
	require.NoError(t, err)
	defer db.Close()

	parser := seeder.NewParser(config.SeederConfig{DataDir: t.TempDir(), CitiesFile: "none.csv", ComposersFile: "none.csv"})
	s := seeder.NewSeeder(parser, repository.NewRepositories(db, cfg.Type, 0), nil, bcrypt.MinCost, zap.NewNop())

	_, err = s.Run(context.Background())
	assert.Error(t, err)
}
