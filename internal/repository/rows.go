package repository

import (
	"sort"
	"time"

	"github.com/alexivanou/composer-atlas/internal/model"
)

type cityRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Latitude  float64 `db:"latitude"`
	Longitude float64 `db:"longitude"`
}

func (r cityRow) toModel() model.City {
	return model.City{
		ID:   r.ID,
		Name: decodeText(r.Name),
		Coordinates: model.Coordinate{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
	}
}

func newCityRow(c model.City) cityRow {
	return cityRow{
		ID:        c.ID,
		Name:      encodeText(c.Name),
		Latitude:  c.Coordinates.Latitude,
		Longitude: c.Coordinates.Longitude,
	}
}

// composerRow is a composer joined to its birth and death cities
type composerRow struct {
	ID                  string    `db:"id"`
	Name                string    `db:"name"`
	BirthDate           time.Time `db:"birthdate"`
	BirthplaceID        string    `db:"birthplace_id"`
	BirthplaceName      string    `db:"birthplace_name"`
	BirthplaceLatitude  float64   `db:"birthplace_latitude"`
	BirthplaceLongitude float64   `db:"birthplace_longitude"`
	DeathDate           time.Time `db:"deathdate"`
	DeathplaceID        string    `db:"deathplace_id"`
	DeathplaceName      string    `db:"deathplace_name"`
	DeathplaceLatitude  float64   `db:"deathplace_latitude"`
	DeathplaceLongitude float64   `db:"deathplace_longitude"`
}

func (r composerRow) toModel() model.Composer {
	return model.Composer{
		ID:        r.ID,
		Name:      decodeText(r.Name),
		BirthDate: model.Date(r.BirthDate),
		Birthplace: cityRow{
			ID:        r.BirthplaceID,
			Name:      r.BirthplaceName,
			Latitude:  r.BirthplaceLatitude,
			Longitude: r.BirthplaceLongitude,
		}.toModel(),
		DeathDate: model.Date(r.DeathDate),
		Deathplace: cityRow{
			ID:        r.DeathplaceID,
			Name:      r.DeathplaceName,
			Latitude:  r.DeathplaceLatitude,
			Longitude: r.DeathplaceLongitude,
		}.toModel(),
		Locations: []model.Location{},
	}
}

// locationRow is a location joined to its city
type locationRow struct {
	ID            string    `db:"id"`
	ComposerID    string    `db:"composer_id"`
	CityID        string    `db:"city_id"`
	CityName      string    `db:"city_name"`
	CityLatitude  float64   `db:"city_latitude"`
	CityLongitude float64   `db:"city_longitude"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	Reason        string    `db:"reason"`
	Description   string    `db:"description"`
}

func (r locationRow) toModel() model.Location {
	return model.Location{
		ID:         r.ID,
		ComposerID: r.ComposerID,
		City: cityRow{
			ID:        r.CityID,
			Name:      r.CityName,
			Latitude:  r.CityLatitude,
			Longitude: r.CityLongitude,
		}.toModel(),
		StartDate:   model.Date(r.StartDate),
		EndDate:     model.Date(r.EndDate),
		Reason:      model.Reason(r.Reason),
		Description: decodeText(r.Description),
	}
}

func encodeComposer(c model.ComposerRecord) model.ComposerRecord {
	c.Name = encodeText(c.Name)
	c.BirthDate = model.Date(c.BirthDate)
	c.DeathDate = model.Date(c.DeathDate)
	return c
}

func encodeLocation(l model.LocationRecord) model.LocationRecord {
	l.Description = encodeText(l.Description)
	l.StartDate = model.Date(l.StartDate)
	l.EndDate = model.Date(l.EndDate)
	return l
}

func encodeUser(u model.User) model.User {
	u.Name = encodeText(u.Name)
	return u
}

// Names are stored percent-encoded, which does not sort like the decoded text,
// so ordering is re-applied after decoding. Both sorts are stable over the SQL order.
func sortCitiesByName(cities []model.City) {
	sort.SliceStable(cities, func(i, j int) bool {
		return cities[i].Name < cities[j].Name
	})
}

func sortComposersByBirth(composers []model.Composer) {
	sort.SliceStable(composers, func(i, j int) bool {
		a, b := composers[i], composers[j]
		if !a.BirthDate.Equal(b.BirthDate) {
			return a.BirthDate.Before(b.BirthDate)
		}
		return a.Birthplace.Name < b.Birthplace.Name
	})
}

func toLocations(rows []locationRow) []model.Location {
	locations := make([]model.Location, 0, len(rows))
	for _, row := range rows {
		locations = append(locations, row.toModel())
	}
	return locations
}
