package seeder

import (
	"strconv"
	"time"

	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/google/uuid"
)

// seedNamespace scopes the name-based identifiers synthesized during import
var seedNamespace = uuid.MustParse("6f1c1e4e-8a4b-4f0e-9a55-3c3f7d0b2a61")

const unknownPlace = "Unknown"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// cityIndex maps an observed coordinate to the first city seen at it
type cityIndex struct {
	ids    map[model.Coordinate]string
	cities []model.City
}

func newCityIndex(cities []model.City) *cityIndex {
	idx := &cityIndex{
		ids:    make(map[model.Coordinate]string, len(cities)),
		cities: make([]model.City, 0, len(cities)),
	}
	for _, c := range cities {
		idx.cities = append(idx.cities, c)
		if _, ok := idx.ids[c.Coordinates]; !ok {
			idx.ids[c.Coordinates] = c.ID
		}
	}
	return idx
}

// resolve returns the id of the city at the parsed coordinate, appending a new
// city named after label when none has been seen yet
func (x *cityIndex) resolve(label, coords string) string {
	point := ParsePoint(coords)
	if id, ok := x.ids[point]; ok {
		return id
	}

	if label == "" {
		label = unknownPlace
	}
	id := CityID(point)
	x.ids[point] = id
	x.cities = append(x.cities, model.City{ID: id, Name: label, Coordinates: point})
	return id
}

// Normalize resolves every composer's birth and death place against the known
// cities. Two places are the same city when their parsed coordinates are exactly
// equal; the first city seen at a coordinate wins. Rows are processed in file
// order, birthplace before deathplace, so identifier assignment is reproducible.
func Normalize(raw []RawComposer, cities []model.City) ([]model.ComposerRecord, []model.City) {
	idx := newCityIndex(cities)

	composers := make([]model.ComposerRecord, 0, len(raw))
	for _, rc := range raw {
		composers = append(composers, model.ComposerRecord{
			ID:           rc.ID,
			Name:         rc.Name,
			BirthDate:    ParseDate(rc.BirthDate),
			BirthplaceID: idx.resolve(rc.Birthplace, rc.CoordsBirth),
			DeathDate:    ParseDate(rc.DeathDate),
			DeathplaceID: idx.resolve(rc.Deathplace, rc.CoordsDeath),
		})
	}

	return composers, idx.cities
}

// CityID derives a stable identifier for a city synthesized from a coordinate
func CityID(c model.Coordinate) string {
	name := "geo:" + strconv.FormatFloat(c.Latitude, 'g', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'g', -1, 64)
	return uuid.NewSHA1(seedNamespace, []byte(name)).String()
}

// ParseDate parses a Wikidata timestamp or a plain date. Absent or unreadable
// values become model.UnknownDate so that one bad row cannot abort the import.
func ParseDate(s string) time.Time {
	if s == "" {
		return model.UnknownDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.Date(t)
		}
	}
	return model.UnknownDate
}

// CreateCityNameMap indexes city names by identifier
func CreateCityNameMap(cities []model.City) map[string]string {
	names := make(map[string]string, len(cities))
	for _, c := range cities {
		if _, ok := names[c.ID]; !ok {
			names[c.ID] = c.Name
		}
	}
	return names
}

// BuildLocations derives the birth and death location of every composer.
// Identifiers are name-based so re-seeding never duplicates them.
func BuildLocations(composers []model.ComposerRecord, cityNames map[string]string) []model.LocationRecord {
	locations := make([]model.LocationRecord, 0, 2*len(composers))
	for _, c := range composers {
		locations = append(locations,
			model.LocationRecord{
				ID:          LocationID(c.ID, model.ReasonBirth),
				ComposerID:  c.ID,
				CityID:      c.BirthplaceID,
				StartDate:   c.BirthDate,
				EndDate:     c.BirthDate,
				Reason:      string(model.ReasonBirth),
				Description: "Born in " + cityNames[c.BirthplaceID],
			},
			model.LocationRecord{
				ID:          LocationID(c.ID, model.ReasonDeath),
				ComposerID:  c.ID,
				CityID:      c.DeathplaceID,
				StartDate:   c.DeathDate,
				EndDate:     c.DeathDate,
				Reason:      string(model.ReasonDeath),
				Description: "Died in " + cityNames[c.DeathplaceID],
			},
		)
	}
	return locations
}

// LocationID derives the identifier of a seeded location
func LocationID(composerID string, reason model.Reason) string {
	return uuid.NewSHA1(seedNamespace, []byte("location:"+composerID+"/"+string(reason))).String()
}

// UserID derives the identifier of a seeded user from its email
func UserID(email string) string {
	return uuid.NewSHA1(seedNamespace, []byte("user:"+email)).String()
}
