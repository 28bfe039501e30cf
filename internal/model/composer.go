package model

import "time"

// UnknownDate stands in for a missing birth or death date (0001-01-01 UTC)
var UnknownDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)

// Composer represents a composer with resolved birth and death cities
type Composer struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	BirthDate  time.Time  `json:"birth_date"`
	Birthplace City       `json:"birthplace"`
	DeathDate  time.Time  `json:"death_date"`
	Deathplace City       `json:"deathplace"`
	Locations  []Location `json:"locations"`
}

// ComposerRecord is the flat form of a composer used during seeding,
// with birth and death places referenced by city identifier.
type ComposerRecord struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	BirthplaceID string    `db:"birthplace"`
	BirthDate    time.Time `db:"birthdate"`
	DeathplaceID string    `db:"deathplace"`
	DeathDate    time.Time `db:"deathdate"`
}

// Date truncates t to a calendar date in UTC
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// YearStart returns January 1st of the given year
func YearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
