package model

import "time"

// Reason is the category of a composer's stay in a city
type Reason string

const (
	ReasonJourney   Reason = "journey"
	ReasonResidence Reason = "residence"
	ReasonJob       Reason = "job"
	ReasonVisit     Reason = "visit"
	ReasonBirth     Reason = "birth"
	ReasonDeath     Reason = "death"
	ReasonOther     Reason = "other"
)

// Reasons lists every accepted reason in display order
var Reasons = []Reason{
	ReasonJourney, ReasonResidence, ReasonJob, ReasonVisit, ReasonBirth, ReasonDeath, ReasonOther,
}

// Valid reports whether r belongs to the closed set of reasons
func (r Reason) Valid() bool {
	for _, known := range Reasons {
		if r == known {
			return true
		}
	}
	return false
}

// Location is a time-bounded stay of a composer in a city
type Location struct {
	ID          string    `json:"id"`
	ComposerID  string    `json:"composer_id"`
	City        City      `json:"city"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Reason      Reason    `json:"reason"`
	Description string    `json:"description"`
}

// LocationRecord is the flat form of a location as written to the store
type LocationRecord struct {
	ID          string    `db:"id"`
	ComposerID  string    `db:"composer_id"`
	CityID      string    `db:"city_id"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Reason      string    `db:"reason"`
	Description string    `db:"description"`
}
