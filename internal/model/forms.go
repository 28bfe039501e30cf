package model

// CityForm is the add-city form submission
type CityForm struct {
	WikidataID string  `form:"wikidata_id"`
	Name       string  `form:"name" validate:"required,max=255"`
	Latitude   float64 `form:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude  float64 `form:"longitude" validate:"required,gte=-180,lte=180"`
}

// LocationForm is the add-location form submission. Dates are bare years.
type LocationForm struct {
	ComposerID  string `form:"composer_id" validate:"required"`
	CityID      string `form:"city_id" validate:"required"`
	StartDate   int    `form:"start_date" validate:"gte=1000,lte=2099"`
	EndDate     int    `form:"end_date" validate:"gte=1000,lte=2099,gtefield=StartDate"`
	Reason      Reason `form:"reason" validate:"required,reason"`
	Description string `form:"description"`
}
