package model

// Coordinate represents geographic coordinates
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// UnknownCoordinate marks a place whose position could not be determined
var UnknownCoordinate = Coordinate{Latitude: -99, Longitude: -99}

// IsUnknown reports whether c is the "no known location" sentinel
func (c Coordinate) IsUnknown() bool {
	return c == UnknownCoordinate
}

// City represents a geographic point referenced by composers and locations
type City struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Coordinates Coordinate `json:"coordinates"`
}
