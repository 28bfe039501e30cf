package seeder

import (
	"regexp"
	"strconv"

	"github.com/alexivanou/composer-atlas/internal/model"
)

var pointPattern = regexp.MustCompile(`Point\((-?[0-9.]*) (-?[0-9.]*)\)`)

// ParsePoint extracts a coordinate from a WKT-style "Point(<lon> <lat>)" string.
// It never fails: empty input yields model.UnknownCoordinate and input that does
// not match the pattern yields {0, 0}. Callers must not treat either as a real position.
func ParsePoint(s string) model.Coordinate {
	if s == "" {
		return model.UnknownCoordinate
	}

	m := pointPattern.FindStringSubmatch(s)
	if m == nil {
		return model.Coordinate{}
	}

	return model.Coordinate{
		Longitude: parseNumber(m[1]),
		Latitude:  parseNumber(m[2]),
	}
}

// parseNumber collapses anything that is not a valid float (e.g. "" or "1.2.3") to 0
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
