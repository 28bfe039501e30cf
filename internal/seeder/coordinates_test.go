package seeder

import (
	"testing"

	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected model.Coordinate
	}{
		{
			name:     "Berlin",
			input:    "Point(13.405 52.52)",
			expected: model.Coordinate{Longitude: 13.405, Latitude: 52.52},
		},
		{
			name:     "Negative values",
			input:    "Point(-74.006 -40.7128)",
			expected: model.Coordinate{Longitude: -74.006, Latitude: -40.7128},
		},
		{
			name:     "Empty input is unknown",
			input:    "",
			expected: model.Coordinate{Longitude: -99, Latitude: -99},
		},
		{
			name:     "Unmatched input falls back to zero",
			input:    "somewhere in Saxony",
			expected: model.Coordinate{},
		},
		{
			name:     "Malformed number collapses to zero",
			input:    "Point(1.2.3 50.1)",
			expected: model.Coordinate{Longitude: 0, Latitude: 50.1},
		},
		{
			name:     "Embedded in a longer string",
			input:    "<http://www.opengis.net/def/crs/OGC/1.3/CRS84> Point(12.3833 51.3333)",
			expected: model.Coordinate{Longitude: 12.3833, Latitude: 51.3333},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePoint(tt.input))
		})
	}
}

func TestParsePoint_EmptyIsUnknown(t *testing.T) {
	assert.True(t, ParsePoint("").IsUnknown())
	assert.False(t, ParsePoint("Point(0 0)").IsUnknown())
}
