package validation

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCity() url.Values {
	return url.Values{
		"name":      {"Lübeck"},
		"latitude":  {"53.8697"},
		"longitude": {"10.6864"},
	}
}

func validLocation() url.Values {
	return url.Values{
		"composer_id": {"Q1339"},
		"city_id":     {"Q3955"},
		"start_date":  {"1705"},
		"end_date":    {"1706"},
		"reason":      {"journey"},
		"description": {"Walked to hear Buxtehude"},
	}
}

func TestValidator_City(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		modify   func(url.Values)
		field    string
		expected string
	}{
		{"missing name", func(v url.Values) { v.Del("name") }, "name", "Please enter a city name"},
		{"blank name", func(v url.Values) { v.Set("name", "   ") }, "name", "Please enter a city name"},
		{"name too long", func(v url.Values) { v.Set("name", strings.Repeat("ö", 256)) }, "name", "Must be at most 255 characters"},
		{"missing latitude", func(v url.Values) { v.Del("latitude") }, "latitude", "Please enter a latitude"},
		{"zero latitude", func(v url.Values) { v.Set("latitude", "0") }, "latitude", "Please enter a latitude"},
		{"latitude too large", func(v url.Values) { v.Set("latitude", "90.5") }, "latitude", "Must be less than or equal to 90"},
		{"longitude too small", func(v url.Values) { v.Set("longitude", "-181") }, "longitude", "Must be greater than or equal to -180"},
		{"longitude not a number", func(v url.Values) { v.Set("longitude", "east") }, "longitude", "Expected a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validCity()
			tt.modify(values)

			_, err := v.City(values)

			var verrs Errors
			require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
			assert.Equal(t, tt.expected, verrs.Message(tt.field))
		})
	}

	t.Run("valid", func(t *testing.T) {
		values := validCity()
		values.Set("wikidata_id", "Q2843")

		f, err := v.City(values)
		require.NoError(t, err)
		assert.Equal(t, model.CityForm{WikidataID: "Q2843", Name: "Lübeck", Latitude: 53.8697, Longitude: 10.6864}, f)
	})

	t.Run("long non-ascii name accepted", func(t *testing.T) {
		values := validCity()
		values.Set("name", strings.Repeat("ö", 255))

		f, err := v.City(values)
		require.NoError(t, err)
		assert.Len(t, []rune(f.Name), 255)
	})

	t.Run("boundaries accepted", func(t *testing.T) {
		values := validCity()
		values.Set("latitude", "-90")
		values.Set("longitude", "180")

		_, err := v.City(values)
		assert.NoError(t, err)
	})
}

func TestValidator_Location(t *testing.T) {
	v := New()

	tests := []struct {
		name     string
		modify   func(url.Values)
		field    string
		expected string
	}{
		{"missing composer", func(v url.Values) { v.Del("composer_id") }, "composer_id", "Missing composer"},
		{"missing city", func(v url.Values) { v.Del("city_id") }, "city_id", "Please select a city"},
		{"start too early", func(v url.Values) { v.Set("start_date", "999") }, "start_date", "Must be greater than or equal to 1000"},
		{"end too late", func(v url.Values) { v.Set("end_date", "2100") }, "end_date", "Must be less than or equal to 2099"},
		{"end before start", func(v url.Values) { v.Set("end_date", "1704") }, "end_date", "End date must be after start date"},
		{"start not a number", func(v url.Values) { v.Set("start_date", "early") }, "start_date", "Expected a number"},
		{"unknown reason", func(v url.Values) { v.Set("reason", "holiday") }, "reason", "Please select a reason from the list."},
		{"missing reason", func(v url.Values) { v.Del("reason") }, "reason", "Please select a reason from the list."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validLocation()
			tt.modify(values)

			_, err := v.Location(values)

			var verrs Errors
			require.True(t, errors.As(err, &verrs), "expected validation errors, got %v", err)
			assert.Equal(t, tt.expected, verrs.Message(tt.field))
		})
	}

	t.Run("valid", func(t *testing.T) {
		f, err := v.Location(validLocation())
		require.NoError(t, err)
		assert.Equal(t, 1705, f.StartDate)
		assert.Equal(t, 1706, f.EndDate)
		assert.Equal(t, model.ReasonJourney, f.Reason)
	})

	t.Run("same year", func(t *testing.T) {
		values := validLocation()
		values.Set("end_date", "1705")
		_, err := v.Location(values)
		assert.NoError(t, err)
	})
}

func TestErrors(t *testing.T) {
	errs := Errors{
		{Field: "name", Message: "Please enter a city name"},
		{Field: "latitude", Message: "Please enter a latitude"},
	}

	assert.Equal(t, "validation failed: name: Please enter a city name; latitude: Please enter a latitude", errs.Error())
	assert.True(t, errs.Has("latitude"))
	assert.False(t, errs.Has("longitude"))
	assert.Empty(t, errs.Message("longitude"))
}
