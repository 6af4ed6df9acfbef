package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupVenue(t *testing.T) {
	v, ok := LookupVenue("Fenway Park")
	assert.True(t, ok)
	assert.Equal(t, "Boston, Massachusetts", v.Label())
	assert.Equal(t, "America/New_York", v.TimeZone)
	if assert.NotNil(t, v.Stadium) {
		assert.InDelta(t, 42.3467, v.Stadium.Lat, 1e-4)
		assert.InDelta(t, -71.0972, v.Stadium.Lon, 1e-4)
	}
}

func TestLookupVenue_TemporaryHomeHasNoStadium(t *testing.T) {
	v, ok := LookupVenue("Sutter Health Park")
	assert.True(t, ok)
	assert.Nil(t, v.Stadium)
}

func TestLookupVenue_IgnoresCaseAndSpace(t *testing.T) {
	a, ok := LookupVenue("loanDepot park")
	assert.True(t, ok)
	b, ok := LookupVenue("  LoanDepot Park ")
	assert.True(t, ok)
	assert.Equal(t, a, b)
}

func TestLookupVenue_Unknown(t *testing.T) {
	_, ok := LookupVenue("Neutral Site X")
	assert.False(t, ok)
}

func TestKnownVenuesAreComplete(t *testing.T) {
	for name, v := range knownVenues {
		assert.NotEmpty(t, v.City, name)
		assert.NotEmpty(t, v.Region, name)
		assert.NotEmpty(t, v.Country, name)
		assert.NotEmpty(t, v.TimeZone, name)
		if v.Stadium != nil {
			assert.True(t, v.Stadium.Lat > 20 && v.Stadium.Lat < 50, name)
			assert.True(t, v.Stadium.Lon > -125 && v.Stadium.Lon < -70, name)
		}
	}
}
