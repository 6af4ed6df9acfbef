package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLocalHour_DaylightTime(t *testing.T) {
	start := time.Date(2024, time.July, 4, 23, 5, 0, 0, time.UTC)

	got := ToLocalHour(start, eastern(t))

	assert.Equal(t, 19, got.Hour)
	assert.Equal(t, "2024-07-04 07:05 PM ET", got.Label)
	assert.Equal(t, time.Date(2024, time.July, 4, 0, 0, 0, 0, eastern(t)), got.Date())
}

func TestToLocalHour_StandardTime(t *testing.T) {
	start := time.Date(2024, time.January, 15, 18, 10, 0, 0, time.UTC)

	got := ToLocalHour(start, eastern(t))

	assert.Equal(t, 13, got.Hour)
	assert.Equal(t, "2024-01-15 01:10 PM ET", got.Label)
}

func TestToLocalHour_AcrossSpringForward(t *testing.T) {
	// 2024-03-10 07:30Z is 03:30 EDT, the first hour after the jump.
	start := time.Date(2024, time.March, 10, 7, 30, 0, 0, time.UTC)
	assert.Equal(t, 3, ToLocalHour(start, eastern(t)).Hour)

	// One hour earlier is 01:30 EST.
	assert.Equal(t, 1, ToLocalHour(start.Add(-time.Hour), eastern(t)).Hour)
}

func TestToLocalHour_UTCCrossesDateLine(t *testing.T) {
	// A 10:10 PM Pacific game starts on the next UTC day.
	start := time.Date(2024, time.July, 5, 5, 10, 0, 0, time.UTC)
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	got := ToLocalHour(start, la)

	assert.Equal(t, 22, got.Hour)
	assert.Equal(t, "2024-07-04 10:10 PM PT", got.Label)
	assert.Equal(t, 4, got.Date().Day())
}

func TestZoneLabel_UnknownZoneUsesAbbreviation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "JST", ZoneLabel(time.Date(2024, 7, 4, 0, 0, 0, 0, tokyo)))
}

func TestTimeZoneNormalizer_Policies(t *testing.T) {
	start := time.Date(2024, time.July, 4, 23, 5, 0, 0, time.UTC)
	coors, ok := LookupVenue("Coors Field")
	require.True(t, ok)

	reporting := NewTimeZoneNormalizer(ZonePolicyReporting, eastern(t))
	got, err := reporting.ToLocalHour(start, coors)
	require.NoError(t, err)
	assert.Equal(t, 19, got.Hour)
	assert.Equal(t, "2024-07-04 07:05 PM ET", got.Label)

	venue := NewTimeZoneNormalizer(ZonePolicyVenue, eastern(t))
	got, err = venue.ToLocalHour(start, coors)
	require.NoError(t, err)
	assert.Equal(t, 17, got.Hour)
	assert.Equal(t, "2024-07-04 05:05 PM MT", got.Label)
}

func TestTimeZoneNormalizer_BadVenueZone(t *testing.T) {
	n := NewTimeZoneNormalizer(ZonePolicyVenue, eastern(t))
	loc, err := n.ZoneFor(VenueInfo{City: "Nowhere", TimeZone: "Mars/Olympus_Mons"})
	require.Error(t, err)
	assert.Equal(t, eastern(t).String(), loc.String())
}

func TestParseZonePolicy(t *testing.T) {
	p, err := ParseZonePolicy("venue")
	require.NoError(t, err)
	assert.Equal(t, ZonePolicyVenue, p)

	_, err = ParseZonePolicy("local")
	require.Error(t, err)
}
