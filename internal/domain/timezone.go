package domain

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone rules must not depend on the host's zoneinfo
)

// ZonePolicy selects the zone games are expressed in.
type ZonePolicy string

const (
	// ZonePolicyReporting expresses every game in one fixed reporting zone.
	ZonePolicyReporting ZonePolicy = "reporting"
	// ZonePolicyVenue expresses every game in its venue's zone.
	ZonePolicyVenue ZonePolicy = "venue"
)

// ParseZonePolicy validates a configured zone policy.
func ParseZonePolicy(s string) (ZonePolicy, error) {
	switch ZonePolicy(s) {
	case ZonePolicyReporting, ZonePolicyVenue:
		return ZonePolicy(s), nil
	}
	return "", fmt.Errorf("unknown time zone policy %q", s)
}

// localTimeLayout renders "2024-07-04 07:05 PM"; the zone label is appended.
const localTimeLayout = "2006-01-02 03:04 PM"

// genericZoneLabels gives the season-independent label for common zones,
// so July and April games both read "ET" rather than "EDT"/"EST".
var genericZoneLabels = map[string]string{
	"America/New_York":    "ET",
	"America/Detroit":     "ET",
	"America/Toronto":     "ET",
	"America/Chicago":     "CT",
	"America/Denver":      "MT",
	"America/Phoenix":     "MST",
	"America/Los_Angeles": "PT",
}

// LocalTime is a game start expressed on a zone's wall clock.
type LocalTime struct {
	Time  time.Time
	Label string // "2024-07-04 07:05 PM ET"
	Hour  int    // 0–23, the alignment hour
}

// Date is local midnight of the game's calendar day.
func (l LocalTime) Date() time.Time {
	y, m, d := l.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, l.Time.Location())
}

// ToLocalHour converts a UTC start time to loc's wall clock.
func ToLocalHour(startUTC time.Time, loc *time.Location) LocalTime {
	t := startUTC.In(loc)
	return LocalTime{
		Time:  t,
		Label: t.Format(localTimeLayout) + " " + ZoneLabel(t),
		Hour:  t.Hour(),
	}
}

// ZoneLabel returns the generic label for t's zone when one is known,
// otherwise the zone abbreviation in effect at t.
func ZoneLabel(t time.Time) string {
	if label, ok := genericZoneLabels[t.Location().String()]; ok {
		return label
	}
	return t.Format("MST")
}

// TimeZoneNormalizer picks the zone for a venue according to a policy.
type TimeZoneNormalizer struct {
	policy    ZonePolicy
	reporting *time.Location
}

// NewTimeZoneNormalizer creates a normalizer. reporting is used for every
// venue under ZonePolicyReporting and for venues without a known zone.
func NewTimeZoneNormalizer(policy ZonePolicy, reporting *time.Location) TimeZoneNormalizer {
	if reporting == nil {
		reporting = time.UTC
	}
	return TimeZoneNormalizer{policy: policy, reporting: reporting}
}

// Reporting returns the fixed reporting zone.
func (n TimeZoneNormalizer) Reporting() *time.Location { return n.reporting }

// ZoneFor returns the zone games at venue are expressed in. An unloadable
// venue zone returns the reporting zone together with the load error.
func (n TimeZoneNormalizer) ZoneFor(venue VenueInfo) (*time.Location, error) {
	if n.policy != ZonePolicyVenue || venue.TimeZone == "" {
		return n.reporting, nil
	}
	loc, err := time.LoadLocation(venue.TimeZone)
	if err != nil {
		return n.reporting, fmt.Errorf("load zone %q: %w", venue.TimeZone, err)
	}
	return loc, nil
}

// ToLocalHour converts startUTC to the venue's zone under the policy.
func (n TimeZoneNormalizer) ToLocalHour(startUTC time.Time, venue VenueInfo) (LocalTime, error) {
	loc, err := n.ZoneFor(venue)
	return ToLocalHour(startUTC, loc), err
}
