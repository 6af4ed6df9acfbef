package domain

import "strings"

// VenueInfo is the location a venue name maps to.
type VenueInfo struct {
	City     string
	Region   string // state or province
	Country  string // ISO 3166-1 alpha-2
	TimeZone string // IANA zone name
	// Stadium is the ballpark's own coordinate, when known. Geocoding the
	// city label lands on the city centre instead.
	Stadium *Coordinate
}

// Label is the human-readable city/region label, also used as the geocode
// cache key.
func (v VenueInfo) Label() string {
	return v.City + ", " + v.Region
}

const (
	zoneEastern  = "America/New_York"
	zoneCentral  = "America/Chicago"
	zoneMountain = "America/Denver"
	zonePacific  = "America/Los_Angeles"
)

// knownVenues covers every MLB park plus renamed and temporary homes.
// Keys are lower-cased venue names.
var knownVenues = map[string]VenueInfo{
	"oriole park at camden yards":  {City: "Baltimore", Region: "Maryland", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 39.2839, Lon: -76.6217}},
	"fenway park":                  {City: "Boston", Region: "Massachusetts", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 42.3467, Lon: -71.0972}},
	"tropicana field":              {City: "St. Petersburg", Region: "Florida", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 27.7687, Lon: -82.6534}},
	"george m. steinbrenner field": {City: "Tampa", Region: "Florida", Country: "US", TimeZone: zoneEastern},
	"yankee stadium":               {City: "New York", Region: "New York", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 40.8296, Lon: -73.9262}},
	"citi field":                   {City: "New York", Region: "New York", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 40.7571, Lon: -73.8458}},
	"rogers centre":                {City: "Toronto", Region: "Ontario", Country: "CA", TimeZone: "America/Toronto", Stadium: &Coordinate{Lat: 43.6414, Lon: -79.3894}},
	"citizens bank park":           {City: "Philadelphia", Region: "Pennsylvania", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 39.9061, Lon: -75.1664}},
	"nationals park":               {City: "Washington", Region: "District of Columbia", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 38.8730, Lon: -77.0074}},
	"truist park":                  {City: "Atlanta", Region: "Georgia", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 33.8903, Lon: -84.4678}},
	"loandepot park":               {City: "Miami", Region: "Florida", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 25.7781, Lon: -80.2199}},
	"pnc park":                     {City: "Pittsburgh", Region: "Pennsylvania", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 40.4468, Lon: -80.0059}},
	"guaranteed rate field":        {City: "Chicago", Region: "Illinois", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 41.8308, Lon: -87.6333}},
	"rate field":                   {City: "Chicago", Region: "Illinois", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 41.8308, Lon: -87.6333}},
	"progressive field":            {City: "Cleveland", Region: "Ohio", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 41.4961, Lon: -81.6853}},
	"comerica park":                {City: "Detroit", Region: "Michigan", Country: "US", TimeZone: "America/Detroit", Stadium: &Coordinate{Lat: 42.3390, Lon: -83.0485}},
	"kauffman stadium":             {City: "Kansas City", Region: "Missouri", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 39.0510, Lon: -94.4803}},
	"target field":                 {City: "Minneapolis", Region: "Minnesota", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 44.9817, Lon: -93.2775}},
	"wrigley field":                {City: "Chicago", Region: "Illinois", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 41.9484, Lon: -87.6553}},
	"great american ball park":     {City: "Cincinnati", Region: "Ohio", Country: "US", TimeZone: zoneEastern, Stadium: &Coordinate{Lat: 39.0970, Lon: -84.5060}},
	"american family field":        {City: "Milwaukee", Region: "Wisconsin", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 43.0286, Lon: -87.9711}},
	"busch stadium":                {City: "St. Louis", Region: "Missouri", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 38.6226, Lon: -90.1928}},
	"t-mobile park":                {City: "Seattle", Region: "Washington", Country: "US", TimeZone: zonePacific, Stadium: &Coordinate{Lat: 47.5914, Lon: -122.3325}},
	"angel stadium":                {City: "Anaheim", Region: "California", Country: "US", TimeZone: zonePacific, Stadium: &Coordinate{Lat: 33.8003, Lon: -117.8827}},
	"dodger stadium":               {City: "Los Angeles", Region: "California", Country: "US", TimeZone: zonePacific, Stadium: &Coordinate{Lat: 34.0739, Lon: -118.2400}},
	"globe life field":             {City: "Arlington", Region: "Texas", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 32.7519, Lon: -97.0821}},
	"coors field":                  {City: "Denver", Region: "Colorado", Country: "US", TimeZone: zoneMountain, Stadium: &Coordinate{Lat: 39.7562, Lon: -104.9942}},
	"chase field":                  {City: "Phoenix", Region: "Arizona", Country: "US", TimeZone: "America/Phoenix", Stadium: &Coordinate{Lat: 33.4455, Lon: -112.0667}},
	"petco park":                   {City: "San Diego", Region: "California", Country: "US", TimeZone: zonePacific, Stadium: &Coordinate{Lat: 32.7073, Lon: -117.1567}},
	"oracle park":                  {City: "San Francisco", Region: "California", Country: "US", TimeZone: zonePacific, Stadium: &Coordinate{Lat: 37.7786, Lon: -122.3893}},
	"oakland coliseum":             {City: "Oakland", Region: "California", Country: "US", TimeZone: zonePacific, Stadium: &Coordinate{Lat: 37.7516, Lon: -122.2005}},
	"sutter health park":           {City: "Sacramento", Region: "California", Country: "US", TimeZone: zonePacific},
	"minute maid park":             {City: "Houston", Region: "Texas", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 29.7573, Lon: -95.3554}},
	"daikin park":                  {City: "Houston", Region: "Texas", Country: "US", TimeZone: zoneCentral, Stadium: &Coordinate{Lat: 29.7573, Lon: -95.3554}},
}

// LookupVenue maps a venue name to its location. Matching ignores case and
// surrounding whitespace ("loanDepot park" and "loanDepot Park" are the same).
func LookupVenue(name string) (VenueInfo, bool) {
	v, ok := knownVenues[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}
