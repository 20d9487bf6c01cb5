package destinations

// Consolidated lookup tables shared by every surface that renders ride links.
// Earlier revisions duplicated these per handler and drifted; keep additions
// here only.

type knownAirport struct {
	Address   string
	Nickname  string
	Latitude  float64
	Longitude float64
}

var airportDropoffs = map[string]knownAirport{
	"AUS": {
		Address:   "Austin-Bergstrom International Airport, 3600 Presidential Blvd, Austin, TX 78719",
		Nickname:  "Austin-Bergstrom International Airport",
		Latitude:  30.1945,
		Longitude: -97.6699,
	},
	"SFO": {
		Address:   "San Francisco International Airport, San Francisco, CA 94128",
		Nickname:  "San Francisco International Airport",
		Latitude:  37.6213,
		Longitude: -122.3790,
	},
	"ORD": {
		Address:   "Chicago O'Hare International Airport, Chicago, IL 60666",
		Nickname:  "O'Hare International Airport",
		Latitude:  41.9742,
		Longitude: -87.9073,
	},
	"ATL": {
		Address:   "Hartsfield-Jackson Atlanta International Airport, Atlanta, GA 30337",
		Nickname:  "Hartsfield-Jackson Atlanta International Airport",
		Latitude:  33.6407,
		Longitude: -84.4277,
	},
	"IAH": {
		Address:   "George Bush Intercontinental Airport, Houston, TX 77032",
		Nickname:  "George Bush Intercontinental Airport",
		Latitude:  29.9902,
		Longitude: -95.3368,
	},
	"JFK": {
		Address:   "John F. Kennedy International Airport, Queens, NY 11430",
		Nickname:  "John F. Kennedy International Airport",
		Latitude:  40.6413,
		Longitude: -73.7781,
	},
}

type knownVenue struct {
	Nickname  string
	Address   string
	Latitude  float64
	Longitude float64
}

var knownVenues = []knownVenue{
	{
		Nickname:  "JW Marriott San Francisco Union Square",
		Address:   "515 Mason Street, San Francisco, CA 94102",
		Latitude:  37.7887,
		Longitude: -122.4103,
	},
	{
		Nickname:  "Fairmont Austin",
		Address:   "101 Red River St, Austin, TX 78701",
		Latitude:  30.2614,
		Longitude: -97.7392,
	},
	{
		Nickname:  "Austin Convention Center",
		Address:   "500 E Cesar Chavez St, Austin, TX 78701",
		Latitude:  30.2637,
		Longitude: -97.7405,
	},
	{
		Nickname:  "Mission Bay HQ",
		Address:   "1515 3rd Street, San Francisco, CA 94158",
		Latitude:  37.7685,
		Longitude: -122.3874,
	},
}
