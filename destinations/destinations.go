// Package destinations infers ride-hailing drop-off targets from
// heterogeneous travel records (route codes, street addresses, flight
// numbers) and builds the matching deep links. Travel data is free text, so
// the heuristics live here and nowhere else; an explicit stored link always
// wins over an inferred one.
package destinations

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/ringsaturn/tzf"

	"backend/models"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Destination is derived per request and never persisted.
type Destination struct {
	Address     string       `json:"address"`
	Nickname    string       `json:"nickname"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Timezone    string       `json:"timezone,omitempty"`
}

var (
	// "JFK -> AUS" style route codes on flight segments.
	routePattern = regexp.MustCompile(`\b([A-Z]{3})\s*->\s*([A-Z]{3})\b`)
	// "UA 1341" style flight numbers, which are never street addresses.
	flightNumberPattern = regexp.MustCompile(`^[A-Z]{2,3}\s*\d+`)
)

// ResolveDestination applies the resolution rules in order, first match wins:
// flight route code against the airport table, then the known-venue table,
// then the raw location when it is not a flight number, then the fallback
// address supplied by the caller.
func ResolveDestination(item models.TravelItem, fallbackAddress string) Destination {
	if item.Type == models.TravelFlight && item.Location != "" {
		if match := routePattern.FindStringSubmatch(item.Location); match != nil {
			if airport, ok := airportDropoffs[match[2]]; ok {
				return withTimezone(Destination{
					Address:     airport.Address,
					Nickname:    airport.Nickname,
					Coordinates: &Coordinates{Latitude: airport.Latitude, Longitude: airport.Longitude},
				})
			}
			return Destination{Address: fallbackAddress, Nickname: "Destination"}
		}
	}

	if item.Location != "" {
		if venue, ok := matchKnownVenue(item.Location); ok {
			return withTimezone(Destination{
				Address:     venue.Address,
				Nickname:    venue.Nickname,
				Coordinates: &Coordinates{Latitude: venue.Latitude, Longitude: venue.Longitude},
			})
		}

		if !flightNumberPattern.MatchString(item.Location) {
			return Destination{Address: item.Location, Nickname: deriveNickname(item.Provider, item.Location)}
		}
	}

	return Destination{Address: fallbackAddress, Nickname: firstSegment(fallbackAddress)}
}

// BuildRideLink renders the universal ride deep link for a destination,
// including coordinates when the lookup tables provided them.
func BuildRideLink(destination Destination) string {
	params := url.Values{}
	params.Set("action", "setPickup")
	params.Set("pickup", "my_location")
	params.Set("dropoff[formatted_address]", destination.Address)

	nickname := destination.Nickname
	if nickname == "" {
		nickname = firstSegment(destination.Address)
	}
	params.Set("dropoff[nickname]", nickname)

	if destination.Coordinates != nil {
		params.Set("dropoff[latitude]", strconv.FormatFloat(destination.Coordinates.Latitude, 'f', -1, 64))
		params.Set("dropoff[longitude]", strconv.FormatFloat(destination.Coordinates.Longitude, 'f', -1, 64))
	}

	return "https://m.uber.com/ul/?" + params.Encode()
}

// NormalizeRideLink upgrades app-scheme links to the universal-link form so
// stored admin-entered links open on any device.
func NormalizeRideLink(raw string) string {
	if strings.Contains(raw, "m.uber.com/ul/?") {
		return raw
	}

	if strings.HasPrefix(raw, "uber://") {
		_, query, _ := strings.Cut(raw, "?")
		return "https://m.uber.com/ul/?" + query
	}

	return raw
}

// RideLinkForItem resolves the link every display surface should use: the
// stored link when an admin entered one, the inferred one otherwise.
func RideLinkForItem(item models.TravelItem, fallbackAddress string) string {
	if item.Links.Uber != "" {
		return NormalizeRideLink(item.Links.Uber)
	}
	return BuildRideLink(ResolveDestination(item, fallbackAddress))
}

func matchKnownVenue(location string) (knownVenue, bool) {
	needle := strings.ToLower(strings.TrimSpace(location))
	for _, venue := range knownVenues {
		if strings.Contains(needle, strings.ToLower(venue.Nickname)) {
			return venue, true
		}
		// Partial street addresses still count, but only against the street
		// segment. Matching the full address would let shared city/state/zip
		// fragments steal unrelated locations.
		street, _, _ := strings.Cut(venue.Address, ",")
		if len(needle) >= 6 && strings.Contains(strings.ToLower(street), needle) {
			return venue, true
		}
	}
	return knownVenue{}, false
}

func deriveNickname(provider, location string) string {
	if provider != "" {
		return provider
	}
	return firstSegment(location)
}

func firstSegment(address string) string {
	segment, _, _ := strings.Cut(address, ",")
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "Destination"
	}
	return segment
}

var (
	tzOnce   sync.Once
	tzFinder tzf.F
)

func withTimezone(destination Destination) Destination {
	if destination.Coordinates == nil {
		return destination
	}

	tzOnce.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err == nil {
			tzFinder = finder
		}
	})
	if tzFinder != nil {
		destination.Timezone = tzFinder.GetTimezoneName(destination.Coordinates.Longitude, destination.Coordinates.Latitude)
	}
	return destination
}
