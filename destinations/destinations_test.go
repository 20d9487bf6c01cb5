package destinations

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/models"
)

const eventVenue = "500 E Cesar Chavez St, Austin, TX 78701"

func TestResolveDestinationRouteCodeHitsAirportTable(t *testing.T) {
	item := models.TravelItem{Type: models.TravelFlight, Provider: "United", Location: "JFK -> AUS"}

	dest := ResolveDestination(item, eventVenue)

	assert.Equal(t, "Austin-Bergstrom International Airport, 3600 Presidential Blvd, Austin, TX 78719", dest.Address)
	assert.Equal(t, "Austin-Bergstrom International Airport", dest.Nickname)
	require.NotNil(t, dest.Coordinates)
	assert.InDelta(t, 30.1945, dest.Coordinates.Latitude, 0.0001)
	assert.InDelta(t, -97.6699, dest.Coordinates.Longitude, 0.0001)
	assert.Equal(t, "America/Chicago", dest.Timezone)
}

func TestResolveDestinationUnknownArrivalFallsBack(t *testing.T) {
	item := models.TravelItem{Type: models.TravelFlight, Provider: "United", Location: "JFK -> ZZZ"}

	dest := ResolveDestination(item, eventVenue)

	assert.Equal(t, eventVenue, dest.Address)
	assert.Equal(t, "Destination", dest.Nickname)
	assert.Nil(t, dest.Coordinates)
}

func TestResolveDestinationFlightNumberIsNotAnAddress(t *testing.T) {
	item := models.TravelItem{Type: models.TravelFlight, Provider: "United", Location: "UA 1341"}

	dest := ResolveDestination(item, eventVenue)

	assert.Equal(t, eventVenue, dest.Address)
	assert.Equal(t, "500 E Cesar Chavez St", dest.Nickname)
}

func TestResolveDestinationMatchesKnownVenues(t *testing.T) {
	byName := ResolveDestination(models.TravelItem{Type: models.TravelHotel, Location: "Fairmont Austin downtown"}, eventVenue)
	assert.Equal(t, "101 Red River St, Austin, TX 78701", byName.Address)
	assert.Equal(t, "Fairmont Austin", byName.Nickname)
	require.NotNil(t, byName.Coordinates)

	byAddressFragment := ResolveDestination(models.TravelItem{Type: models.TravelOther, Location: "515 Mason Street"}, eventVenue)
	assert.Equal(t, "JW Marriott San Francisco Union Square", byAddressFragment.Nickname)
}

func TestResolveDestinationPassesThroughRawAddresses(t *testing.T) {
	item := models.TravelItem{Type: models.TravelCar, Provider: "Hertz", Location: "812 Congress Ave, Austin, TX"}

	dest := ResolveDestination(item, eventVenue)

	assert.Equal(t, "812 Congress Ave, Austin, TX", dest.Address)
	assert.Equal(t, "Hertz", dest.Nickname)
	assert.Nil(t, dest.Coordinates)
}

func TestResolveDestinationKeepsFirstSegmentVerbatim(t *testing.T) {
	item := models.TravelItem{Type: models.TravelOther, Location: "1100 CONGRESS AVE, Austin, TX"}

	dest := ResolveDestination(item, eventVenue)

	assert.Equal(t, "1100 CONGRESS AVE", dest.Nickname)
}

func TestResolveDestinationCityFragmentDoesNotMatchVenues(t *testing.T) {
	// "Austin, TX 78701" appears in several known venue addresses; a bare
	// city/state/zip location must still pass through as-is instead of being
	// rerouted to one of them.
	item := models.TravelItem{Type: models.TravelCar, Provider: "Hertz", Location: "Austin, TX 78701"}

	dest := ResolveDestination(item, eventVenue)

	assert.Equal(t, "Austin, TX 78701", dest.Address)
	assert.Equal(t, "Hertz", dest.Nickname)
	assert.Nil(t, dest.Coordinates)
}

func TestBuildRideLinkRoundTripsThroughURLDecoding(t *testing.T) {
	link := BuildRideLink(Destination{
		Address:     "101 Red River St, Austin, TX 78701",
		Nickname:    "Fairmont Austin",
		Coordinates: &Coordinates{Latitude: 30.2614, Longitude: -97.7392},
	})

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "m.uber.com", parsed.Host)
	assert.Equal(t, "/ul/", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "setPickup", query.Get("action"))
	assert.Equal(t, "my_location", query.Get("pickup"))
	assert.Equal(t, "101 Red River St, Austin, TX 78701", query.Get("dropoff[formatted_address]"))
	assert.Equal(t, "Fairmont Austin", query.Get("dropoff[nickname]"))
	assert.Equal(t, "30.2614", query.Get("dropoff[latitude]"))
	assert.Equal(t, "-97.7392", query.Get("dropoff[longitude]"))
}

func TestBuildRideLinkOmitsCoordinatesWhenUnknown(t *testing.T) {
	link := BuildRideLink(Destination{Address: "812 Congress Ave, Austin, TX", Nickname: "Meeting"})

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Empty(t, parsed.Query().Get("dropoff[latitude]"))
	assert.Empty(t, parsed.Query().Get("dropoff[longitude]"))
}

func TestNormalizeRideLink(t *testing.T) {
	appLink := "uber://?action=setPickup&dropoff[nickname]=Office"
	assert.Equal(t, "https://m.uber.com/ul/?action=setPickup&dropoff[nickname]=Office", NormalizeRideLink(appLink))

	universal := "https://m.uber.com/ul/?action=setPickup"
	assert.Equal(t, universal, NormalizeRideLink(universal))

	other := "https://maps.example.com/route"
	assert.Equal(t, other, NormalizeRideLink(other))
}

func TestRideLinkForItemPrefersStoredLink(t *testing.T) {
	item := models.TravelItem{
		Type:     models.TravelHotel,
		Provider: "Fairmont Austin",
		Location: "Fairmont Austin",
		Links:    models.TravelLinks{Uber: "uber://?action=setPickup&dropoff[nickname]=Fairmont"},
	}

	assert.Equal(t, "https://m.uber.com/ul/?action=setPickup&dropoff[nickname]=Fairmont", RideLinkForItem(item, eventVenue))

	item.Links.Uber = ""
	inferred := RideLinkForItem(item, eventVenue)
	assert.Contains(t, inferred, "https://m.uber.com/ul/?")
	assert.Contains(t, inferred, url.QueryEscape("101 Red River St, Austin, TX 78701"))
}
