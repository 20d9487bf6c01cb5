package routes

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"github.com/samber/lo"

	"backend/destinations"
	"backend/models"
)

type travelView struct {
	models.TravelItem
	Dropoff  destinations.Destination `json:"dropoff"`
	RideLink string                   `json:"rideLink"`
}

// ListTravel returns the attendee's travel segments, each annotated with the
// resolved drop-off destination and ride link so every display surface shares
// one resolver.
func ListTravel(e *core.RequestEvent) error {
	event := eventFromContext(e)

	attendeeID, err := effectiveAttendeeID(e, e.Request.URL.Query().Get("attendeeId"))
	if err != nil {
		return e.InternalServerError("Unable to resolve attendee", err)
	}

	var items []models.TravelItem
	switch {
	case attendeeID != "":
		items, err = loadTravelForAttendee(e.App, event.Id, attendeeID)
	case e.Auth.GetString("role") == RoleTraveler:
		items = []models.TravelItem{}
	default:
		items, err = loadTravelForEvent(e.App, event.Id)
	}
	if err != nil {
		return e.InternalServerError("Unable to load travel items", err)
	}

	venue := event.GetString("venue")
	views := lo.Map(items, func(item models.TravelItem, _ int) travelView {
		return travelView{
			TravelItem: item,
			Dropoff:    destinations.ResolveDestination(item, venue),
			RideLink:   destinations.RideLinkForItem(item, venue),
		}
	})

	return e.JSON(http.StatusOK, map[string]any{"travel": views})
}

type travelUpdateRequest struct {
	Notes            *string `json:"notes"`
	ConfirmationCode *string `json:"confirmationCode"`
	Location         *string `json:"location"`
}

func (r travelUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Location, validation.Length(2, 0)),
	)
}

func UpdateTravelItem(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	var req travelUpdateRequest
	if err := e.BindBody(&req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": "validation failed", "details": err})
	}

	event := eventFromContext(e)
	record, err := findScopedRecord(e.App, "travel_items", e.Request.PathValue("itemId"), event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load travel item", err)
	}
	if record == nil {
		return e.NotFoundError("Travel item not found", nil)
	}

	if req.Notes != nil {
		record.Set("notes", *req.Notes)
	}
	if req.ConfirmationCode != nil {
		record.Set("confirmationCode", *req.ConfirmationCode)
	}
	if req.Location != nil {
		record.Set("location", *req.Location)
	}

	if err := e.App.Save(record); err != nil {
		return e.InternalServerError("Unable to update travel item", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"travelItem": models.TravelItemFromRecord(record)})
}
