package routes

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"backend/destinations"
	"backend/models"
)

type actionLink struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type nextAction struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	When        time.Time    `json:"when"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Links       []actionLink `json:"links,omitempty"`
}

// Dashboard aggregates the attendee's next actions from travel, upcoming
// agenda, and pending nudges, merged on time and trimmed to the top two.
func Dashboard(e *core.RequestEvent) error {
	event := eventFromContext(e)

	attendeeID, err := effectiveAttendeeID(e, e.Request.URL.Query().Get("attendeeId"))
	if err != nil {
		return e.InternalServerError("Unable to resolve attendee", err)
	}

	var travelItems []models.TravelItem
	switch {
	case attendeeID != "":
		travelItems, err = loadTravelForAttendee(e.App, event.Id, attendeeID)
	case e.Auth.GetString("role") == RoleTraveler:
		travelItems = []models.TravelItem{}
	default:
		travelItems, err = loadTravelForEvent(e.App, event.Id)
	}
	if err != nil {
		return e.InternalServerError("Unable to load travel items", err)
	}

	agenda, err := loadAgenda(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load agenda", err)
	}

	nudges := []models.CopilotNudge{}
	if attendeeID != "" {
		nudges, err = loadNudges(e.App, event.Id, attendeeID)
		if err != nil {
			return e.InternalServerError("Unable to load nudges", err)
		}
	}

	now := time.Now().UTC()
	venue := event.GetString("venue")
	actions := make([]nextAction, 0)

	for _, item := range travelItems {
		if len(actions) >= 4 {
			break
		}
		description := item.Location
		if description == "" {
			description = "Travel segment"
		}
		if item.Notes != "" {
			description += " | " + item.Notes
		}
		actions = append(actions, nextAction{
			ID:          item.ID,
			Title:       strings.ToUpper(string(item.Type)) + " - " + item.Provider,
			When:        item.StartAt,
			Type:        "travel",
			Description: description,
			Links: []actionLink{
				{Label: "Open Uber", Href: destinations.RideLinkForItem(item, venue)},
			},
		})
	}

	upcoming := 0
	for _, session := range agenda {
		if !session.EndAt.After(now) {
			continue
		}
		actions = append(actions, nextAction{
			ID:          session.ID,
			Title:       session.Title,
			When:        session.StartAt,
			Type:        "agenda",
			Description: session.Location + " - " + session.Description,
		})
		upcoming++
		if upcoming >= 2 {
			break
		}
	}

	for i, nudge := range nudges {
		if i >= 2 {
			break
		}
		actions = append(actions, nextAction{
			ID:          nudge.ID,
			Title:       nudge.Title,
			When:        nudge.ScheduledAt,
			Type:        "nudge",
			Description: nudge.Body,
		})
	}

	sort.Slice(actions, func(i, j int) bool { return actions[i].When.Before(actions[j].When) })
	if len(actions) > 2 {
		actions = actions[:2]
	}

	return e.JSON(http.StatusOK, map[string]any{
		"event":          models.EventFromRecord(event),
		"user":           models.UserFromRecord(e.Auth),
		"nextActions":    actions,
		"travelItems":    travelItems,
		"upcomingAgenda": agenda,
		"nudges":         nudges,
	})
}
