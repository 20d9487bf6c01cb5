// Package routes exposes the concierge HTTP surface. Handlers stay thin:
// they validate input, load attendee-scoped snapshots, hand them to the pure
// rule packages, and persist or return the result.
package routes

import (
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/samber/lo"

	"backend/enrichment"
)

const (
	RoleTraveler  = "traveler"
	RoleAssistant = "assistant"
	RoleAdmin     = "admin"
)

// Register binds all concierge routes. The enrichment chain is constructed by
// the process entry point and passed down so handlers carry no hidden global
// state.
func Register(se *core.ServeEvent, profileEnrichment *enrichment.Chain) {
	se.Router.GET("/api/system/db-status", DBStatus)

	api := se.Router.Group("/api/concierge")
	api.Bind(apis.RequireAuth())
	api.POST("/events", CreateEvent)

	event := api.Group("/events/{eventId}")
	event.BindFunc(loadEventContext)

	event.GET("/dashboard", Dashboard)

	event.GET("/travel", ListTravel)
	event.PUT("/travel/{itemId}", UpdateTravelItem)

	event.GET("/agenda", ListAgenda)
	event.GET("/agenda/calendar.ics", ExportAgendaCalendar)
	event.PUT("/agenda/{itemId}", UpdateAgendaItem)

	event.GET("/speakers", ListSpeakers)
	event.PUT("/speakers/{speakerId}", UpdateSpeaker)

	event.GET("/briefing", GetBriefing)

	event.GET("/attendees", ListAttendees)
	event.POST("/attendees", CreateAttendee)

	event.POST("/copilot/chat", CopilotChat)
	event.GET("/copilot/nudges", ListNudges)
	event.PUT("/copilot/nudges/{nudgeId}", UpdateNudge)
	event.POST("/copilot/nudges/evaluate", EvaluateNudges)

	event.POST("/people/{personId}/enrich", enrichPersonHandler(profileEnrichment))
	event.GET("/people/{personId}/enrichment-draft", GetEnrichmentDraft)
	event.PUT("/people/{personId}/enrichment-approve", ApproveEnrichment)
}

// loadEventContext resolves the event and the caller's attendee row for every
// event-scoped route. Travelers without an attendee assignment are rejected;
// assistants and admins may operate without one.
func loadEventContext(e *core.RequestEvent) error {
	event, err := e.App.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return e.NotFoundError("Event not found", err)
	}
	e.Set("event", event)

	attendees, err := e.App.FindAllRecords("attendees", dbx.HashExp{"event": event.Id, "user": e.Auth.Id})
	if err != nil {
		return e.InternalServerError("Unable to load attendee context", err)
	}

	if len(attendees) > 0 {
		e.Set("attendee", attendees[0])
	} else if e.Auth.GetString("role") == RoleTraveler {
		return e.ForbiddenError("Traveler is not assigned to this event", nil)
	}

	return e.Next()
}

func eventFromContext(e *core.RequestEvent) *core.Record {
	record, _ := e.Get("event").(*core.Record)
	return record
}

func attendeeFromContext(e *core.RequestEvent) *core.Record {
	record, _ := e.Get("attendee").(*core.Record)
	return record
}

func requireRole(e *core.RequestEvent, roles ...string) error {
	if lo.Contains(roles, e.Auth.GetString("role")) {
		return nil
	}
	return e.ForbiddenError("Insufficient permissions", nil)
}

// effectiveAttendeeID picks whose records a request operates on: travelers
// always act as themselves, assistants and admins may act for a requested
// attendee as long as it belongs to the event.
func effectiveAttendeeID(e *core.RequestEvent, requested string) (string, error) {
	attendee := attendeeFromContext(e)

	if e.Auth.GetString("role") == RoleTraveler {
		if attendee != nil {
			return attendee.Id, nil
		}
		return "", nil
	}

	if requested != "" {
		records, err := e.App.FindAllRecords("attendees", dbx.HashExp{"id": requested, "event": eventFromContext(e).Id})
		if err != nil {
			return "", err
		}
		if len(records) > 0 {
			return requested, nil
		}
		return "", nil
	}

	if attendee != nil {
		return attendee.Id, nil
	}
	return "", nil
}

// findScopedRecord loads a record only when it belongs to the given event.
func findScopedRecord(app core.App, collection, id, eventID string) (*core.Record, error) {
	records, err := app.FindAllRecords(collection, dbx.HashExp{"id": id, "event": eventID})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

func insertAudit(app core.App, action, actorID string, metadata map[string]any) error {
	collection, err := app.FindCollectionByNameOrId("audit_log")
	if err != nil {
		return err
	}

	record := core.NewRecord(collection)
	record.Set("actor", actorID)
	record.Set("action", action)
	record.Set("metadata", metadata)
	return app.Save(record)
}
