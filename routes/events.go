package routes

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"

	"backend/models"
)

type eventCreateRequest struct {
	Title    string    `json:"title"`
	City     string    `json:"city"`
	Venue    string    `json:"venue"`
	Timezone string    `json:"timezone"`
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
}

func (r eventCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(3, 0)),
		validation.Field(&r.City, validation.Required, validation.Length(2, 0)),
		validation.Field(&r.Venue, validation.Required, validation.Length(3, 0)),
		validation.Field(&r.Timezone, validation.Required, validation.Length(2, 0)),
		validation.Field(&r.StartAt, validation.Required),
		validation.Field(&r.EndAt, validation.Required),
	)
}

func CreateEvent(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	var req eventCreateRequest
	if err := e.BindBody(&req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": "validation failed", "details": err})
	}
	if !req.EndAt.After(req.StartAt) {
		return e.BadRequestError("Event end must be after its start", nil)
	}

	collection, err := e.App.FindCollectionByNameOrId("events")
	if err != nil {
		return e.InternalServerError("Event collection unavailable", err)
	}

	record := core.NewRecord(collection)
	record.Set("title", req.Title)
	record.Set("city", req.City)
	record.Set("venue", req.Venue)
	record.Set("timezone", req.Timezone)
	record.Set("startAt", req.StartAt.UTC())
	record.Set("endAt", req.EndAt.UTC())

	if err := e.App.Save(record); err != nil {
		return e.InternalServerError("Unable to create event", err)
	}

	if err := insertAudit(e.App, "event_created", e.Auth.Id, map[string]any{"eventId": record.Id}); err != nil {
		return e.InternalServerError("Unable to record audit entry", err)
	}

	return e.JSON(http.StatusCreated, map[string]any{"event": models.EventFromRecord(record)})
}
