package routes

import (
	"fmt"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"

	"backend/models"
)

func ListAgenda(e *core.RequestEvent) error {
	agenda, err := loadAgenda(e.App, eventFromContext(e).Id)
	if err != nil {
		return e.InternalServerError("Unable to load agenda", err)
	}
	return e.JSON(http.StatusOK, map[string]any{"agenda": agenda})
}

type agendaUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

func (r agendaUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(2, 0)),
		validation.Field(&r.Description, validation.Length(2, 0)),
		validation.Field(&r.Location, validation.Length(2, 0)),
	)
}

func UpdateAgendaItem(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	var req agendaUpdateRequest
	if err := e.BindBody(&req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": "validation failed", "details": err})
	}

	event := eventFromContext(e)
	record, err := findScopedRecord(e.App, "agenda_items", e.Request.PathValue("itemId"), event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load agenda item", err)
	}
	if record == nil {
		return e.NotFoundError("Agenda item not found", nil)
	}

	if req.Title != nil {
		record.Set("title", *req.Title)
	}
	if req.Description != nil {
		record.Set("description", *req.Description)
	}
	if req.Location != nil {
		record.Set("location", *req.Location)
	}

	if err := e.App.Save(record); err != nil {
		return e.InternalServerError("Unable to update agenda item", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"agendaItem": models.AgendaItemFromRecord(record)})
}

// ExportAgendaCalendar serves the event agenda as an ICS feed so sessions can
// be subscribed to from any calendar client.
func ExportAgendaCalendar(e *core.RequestEvent) error {
	event := eventFromContext(e)

	agenda, err := loadAgenda(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load agenda", err)
	}

	now := time.Now().UTC()
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Concierge//Event Agenda//EN")
	cal.SetName(event.GetString("title"))

	for _, session := range agenda {
		entry := cal.AddEvent(fmt.Sprintf("%s@%s", session.ID, event.Id))
		entry.SetDtStampTime(now)
		entry.SetStartAt(session.StartAt)
		entry.SetEndAt(session.EndAt)
		entry.SetSummary(session.Title)
		entry.SetLocation(session.Location)
		entry.SetDescription(session.Description)
	}

	e.Response.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	e.Response.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	return e.String(http.StatusOK, cal.Serialize())
}
