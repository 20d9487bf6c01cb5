package routes

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	pbtypes "github.com/pocketbase/pocketbase/tools/types"

	"backend/copilot"
	"backend/models"
)

type chatRequest struct {
	Message      string `json:"message"`
	ContextScope string `json:"context_scope"`
	AttendeeID   string `json:"attendeeId"`
	// Legacy snake_case alias still sent by older clients.
	AttendeeIDAlt string `json:"attendee_id"`
}

func (r chatRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.Length(2, 0)),
		validation.Field(&r.ContextScope, validation.In("travel", "agenda", "speakers", "briefing", "all")),
	)
}

func CopilotChat(e *core.RequestEvent) error {
	var req chatRequest
	if err := e.BindBody(&req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": "validation failed", "details": err})
	}

	scope := copilot.Scope(req.ContextScope)
	if scope == "" {
		scope = copilot.ScopeAll
	}

	requested := req.AttendeeID
	if requested == "" {
		requested = req.AttendeeIDAlt
	}

	attendeeID, err := effectiveAttendeeID(e, requested)
	if err != nil {
		return e.InternalServerError("Unable to resolve attendee", err)
	}
	if attendeeID == "" {
		return e.JSON(http.StatusOK, copilot.Response{
			Answer:     "I could not determine which attendee profile to use. Pick an attendee from the directory and try again.",
			Confidence: models.ConfidenceLow,
			Sources:    []copilot.Source{},
			SuggestedActions: []copilot.Action{
				{ID: "select-attendee", Text: "Select an attendee filter and ask again", Action: "select_attendee"},
			},
		})
	}

	event := eventFromContext(e)

	travel, err := loadTravelForAttendee(e.App, event.Id, attendeeID)
	if err != nil {
		e.App.Logger().Error("copilot chat: load travel failed", "error", err, "eventId", event.Id)
		return e.InternalServerError("Unable to load travel items", err)
	}
	agenda, err := loadAgenda(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load agenda", err)
	}
	speakers, err := loadSpeakers(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load speakers", err)
	}
	brief, err := loadApprovedBrief(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load briefing", err)
	}

	return e.JSON(http.StatusOK, copilot.Respond(copilot.Request{
		Message:  req.Message,
		Scope:    scope,
		Travel:   travel,
		Agenda:   agenda,
		Speakers: speakers,
		Brief:    brief,
		Now:      time.Now().UTC(),
	}))
}

func ListNudges(e *core.RequestEvent) error {
	event := eventFromContext(e)
	attendee := attendeeFromContext(e)

	attendeeID := ""
	if e.Auth.GetString("role") == RoleTraveler && attendee != nil {
		attendeeID = attendee.Id
	}

	nudges, err := loadNudges(e.App, event.Id, attendeeID)
	if err != nil {
		return e.InternalServerError("Unable to load nudges", err)
	}
	return e.JSON(http.StatusOK, map[string]any{"nudges": nudges})
}

type nudgeUpdateRequest struct {
	Status string `json:"status"`
}

func (r nudgeUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.In("approved", "snoozed", "disabled")),
	)
}

func UpdateNudge(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	var req nudgeUpdateRequest
	if err := e.BindBody(&req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": "validation failed", "details": err})
	}

	event := eventFromContext(e)
	record, err := findScopedRecord(e.App, "copilot_nudges", e.Request.PathValue("nudgeId"), event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load nudge", err)
	}
	if record == nil {
		return e.NotFoundError("Nudge not found", nil)
	}

	record.Set("status", req.Status)
	if err := e.App.Save(record); err != nil {
		return e.InternalServerError("Unable to update nudge", err)
	}

	if err := insertAudit(e.App, "nudge_updated", e.Auth.Id, map[string]any{"nudgeId": record.Id, "status": req.Status}); err != nil {
		return e.InternalServerError("Unable to record audit entry", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"nudge": models.NudgeFromRecord(record)})
}

// EvaluateNudges runs the nudge rules for every opted-in attendee and
// persists candidates that are not already present under the dedup key
// (event, attendee, sourceRule, scheduledAt). Two concurrent evaluations can
// race past the lookup; the unique index on the collection is the backstop.
func EvaluateNudges(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	event := eventFromContext(e)
	runID := uuid.NewString()

	attendees, err := loadAttendees(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load attendees", err)
	}
	agenda, err := loadAgenda(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load agenda", err)
	}

	created, err := evaluateAndPersistNudges(e.App, event.Id, attendees, agenda)
	if err != nil {
		return e.InternalServerError("Unable to evaluate nudges", err)
	}

	if err := insertAudit(e.App, "nudges_evaluated", e.Auth.Id, map[string]any{
		"eventId":        event.Id,
		"generatedCount": len(created),
		"runId":          runID,
	}); err != nil {
		return e.InternalServerError("Unable to record audit entry", err)
	}

	e.App.Logger().Info("nudge evaluation completed", "eventId", event.Id, "runId", runID, "generated", len(created))
	return e.JSON(http.StatusOK, map[string]any{"nudges": created})
}

// evaluateAndPersistNudges runs the rules for every opted-in attendee and
// persists the candidates. Re-running with identical input returns the
// already-persisted nudges instead of duplicating them.
func evaluateAndPersistNudges(app core.App, eventID string, attendees []models.Attendee, agenda []models.AgendaItem) ([]models.CopilotNudge, error) {
	collection, err := app.FindCollectionByNameOrId("copilot_nudges")
	if err != nil {
		return nil, err
	}

	created := make([]models.CopilotNudge, 0)
	for _, attendee := range attendees {
		if !attendee.ReceiveNudges {
			continue
		}

		travel, err := loadTravelForAttendee(app, eventID, attendee.ID)
		if err != nil {
			return nil, err
		}

		for _, candidate := range copilot.EvaluateNudges(agenda, travel) {
			existing, err := findNudgeByRule(app, eventID, attendee.ID, candidate.SourceRule, candidate.ScheduledAt)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				created = append(created, *existing)
				continue
			}

			record := core.NewRecord(collection)
			record.Set("event", eventID)
			record.Set("attendee", attendee.ID)
			record.Set("title", candidate.Title)
			record.Set("body", candidate.Body)
			record.Set("scheduledAt", candidate.ScheduledAt)
			record.Set("sourceRule", candidate.SourceRule)
			record.Set("status", string(models.NudgeStatusPending))
			record.Set("confidence", string(candidate.Confidence))
			record.Set("requiresAdminApproval", true)

			if err := app.Save(record); err != nil {
				return nil, err
			}
			created = append(created, models.NudgeFromRecord(record))
		}
	}

	return created, nil
}

func findNudgeByRule(app core.App, eventID, attendeeID, sourceRule string, scheduledAt time.Time) (*models.CopilotNudge, error) {
	dt, err := pbtypes.ParseDateTime(scheduledAt)
	if err != nil {
		return nil, err
	}

	records, err := app.FindAllRecords("copilot_nudges", dbx.HashExp{
		"event":       eventID,
		"attendee":    attendeeID,
		"sourceRule":  sourceRule,
		"scheduledAt": dt.String(),
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	nudge := models.NudgeFromRecord(records[0])
	return &nudge, nil
}
