package routes

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"github.com/samber/lo"

	"backend/models"
)

type attendeeView struct {
	models.Attendee
	User models.User `json:"user"`
}

// ListAttendees joins the attendee roster against user records so staff can
// pick an attendee filter by name rather than id.
func ListAttendees(e *core.RequestEvent) error {
	event := eventFromContext(e)

	attendees, err := loadAttendees(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load attendees", err)
	}

	userIDs := lo.Map(attendees, func(a models.Attendee, _ int) string { return a.UserID })
	userRecords, err := e.App.FindRecordsByIds("users", userIDs)
	if err != nil {
		return e.InternalServerError("Unable to load attendee users", err)
	}

	usersByID := map[string]models.User{}
	for _, record := range userRecords {
		usersByID[record.Id] = models.UserFromRecord(record)
	}

	views := lo.Map(attendees, func(a models.Attendee, _ int) attendeeView {
		return attendeeView{Attendee: a, User: usersByID[a.UserID]}
	})

	return e.JSON(http.StatusOK, map[string]any{"attendees": views})
}

type attendeeCreateRequest struct {
	UserID        string `json:"userId"`
	ExecutiveFlag bool   `json:"executiveFlag"`
}

func (r attendeeCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.UserID, validation.Required),
	)
}

func CreateAttendee(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	var req attendeeCreateRequest
	if err := e.BindBody(&req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": "validation failed", "details": err})
	}

	if _, err := e.App.FindRecordById("users", req.UserID); err != nil {
		return e.NotFoundError("User not found", err)
	}

	event := eventFromContext(e)
	collection, err := e.App.FindCollectionByNameOrId("attendees")
	if err != nil {
		return e.InternalServerError("Attendee collection unavailable", err)
	}

	record := core.NewRecord(collection)
	record.Set("event", event.Id)
	record.Set("user", req.UserID)
	record.Set("executiveFlag", req.ExecutiveFlag)
	record.Set("receiveNudges", true)

	if err := e.App.Save(record); err != nil {
		return e.InternalServerError("Unable to create attendee", err)
	}

	return e.JSON(http.StatusCreated, map[string]any{"attendee": models.AttendeeFromRecord(record)})
}
