package routes

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"

	"backend/models"
)

func ListSpeakers(e *core.RequestEvent) error {
	speakers, err := loadSpeakers(e.App, eventFromContext(e).Id)
	if err != nil {
		return e.InternalServerError("Unable to load speakers", err)
	}
	return e.JSON(http.StatusOK, map[string]any{"speakers": speakers})
}

type speakerUpdateRequest struct {
	Title       *string `json:"title"`
	Org         *string `json:"org"`
	Bio         *string `json:"bio"`
	LinkedinURL *string `json:"linkedinUrl"`
}

func (r speakerUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(2, 0)),
		validation.Field(&r.Org, validation.Length(2, 0)),
		validation.Field(&r.Bio, validation.Length(10, 0)),
		validation.Field(&r.LinkedinURL, validation.Length(10, 0)),
	)
}

func UpdateSpeaker(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	var req speakerUpdateRequest
	if err := e.BindBody(&req); err != nil {
		return e.BadRequestError("Invalid request body", err)
	}
	if err := req.Validate(); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{"error": "validation failed", "details": err})
	}

	event := eventFromContext(e)
	record, err := findScopedRecord(e.App, "speakers", e.Request.PathValue("speakerId"), event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load speaker", err)
	}
	if record == nil {
		return e.NotFoundError("Speaker not found", nil)
	}

	if req.Title != nil {
		record.Set("title", *req.Title)
	}
	if req.Org != nil {
		record.Set("organization", *req.Org)
	}
	if req.Bio != nil {
		record.Set("bio", *req.Bio)
	}
	if req.LinkedinURL != nil {
		record.Set("linkedinUrl", *req.LinkedinURL)
	}

	if err := e.App.Save(record); err != nil {
		return e.InternalServerError("Unable to update speaker", err)
	}

	return e.JSON(http.StatusOK, map[string]any{"speaker": models.SpeakerFromRecord(record)})
}
