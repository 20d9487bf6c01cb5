package routes

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// GetBriefing returns the latest approved executive brief. Drafts are never
// served; an unapproved brief reads the same as no brief at all.
func GetBriefing(e *core.RequestEvent) error {
	event := eventFromContext(e)

	brief, err := loadApprovedBrief(e.App, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load briefing", err)
	}
	if brief == nil {
		return e.NotFoundError("Approved executive briefing not available", nil)
	}

	return e.JSON(http.StatusOK, map[string]any{"briefing": brief})
}
