package routes

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

var requiredCollections = []string{
	"users",
	"events",
	"attendees",
	"travel_items",
	"agenda_items",
	"speakers",
	"executive_briefs",
	"copilot_nudges",
	"person_profiles",
	"profile_enrichment_drafts",
	"audit_log",
}

// DBStatus reports whether every collection the app depends on exists. Used
// by deploy checks before traffic is routed.
func DBStatus(e *core.RequestEvent) error {
	missing := []string{}
	for _, name := range requiredCollections {
		if _, err := e.App.FindCollectionByNameOrId(name); err != nil {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return e.JSON(http.StatusServiceUnavailable, map[string]any{
			"connected": false,
			"message":   "Schema incomplete",
			"missing":   missing,
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"connected": true,
		"message":   "All collections available",
		"missing":   missing,
	})
}
