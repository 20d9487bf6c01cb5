package routes

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"backend/enrichment"
	"backend/models"
)

// enrichPersonHandler runs the provider chain for a person profile and stores
// the merged result as a draft awaiting approval. The chain is injected so
// tests can swap providers.
func enrichPersonHandler(chain *enrichment.Chain) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
			return err
		}

		event := eventFromContext(e)
		record, err := findScopedRecord(e.App, "person_profiles", e.Request.PathValue("personId"), event.Id)
		if err != nil {
			return e.InternalServerError("Unable to load person profile", err)
		}
		if record == nil {
			return e.NotFoundError("Person profile not found", nil)
		}

		profile := models.ProfileFromRecord(record)
		draft, err := chain.Run(e.Request.Context(), profile)
		if err != nil {
			e.App.Logger().Error("profile enrichment failed", "error", err, "personId", profile.ID)
			return e.InternalServerError("Enrichment providers unavailable", err)
		}

		collection, err := e.App.FindCollectionByNameOrId("profile_enrichment_drafts")
		if err != nil {
			return e.InternalServerError("Draft collection unavailable", err)
		}

		draftRecord := core.NewRecord(collection)
		draftRecord.Set("event", event.Id)
		draftRecord.Set("person", profile.ID)
		draftRecord.Set("provider", draft.Provider)
		draftRecord.Set("matchConfidence", draft.MatchConfidence)
		draftRecord.Set("status", string(draft.Status))
		draftRecord.Set("conflictFlags", draft.ConflictFlags)
		draftRecord.Set("fields", draft.Fields)
		draftRecord.Set("generatedAt", draft.GeneratedAt)

		if err := e.App.Save(draftRecord); err != nil {
			return e.InternalServerError("Unable to persist enrichment draft", err)
		}

		if err := insertAudit(e.App, "profile_enriched", e.Auth.Id, map[string]any{
			"personId": profile.ID,
			"draftId":  draftRecord.Id,
			"provider": draft.Provider,
		}); err != nil {
			return e.InternalServerError("Unable to record audit entry", err)
		}

		return e.JSON(http.StatusOK, map[string]any{"draft": models.DraftFromRecord(draftRecord)})
	}
}

// GetEnrichmentDraft returns the most recent draft for a person, approved or
// not, so the review UI can show history.
func GetEnrichmentDraft(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	event := eventFromContext(e)
	records, err := e.App.FindAllRecords("profile_enrichment_drafts", dbx.HashExp{
		"event":  event.Id,
		"person": e.Request.PathValue("personId"),
	})
	if err != nil {
		return e.InternalServerError("Unable to load enrichment drafts", err)
	}
	if len(records) == 0 {
		return e.NotFoundError("No enrichment draft for this person", nil)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].GetDateTime("generatedAt").Time().After(records[j].GetDateTime("generatedAt").Time())
	})

	return e.JSON(http.StatusOK, map[string]any{"draft": models.DraftFromRecord(records[0])})
}

// ApproveEnrichment copies the latest draft's fields onto the person profile
// and marks both records. Only the approval path ever mutates profile data.
func ApproveEnrichment(e *core.RequestEvent) error {
	if err := requireRole(e, RoleAssistant, RoleAdmin); err != nil {
		return err
	}

	event := eventFromContext(e)
	personID := e.Request.PathValue("personId")

	profileRecord, err := findScopedRecord(e.App, "person_profiles", personID, event.Id)
	if err != nil {
		return e.InternalServerError("Unable to load person profile", err)
	}
	if profileRecord == nil {
		return e.NotFoundError("Person profile not found", nil)
	}

	draftRecords, err := e.App.FindAllRecords("profile_enrichment_drafts", dbx.HashExp{
		"event":  event.Id,
		"person": personID,
		"status": string(models.DraftStatusDraft),
	})
	if err != nil {
		return e.InternalServerError("Unable to load enrichment drafts", err)
	}
	if len(draftRecords) == 0 {
		return e.NotFoundError("No pending enrichment draft to approve", nil)
	}

	sort.Slice(draftRecords, func(i, j int) bool {
		return draftRecords[i].GetDateTime("generatedAt").Time().After(draftRecords[j].GetDateTime("generatedAt").Time())
	})
	draftRecord := draftRecords[0]
	draft := models.DraftFromRecord(draftRecord)

	for _, field := range draft.Fields {
		switch field.FieldName {
		case "organization":
			profileRecord.Set("organization", field.Value)
		case "roleTitle":
			profileRecord.Set("roleTitle", field.Value)
		case "highlights":
			profileRecord.Set("highlights", splitHighlights(field.Value))
		}
	}
	profileRecord.Set("sourceApproved", true)

	if err := e.App.Save(profileRecord); err != nil {
		return e.InternalServerError("Unable to update person profile", err)
	}

	draftRecord.Set("status", string(models.DraftStatusApproved))
	draftRecord.Set("approvedAt", time.Now().UTC())
	draftRecord.Set("approvedBy", e.Auth.Id)
	if err := e.App.Save(draftRecord); err != nil {
		return e.InternalServerError("Unable to update enrichment draft", err)
	}

	if err := insertAudit(e.App, "enrichment_approved", e.Auth.Id, map[string]any{
		"personId": personID,
		"draftId":  draftRecord.Id,
	}); err != nil {
		return e.InternalServerError("Unable to record audit entry", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"profile": models.ProfileFromRecord(profileRecord),
		"draft":   models.DraftFromRecord(draftRecord),
	})
}

func splitHighlights(joined string) []string {
	parts := strings.Split(joined, ";")
	highlights := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			highlights = append(highlights, trimmed)
		}
	}
	return highlights
}
