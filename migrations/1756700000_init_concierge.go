package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		users.Fields.Add(&core.SelectField{
			Name:      "role",
			Values:    []string{"traveler", "assistant", "admin"},
			MaxSelect: 1,
			Required:  true,
		})
		if err := app.Save(users); err != nil {
			return err
		}

		events := core.NewBaseCollection("events")
		events.Fields.Add(
			&core.TextField{Name: "title", Required: true, Min: 3},
			&core.TextField{Name: "city", Required: true, Min: 2},
			&core.TextField{Name: "venue", Required: true, Min: 3},
			&core.TextField{Name: "timezone", Required: true, Min: 2},
			&core.DateField{Name: "startAt", Required: true},
			&core.DateField{Name: "endAt", Required: true},
			&core.AutodateField{Name: "created", OnCreate: true},
			&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true},
		)
		if err := app.Save(events); err != nil {
			return err
		}

		attendees := core.NewBaseCollection("attendees")
		attendees.Fields.Add(
			&core.RelationField{Name: "event", CollectionId: events.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.RelationField{Name: "user", CollectionId: users.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.BoolField{Name: "executiveFlag"},
			&core.BoolField{Name: "receiveNudges"},
		)
		attendees.AddIndex("idx_attendees_event_user", true, "event, user", "")
		if err := app.Save(attendees); err != nil {
			return err
		}

		travelItems := core.NewBaseCollection("travel_items")
		travelItems.Fields.Add(
			&core.RelationField{Name: "event", CollectionId: events.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.RelationField{Name: "attendee", CollectionId: attendees.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.SelectField{Name: "type", Values: []string{"flight", "hotel", "car", "other"}, MaxSelect: 1, Required: true},
			&core.TextField{Name: "provider", Required: true},
			&core.DateField{Name: "startAt", Required: true},
			&core.DateField{Name: "endAt"},
			&core.TextField{Name: "confirmationCode"},
			&core.TextField{Name: "location"},
			&core.TextField{Name: "notes"},
			&core.JSONField{Name: "links", MaxSize: 2000},
		)
		if err := app.Save(travelItems); err != nil {
			return err
		}

		agendaItems := core.NewBaseCollection("agenda_items")
		agendaItems.Fields.Add(
			&core.RelationField{Name: "event", CollectionId: events.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.TextField{Name: "title", Required: true, Min: 2},
			&core.TextField{Name: "location"},
			&core.DateField{Name: "startAt", Required: true},
			&core.DateField{Name: "endAt", Required: true},
			&core.TextField{Name: "description"},
			&core.JSONField{Name: "speakerIds", MaxSize: 2000},
		)
		if err := app.Save(agendaItems); err != nil {
			return err
		}

		speakers := core.NewBaseCollection("speakers")
		speakers.Fields.Add(
			&core.RelationField{Name: "event", CollectionId: events.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.TextField{Name: "name", Required: true, Min: 2},
			&core.TextField{Name: "title"},
			&core.TextField{Name: "organization"},
			&core.TextField{Name: "bio", Max: 4000},
			&core.URLField{Name: "headshotUrl"},
			&core.URLField{Name: "linkedinUrl"},
		)
		if err := app.Save(speakers); err != nil {
			return err
		}

		briefs := core.NewBaseCollection("executive_briefs")
		briefs.Fields.Add(
			&core.RelationField{Name: "event", CollectionId: events.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.NumberField{Name: "version", Required: true, OnlyInt: true},
			&core.TextField{Name: "summary", Max: 4000},
			&core.JSONField{Name: "speakerSynopsis", MaxSize: 8000},
			&core.TextField{Name: "meetingFocus", Max: 2000},
			&core.JSONField{Name: "watchouts", MaxSize: 4000},
			&core.JSONField{Name: "suggestedQuestions", MaxSize: 4000},
			&core.DateField{Name: "generatedAt", Required: true},
			&core.DateField{Name: "approvedAt"},
			&core.RelationField{Name: "approvedBy", CollectionId: users.Id, MaxSelect: 1},
			&core.SelectField{Name: "status", Values: []string{"draft", "approved"}, MaxSelect: 1, Required: true},
		)
		briefs.AddIndex("idx_briefs_event_version", true, "event, version", "")
		if err := app.Save(briefs); err != nil {
			return err
		}

		nudges := core.NewBaseCollection("copilot_nudges")
		nudges.Fields.Add(
			&core.RelationField{Name: "event", CollectionId: events.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.RelationField{Name: "attendee", CollectionId: attendees.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.TextField{Name: "title", Required: true},
			&core.TextField{Name: "body", Required: true, Max: 2000},
			&core.DateField{Name: "scheduledAt", Required: true},
			&core.TextField{Name: "sourceRule", Required: true},
			&core.SelectField{Name: "status", Values: []string{"pending", "approved", "snoozed", "disabled", "sent"}, MaxSelect: 1, Required: true},
			&core.SelectField{Name: "confidence", Values: []string{"high", "medium", "low"}, MaxSelect: 1, Required: true},
			&core.BoolField{Name: "requiresAdminApproval"},
		)
		// Dedup key for rule evaluation. Re-running an evaluation must not
		// duplicate a nudge for the same attendee, rule, and slot.
		nudges.AddIndex("idx_nudges_dedup", true, "event, attendee, sourceRule, scheduledAt", "")
		if err := app.Save(nudges); err != nil {
			return err
		}

		profiles := core.NewBaseCollection("person_profiles")
		profiles.Fields.Add(
			&core.RelationField{Name: "event", CollectionId: events.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.SelectField{Name: "personType", Values: []string{"speaker", "invitee"}, MaxSelect: 1, Required: true},
			&core.TextField{Name: "name", Required: true, Min: 2},
			&core.TextField{Name: "email"},
			&core.TextField{Name: "organization"},
			&core.TextField{Name: "roleTitle"},
			&core.JSONField{Name: "highlights", MaxSize: 4000},
			&core.BoolField{Name: "sourceApproved"},
			&core.AutodateField{Name: "updatedAt", OnCreate: true, OnUpdate: true},
		)
		if err := app.Save(profiles); err != nil {
			return err
		}

		drafts := core.NewBaseCollection("profile_enrichment_drafts")
		drafts.Fields.Add(
			&core.RelationField{Name: "event", CollectionId: events.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.RelationField{Name: "person", CollectionId: profiles.Id, MaxSelect: 1, Required: true, CascadeDelete: true},
			&core.TextField{Name: "provider", Required: true},
			&core.NumberField{Name: "matchConfidence"},
			&core.SelectField{Name: "status", Values: []string{"draft", "approved", "rejected"}, MaxSelect: 1, Required: true},
			&core.JSONField{Name: "conflictFlags", MaxSize: 2000},
			&core.JSONField{Name: "fields", MaxSize: 16000},
			&core.DateField{Name: "generatedAt", Required: true},
			&core.DateField{Name: "approvedAt"},
			&core.RelationField{Name: "approvedBy", CollectionId: users.Id, MaxSelect: 1},
		)
		if err := app.Save(drafts); err != nil {
			return err
		}

		audit := core.NewBaseCollection("audit_log")
		audit.Fields.Add(
			&core.RelationField{Name: "actor", CollectionId: users.Id, MaxSelect: 1},
			&core.TextField{Name: "action", Required: true},
			&core.JSONField{Name: "metadata", MaxSize: 4000},
			&core.AutodateField{Name: "created", OnCreate: true},
		)
		return app.Save(audit)
	}, func(app core.App) error {
		names := []string{
			"audit_log",
			"profile_enrichment_drafts",
			"person_profiles",
			"copilot_nudges",
			"executive_briefs",
			"speakers",
			"agenda_items",
			"travel_items",
			"attendees",
			"events",
		}
		for _, name := range names {
			collection, err := app.FindCollectionByNameOrId(name)
			if err != nil {
				continue
			}
			if err := app.Delete(collection); err != nil {
				return err
			}
		}

		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}
		users.Fields.RemoveByName("role")
		return app.Save(users)
	})
}
