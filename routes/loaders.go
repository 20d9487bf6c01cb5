package routes

import (
	"sort"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/samber/lo"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"backend/models"
)

func sortByDate(records []*core.Record, field string) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].GetDateTime(field).Time().Before(records[j].GetDateTime(field).Time())
	})
}

func loadTravelForAttendee(app core.App, eventID, attendeeID string) ([]models.TravelItem, error) {
	records, err := app.FindAllRecords("travel_items", dbx.HashExp{"event": eventID, "attendee": attendeeID})
	if err != nil {
		return nil, err
	}

	sortByDate(records, "startAt")
	return lo.Map(records, func(record *core.Record, _ int) models.TravelItem {
		return models.TravelItemFromRecord(record)
	}), nil
}

func loadTravelForEvent(app core.App, eventID string) ([]models.TravelItem, error) {
	records, err := app.FindAllRecords("travel_items", dbx.HashExp{"event": eventID})
	if err != nil {
		return nil, err
	}

	sortByDate(records, "startAt")
	return lo.Map(records, func(record *core.Record, _ int) models.TravelItem {
		return models.TravelItemFromRecord(record)
	}), nil
}

func loadAgenda(app core.App, eventID string) ([]models.AgendaItem, error) {
	records, err := app.FindAllRecords("agenda_items", dbx.HashExp{"event": eventID})
	if err != nil {
		return nil, err
	}

	sortByDate(records, "startAt")
	return lo.Map(records, func(record *core.Record, _ int) models.AgendaItem {
		return models.AgendaItemFromRecord(record)
	}), nil
}

func loadSpeakers(app core.App, eventID string) ([]models.Speaker, error) {
	records, err := app.FindAllRecords("speakers", dbx.HashExp{"event": eventID})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return speakerCollator.CompareString(records[i].GetString("name"), records[j].GetString("name")) < 0
	})
	return lo.Map(records, func(record *core.Record, _ int) models.Speaker {
		return models.SpeakerFromRecord(record)
	}), nil
}

// Directory names come from manual entry with inconsistent casing, so the
// speaker list is ordered with a case-insensitive collator rather than by byte
// value.
var speakerCollator = collate.New(language.English, collate.IgnoreCase)

// loadLatestBrief returns the highest-version brief for the event regardless
// of approval status, or nil when none exists.
func loadLatestBrief(app core.App, eventID string) (*models.ExecutiveBrief, error) {
	records, err := app.FindAllRecords("executive_briefs", dbx.HashExp{"event": eventID})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].GetInt("version") > records[j].GetInt("version")
	})
	brief := models.BriefFromRecord(records[0])
	return &brief, nil
}

// loadApprovedBrief is what consuming views use: an unapproved brief is
// treated the same as no brief at all.
func loadApprovedBrief(app core.App, eventID string) (*models.ExecutiveBrief, error) {
	brief, err := loadLatestBrief(app, eventID)
	if err != nil {
		return nil, err
	}
	if brief == nil || brief.Status != models.BriefStatusApproved {
		return nil, nil
	}
	return brief, nil
}

func loadNudges(app core.App, eventID, attendeeID string) ([]models.CopilotNudge, error) {
	filter := dbx.HashExp{"event": eventID}
	if attendeeID != "" {
		filter["attendee"] = attendeeID
	}

	records, err := app.FindAllRecords("copilot_nudges", filter)
	if err != nil {
		return nil, err
	}

	sortByDate(records, "scheduledAt")
	return lo.Map(records, func(record *core.Record, _ int) models.CopilotNudge {
		return models.NudgeFromRecord(record)
	}), nil
}

func loadAttendees(app core.App, eventID string) ([]models.Attendee, error) {
	records, err := app.FindAllRecords("attendees", dbx.HashExp{"event": eventID})
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(record *core.Record, _ int) models.Attendee {
		return models.AttendeeFromRecord(record)
	}), nil
}
