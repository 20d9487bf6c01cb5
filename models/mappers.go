package models

import (
	"net/url"
	"time"

	"github.com/pocketbase/pocketbase/core"
	pbtypes "github.com/pocketbase/pocketbase/tools/types"
)

func utcTime(dt pbtypes.DateTime) time.Time {
	return dt.Time().UTC()
}

func optionalTime(dt pbtypes.DateTime) *time.Time {
	if dt.IsZero() {
		return nil
	}
	t := dt.Time().UTC()
	return &t
}

func UserFromRecord(record *core.Record) User {
	return User{
		ID:    record.Id,
		Name:  record.GetString("name"),
		Email: record.GetString("email"),
		Role:  Role(record.GetString("role")),
	}
}

func EventFromRecord(record *core.Record) Event {
	return Event{
		ID:       record.Id,
		Title:    record.GetString("title"),
		City:     record.GetString("city"),
		Venue:    record.GetString("venue"),
		Timezone: record.GetString("timezone"),
		StartAt:  utcTime(record.GetDateTime("startAt")),
		EndAt:    utcTime(record.GetDateTime("endAt")),
	}
}

func AttendeeFromRecord(record *core.Record) Attendee {
	return Attendee{
		ID:            record.Id,
		EventID:       record.GetString("event"),
		UserID:        record.GetString("user"),
		ExecutiveFlag: record.GetBool("executiveFlag"),
		ReceiveNudges: record.GetBool("receiveNudges"),
	}
}

func TravelItemFromRecord(record *core.Record) TravelItem {
	var links TravelLinks
	_ = record.UnmarshalJSONField("links", &links)

	return TravelItem{
		ID:               record.Id,
		AttendeeID:       record.GetString("attendee"),
		EventID:          record.GetString("event"),
		Type:             TravelType(record.GetString("type")),
		Provider:         record.GetString("provider"),
		StartAt:          utcTime(record.GetDateTime("startAt")),
		EndAt:            optionalTime(record.GetDateTime("endAt")),
		ConfirmationCode: record.GetString("confirmationCode"),
		Location:         record.GetString("location"),
		Notes:            record.GetString("notes"),
		Links:            links,
	}
}

func AgendaItemFromRecord(record *core.Record) AgendaItem {
	speakerIDs := []string{}
	_ = record.UnmarshalJSONField("speakerIds", &speakerIDs)

	return AgendaItem{
		ID:          record.Id,
		EventID:     record.GetString("event"),
		Title:       record.GetString("title"),
		Location:    record.GetString("location"),
		StartAt:     utcTime(record.GetDateTime("startAt")),
		EndAt:       utcTime(record.GetDateTime("endAt")),
		Description: record.GetString("description"),
		SpeakerIDs:  speakerIDs,
	}
}

func SpeakerFromRecord(record *core.Record) Speaker {
	speaker := Speaker{
		ID:          record.Id,
		EventID:     record.GetString("event"),
		Name:        record.GetString("name"),
		Title:       record.GetString("title"),
		Org:         record.GetString("organization"),
		Bio:         record.GetString("bio"),
		HeadshotURL: record.GetString("headshotUrl"),
		LinkedinURL: record.GetString("linkedinUrl"),
	}

	if speaker.LinkedinURL == "" {
		speaker.LinkedinURL = profileSearchURL(speaker.Name, speaker.Org)
	}

	return speaker
}

// profileSearchURL is the fallback when no profile link was entered by an admin.
func profileSearchURL(name, org string) string {
	keywords := name
	if org != "" {
		keywords += " " + org
	}
	return "https://www.linkedin.com/search/results/all/?keywords=" + url.QueryEscape(keywords)
}

func BriefFromRecord(record *core.Record) ExecutiveBrief {
	synopsis := []string{}
	watchouts := []string{}
	questions := []string{}
	_ = record.UnmarshalJSONField("speakerSynopsis", &synopsis)
	_ = record.UnmarshalJSONField("watchouts", &watchouts)
	_ = record.UnmarshalJSONField("suggestedQuestions", &questions)

	return ExecutiveBrief{
		EventID:            record.GetString("event"),
		Version:            record.GetInt("version"),
		Summary:            record.GetString("summary"),
		SpeakerSynopsis:    synopsis,
		MeetingFocus:       record.GetString("meetingFocus"),
		Watchouts:          watchouts,
		SuggestedQuestions: questions,
		GeneratedAt:        utcTime(record.GetDateTime("generatedAt")),
		ApprovedAt:         optionalTime(record.GetDateTime("approvedAt")),
		ApprovedBy:         record.GetString("approvedBy"),
		Status:             BriefStatus(record.GetString("status")),
	}
}

func NudgeFromRecord(record *core.Record) CopilotNudge {
	return CopilotNudge{
		ID:                    record.Id,
		EventID:               record.GetString("event"),
		AttendeeID:            record.GetString("attendee"),
		Title:                 record.GetString("title"),
		Body:                  record.GetString("body"),
		ScheduledAt:           utcTime(record.GetDateTime("scheduledAt")),
		SourceRule:            record.GetString("sourceRule"),
		Status:                NudgeStatus(record.GetString("status")),
		Confidence:            Confidence(record.GetString("confidence")),
		RequiresAdminApproval: record.GetBool("requiresAdminApproval"),
	}
}

func ProfileFromRecord(record *core.Record) PersonProfile {
	highlights := []string{}
	_ = record.UnmarshalJSONField("highlights", &highlights)

	return PersonProfile{
		ID:             record.Id,
		EventID:        record.GetString("event"),
		PersonType:     PersonType(record.GetString("personType")),
		Name:           record.GetString("name"),
		Email:          record.GetString("email"),
		Organization:   record.GetString("organization"),
		RoleTitle:      record.GetString("roleTitle"),
		Highlights:     highlights,
		SourceApproved: record.GetBool("sourceApproved"),
		UpdatedAt:      utcTime(record.GetDateTime("updatedAt")),
	}
}

func DraftFromRecord(record *core.Record) EnrichmentDraft {
	conflictFlags := []string{}
	fields := []ProvenanceField{}
	_ = record.UnmarshalJSONField("conflictFlags", &conflictFlags)
	_ = record.UnmarshalJSONField("fields", &fields)

	return EnrichmentDraft{
		ID:              record.Id,
		EventID:         record.GetString("event"),
		PersonID:        record.GetString("person"),
		Provider:        record.GetString("provider"),
		MatchConfidence: record.GetFloat("matchConfidence"),
		Status:          DraftStatus(record.GetString("status")),
		ConflictFlags:   conflictFlags,
		Fields:          fields,
		GeneratedAt:     utcTime(record.GetDateTime("generatedAt")),
		ApprovedAt:      optionalTime(record.GetDateTime("approvedAt")),
		ApprovedBy:      record.GetString("approvedBy"),
	}
}
