package copilot

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"backend/models"
)

// RuleSessionStartBuffer tags nudges generated from the fixed "leave 30
// minutes before session start" rule. The tag is part of the dedup key
// (event, attendee, sourceRule, scheduledAt), so new rule types can be added
// without touching existing persisted nudges.
const RuleSessionStartBuffer = "session_start_buffer"

const sessionStartLead = 30 * time.Minute

type NudgeCandidate struct {
	Title       string
	Body        string
	ScheduledAt time.Time
	SourceRule  string
	Confidence  models.Confidence
}

// EvaluateNudges derives one reminder candidate per agenda item, scheduled
// exactly 30 minutes before its start. Dedup against already-persisted nudges
// is the caller's responsibility.
func EvaluateNudges(agenda []models.AgendaItem, travel []models.TravelItem) []NudgeCandidate {
	hotel, hasHotel := lo.Find(travel, func(item models.TravelItem) bool { return item.Type == models.TravelHotel })

	candidates := make([]NudgeCandidate, 0, len(agenda))
	for _, session := range agenda {
		candidate := NudgeCandidate{
			Title:       fmt.Sprintf("Leave for %s", session.Title),
			ScheduledAt: session.StartAt.Add(-sessionStartLead),
			SourceRule:  RuleSessionStartBuffer,
		}

		if hasHotel {
			candidate.Body = fmt.Sprintf("Plan to depart %s 30 minutes before start for %s.", hotel.Provider, session.Location)
			candidate.Confidence = models.ConfidenceHigh
		} else {
			candidate.Body = fmt.Sprintf("Prepare to arrive 10 minutes early at %s.", session.Location)
			candidate.Confidence = models.ConfidenceMedium
		}

		candidates = append(candidates, candidate)
	}

	return candidates
}
