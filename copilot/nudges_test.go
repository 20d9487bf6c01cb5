package copilot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/models"
)

func TestEvaluateNudgesSchedulesThirtyMinutesBeforeStart(t *testing.T) {
	start := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	agenda := []models.AgendaItem{{
		ID: "agenda-1", Title: "Opening Keynote", Location: "Main Hall",
		StartAt: start, EndAt: start.Add(time.Hour),
	}}

	candidates := EvaluateNudges(agenda, nil)

	require.Len(t, candidates, 1)
	assert.Equal(t, time.Date(2026, 3, 12, 14, 30, 0, 0, time.UTC), candidates[0].ScheduledAt)
	assert.Equal(t, RuleSessionStartBuffer, candidates[0].SourceRule)
	assert.Equal(t, "Leave for Opening Keynote", candidates[0].Title)
}

func TestEvaluateNudgesUsesHotelAsDepartureAnchor(t *testing.T) {
	start := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	agenda := []models.AgendaItem{{ID: "agenda-1", Title: "Keynote", Location: "Main Hall", StartAt: start, EndAt: start.Add(time.Hour)}}
	travel := []models.TravelItem{{ID: "travel-1", Type: models.TravelHotel, Provider: "Fairmont Austin"}}

	candidates := EvaluateNudges(agenda, travel)

	require.Len(t, candidates, 1)
	assert.Equal(t, models.ConfidenceHigh, candidates[0].Confidence)
	assert.Equal(t, "Plan to depart Fairmont Austin 30 minutes before start for Main Hall.", candidates[0].Body)
}

func TestEvaluateNudgesWithoutHotelIsMediumConfidence(t *testing.T) {
	start := time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)
	agenda := []models.AgendaItem{{ID: "agenda-1", Title: "Keynote", Location: "Main Hall", StartAt: start, EndAt: start.Add(time.Hour)}}
	travel := []models.TravelItem{{ID: "travel-1", Type: models.TravelFlight, Provider: "United"}}

	candidates := EvaluateNudges(agenda, travel)

	require.Len(t, candidates, 1)
	assert.Equal(t, models.ConfidenceMedium, candidates[0].Confidence)
	assert.Equal(t, "Prepare to arrive 10 minutes early at Main Hall.", candidates[0].Body)
}

func TestEvaluateNudgesEmitsOneCandidatePerSession(t *testing.T) {
	start := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	agenda := []models.AgendaItem{
		{ID: "a1", Title: "Breakfast Roundtable", Location: "Terrace", StartAt: start, EndAt: start.Add(time.Hour)},
		{ID: "a2", Title: "Board Session", Location: "Suite 4", StartAt: start.Add(3 * time.Hour), EndAt: start.Add(4 * time.Hour)},
	}

	candidates := EvaluateNudges(agenda, nil)

	require.Len(t, candidates, 2)
	assert.Equal(t, "Leave for Breakfast Roundtable", candidates[0].Title)
	assert.Equal(t, "Leave for Board Session", candidates[1].Title)
	for _, candidate := range candidates {
		assert.Equal(t, RuleSessionStartBuffer, candidate.SourceRule)
	}
}
