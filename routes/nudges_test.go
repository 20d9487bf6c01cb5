package routes

import (
	"testing"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/copilot"
	_ "backend/migrations"
	"backend/models"
)

var sessionStart = time.Date(2026, 3, 12, 15, 0, 0, 0, time.UTC)

func newConciergeTestApp(t *testing.T) *tests.TestApp {
	t.Helper()

	app, err := tests.NewTestApp()
	require.NoError(t, err)
	t.Cleanup(app.Cleanup)

	return app
}

func createTestUser(t *testing.T, app core.App, email, role string) *core.Record {
	t.Helper()

	users, err := app.FindCollectionByNameOrId("users")
	require.NoError(t, err)

	user := core.NewRecord(users)
	user.Set("email", email)
	user.Set("password", "Str0ngEnough!")
	user.Set("role", role)
	require.NoError(t, app.Save(user))

	return user
}

func createTestEvent(t *testing.T, app core.App) *core.Record {
	t.Helper()

	events, err := app.FindCollectionByNameOrId("events")
	require.NoError(t, err)

	event := core.NewRecord(events)
	event.Set("title", "Leadership Summit")
	event.Set("city", "Austin")
	event.Set("venue", "500 E Cesar Chavez St, Austin, TX 78701")
	event.Set("timezone", "America/Chicago")
	event.Set("startAt", sessionStart.Add(-6*time.Hour))
	event.Set("endAt", sessionStart.Add(6*time.Hour))
	require.NoError(t, app.Save(event))

	return event
}

func createTestAttendee(t *testing.T, app core.App, eventID, userID string, receiveNudges bool) *core.Record {
	t.Helper()

	attendees, err := app.FindCollectionByNameOrId("attendees")
	require.NoError(t, err)

	attendee := core.NewRecord(attendees)
	attendee.Set("event", eventID)
	attendee.Set("user", userID)
	attendee.Set("receiveNudges", receiveNudges)
	require.NoError(t, app.Save(attendee))

	return attendee
}

func createTestAgendaItem(t *testing.T, app core.App, eventID string) *core.Record {
	t.Helper()

	agenda, err := app.FindCollectionByNameOrId("agenda_items")
	require.NoError(t, err)

	session := core.NewRecord(agenda)
	session.Set("event", eventID)
	session.Set("title", "Opening Keynote")
	session.Set("location", "Main Hall")
	session.Set("startAt", sessionStart)
	session.Set("endAt", sessionStart.Add(time.Hour))
	require.NoError(t, app.Save(session))

	return session
}

func TestEvaluateAndPersistNudgesIsIdempotent(t *testing.T) {
	app := newConciergeTestApp(t)

	user := createTestUser(t, app, "exec@example.com", "traveler")
	event := createTestEvent(t, app)
	createTestAttendee(t, app, event.Id, user.Id, true)
	createTestAgendaItem(t, app, event.Id)

	attendees, err := loadAttendees(app, event.Id)
	require.NoError(t, err)
	agenda, err := loadAgenda(app, event.Id)
	require.NoError(t, err)

	first, err := evaluateAndPersistNudges(app, event.Id, attendees, agenda)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, copilot.RuleSessionStartBuffer, first[0].SourceRule)
	assert.Equal(t, sessionStart.Add(-30*time.Minute), first[0].ScheduledAt)
	assert.Equal(t, models.NudgeStatusPending, first[0].Status)

	// Identical input against a store that already holds the nudge must echo
	// the existing record, not duplicate it.
	second, err := evaluateAndPersistNudges(app, event.Id, attendees, agenda)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)

	records, err := app.FindAllRecords("copilot_nudges", dbx.HashExp{"event": event.Id})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestEvaluateAndPersistNudgesSkipsOptedOutAttendees(t *testing.T) {
	app := newConciergeTestApp(t)

	user := createTestUser(t, app, "optout@example.com", "traveler")
	event := createTestEvent(t, app)
	createTestAttendee(t, app, event.Id, user.Id, false)
	createTestAgendaItem(t, app, event.Id)

	attendees, err := loadAttendees(app, event.Id)
	require.NoError(t, err)
	agenda, err := loadAgenda(app, event.Id)
	require.NoError(t, err)

	created, err := evaluateAndPersistNudges(app, event.Id, attendees, agenda)
	require.NoError(t, err)
	assert.Empty(t, created)

	records, err := app.FindAllRecords("copilot_nudges", dbx.HashExp{"event": event.Id})
	require.NoError(t, err)
	assert.Empty(t, records)
}
