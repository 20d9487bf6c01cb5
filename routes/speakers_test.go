package routes

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSpeaker(t *testing.T, app core.App, eventID, name string) *core.Record {
	t.Helper()

	speakers, err := app.FindCollectionByNameOrId("speakers")
	require.NoError(t, err)

	speaker := core.NewRecord(speakers)
	speaker.Set("event", eventID)
	speaker.Set("name", name)
	require.NoError(t, app.Save(speaker))

	return speaker
}

func TestLoadSpeakersOrdersNamesCaseInsensitively(t *testing.T) {
	app := newConciergeTestApp(t)
	event := createTestEvent(t, app)

	createTestSpeaker(t, app, event.Id, "Baker")
	createTestSpeaker(t, app, event.Id, "alvarez")

	speakers, err := loadSpeakers(app, event.Id)
	require.NoError(t, err)
	require.Len(t, speakers, 2)

	// Byte ordering would put "Baker" first; the collator must not.
	assert.Equal(t, "alvarez", speakers[0].Name)
	assert.Equal(t, "Baker", speakers[1].Name)
}
