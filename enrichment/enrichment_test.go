package enrichment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/models"
)

func fullProfile() models.PersonProfile {
	return models.PersonProfile{
		ID:           "person-1",
		EventID:      "event-1",
		Name:         "Dana Whitfield",
		Organization: "Northwind Capital",
		RoleTitle:    "Chief Operating Officer",
		Highlights:   []string{"Led the 2024 platform merger", "Keynoted Ops Summit"},
		UpdatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestChainMergesProviderResults(t *testing.T) {
	chain := NewChain(directoryProvider{}, licensedDataProvider{})

	draft, err := chain.Run(context.Background(), fullProfile())
	require.NoError(t, err)

	assert.Equal(t, "event-1", draft.EventID)
	assert.Equal(t, "person-1", draft.PersonID)
	assert.Equal(t, "LinkedIn Marketing Developer Platform + Licensed Professional Insights Provider", draft.Provider)
	assert.Equal(t, models.DraftStatusDraft, draft.Status)
	assert.InDelta(t, 0.87, draft.MatchConfidence, 0.0001)
	assert.Empty(t, draft.ConflictFlags)

	require.Len(t, draft.Fields, 3)
	assert.Equal(t, "organization", draft.Fields[0].FieldName)
	assert.Equal(t, "Northwind Capital", draft.Fields[0].Value)
	assert.Equal(t, "highlights", draft.Fields[2].FieldName)
	assert.Equal(t, "Led the 2024 platform merger; Keynoted Ops Summit", draft.Fields[2].Value)
}

func TestChainFlagsMissingData(t *testing.T) {
	profile := fullProfile()
	profile.Organization = ""
	profile.Highlights = nil

	chain := NewChain(directoryProvider{}, licensedDataProvider{})
	draft, err := chain.Run(context.Background(), profile)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"missing_org", "missing_highlights"}, draft.ConflictFlags)
	// Directory confidence drops to 0.62 when the organization is unverified.
	assert.InDelta(t, 0.73, draft.MatchConfidence, 0.0001)
	assert.Equal(t, "Unknown", draft.Fields[0].Value)
	assert.Equal(t, "No prior highlights on file", draft.Fields[2].Value)
}

type countingProvider struct {
	calls *int
}

func (countingProvider) Name() string { return "Counting Provider" }

func (p countingProvider) Enrich(_ context.Context, _ models.PersonProfile) (ProviderResult, error) {
	*p.calls++
	return ProviderResult{
		Confidence: 0.5,
		Fields:     []models.ProvenanceField{{FieldName: "organization", Value: "Cached Org", Source: "test"}},
	}, nil
}

func TestChainMemoizesPerProfileRevision(t *testing.T) {
	calls := 0
	chain := NewChain(countingProvider{calls: &calls})
	profile := fullProfile()

	_, err := chain.Run(context.Background(), profile)
	require.NoError(t, err)
	_, err = chain.Run(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// A profile edit invalidates the memoized draft.
	profile.UpdatedAt = profile.UpdatedAt.Add(time.Minute)
	_, err = chain.Run(context.Background(), profile)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

type failingProvider struct{}

func (failingProvider) Name() string { return "Flaky Upstream" }

func (failingProvider) Enrich(_ context.Context, _ models.PersonProfile) (ProviderResult, error) {
	return ProviderResult{}, errors.New("quota exceeded")
}

func TestChainWrapsProviderErrors(t *testing.T) {
	chain := NewChain(failingProvider{})

	_, err := chain.Run(context.Background(), fullProfile())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Flaky Upstream")
	assert.Contains(t, err.Error(), "quota exceeded")
}
