// Package enrichment runs the compliant profile-enrichment provider chain and
// merges the results into a reviewable draft with per-field provenance.
// Drafts never touch a profile directly; an assistant or admin approves them
// first.
package enrichment

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"backend/models"
)

type ProviderResult struct {
	Confidence    float64
	Fields        []models.ProvenanceField
	ConflictFlags []string
}

type Provider interface {
	Name() string
	Enrich(ctx context.Context, profile models.PersonProfile) (ProviderResult, error)
}

// Chain fans a profile out to every provider and merges the results. Results
// are memoized per profile revision so regenerating a draft does not refetch
// upstream providers.
type Chain struct {
	providers []Provider
	results   *cache.Cache
}

func NewChain(providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		results:   cache.New(15*time.Minute, 30*time.Minute),
	}
}

func (c *Chain) Run(ctx context.Context, profile models.PersonProfile) (models.EnrichmentDraft, error) {
	cacheKey := profile.ID + "@" + profile.UpdatedAt.UTC().Format(time.RFC3339)
	if cached, ok := c.results.Get(cacheKey); ok {
		return cached.(models.EnrichmentDraft), nil
	}

	var (
		fields        []models.ProvenanceField
		conflictFlags []string
		seenFlags     = map[string]struct{}{}
		confidenceSum float64
	)

	for _, provider := range c.providers {
		result, err := provider.Enrich(ctx, profile)
		if err != nil {
			return models.EnrichmentDraft{}, fmt.Errorf("%s: %w", provider.Name(), err)
		}

		fields = append(fields, result.Fields...)
		confidenceSum += result.Confidence
		for _, flag := range result.ConflictFlags {
			if _, seen := seenFlags[flag]; seen {
				continue
			}
			seenFlags[flag] = struct{}{}
			conflictFlags = append(conflictFlags, flag)
		}
	}

	names := make([]string, 0, len(c.providers))
	for _, provider := range c.providers {
		names = append(names, provider.Name())
	}

	confidence := 0.0
	if len(c.providers) > 0 {
		confidence = math.Round(confidenceSum/float64(len(c.providers))*100) / 100
	}

	draft := models.EnrichmentDraft{
		EventID:         profile.EventID,
		PersonID:        profile.ID,
		Provider:        strings.Join(names, " + "),
		MatchConfidence: confidence,
		Status:          models.DraftStatusDraft,
		ConflictFlags:   conflictFlags,
		Fields:          fields,
		GeneratedAt:     time.Now().UTC(),
	}

	c.results.Set(cacheKey, draft, cache.DefaultExpiration)
	return draft, nil
}
