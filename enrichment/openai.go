package enrichment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"backend/models"
)

const openAIModel = openai.ChatModel("gpt-5-mini")

// openAIProvider drafts a short highlight synthesis from whatever profile
// facts are already on file. It proposes text for human review only; the
// draft approval flow decides whether it lands on the profile.
type openAIProvider struct {
	client openai.Client
}

func NewOpenAIProvider(apiKey string) Provider {
	return &openAIProvider{client: openai.NewClient(option.WithAPIKey(apiKey))}
}

func (p *openAIProvider) Name() string { return "OpenAI Research Synthesis" }

func (p *openAIProvider) Enrich(ctx context.Context, profile models.PersonProfile) (ProviderResult, error) {
	prompt := fmt.Sprintf(
		"Summarize in two sentences what an executive should know before meeting %s (%s at %s). Known highlights: %s.",
		profile.Name,
		valueOr(profile.RoleTitle, "role unknown"),
		valueOr(profile.Organization, "organization unknown"),
		valueOr(strings.Join(profile.Highlights, "; "), "none"),
	)

	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openAIModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You prepare concise, factual meeting prep notes. Never speculate beyond the provided facts."),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return ProviderResult{}, err
	}

	if len(completion.Choices) == 0 || strings.TrimSpace(completion.Choices[0].Message.Content) == "" {
		return ProviderResult{}, errors.New("empty completion")
	}

	return ProviderResult{
		Confidence: 0.70,
		Fields: []models.ProvenanceField{
			{
				FieldName:   "highlights",
				Value:       strings.TrimSpace(completion.Choices[0].Message.Content),
				Source:      "OpenAI synthesis",
				RetrievedAt: time.Now().UTC(),
			},
		},
	}, nil
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
