package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"kids-activity-normalizer/internal/models"
)

// TaxonomySuggestClient proposes taxonomy rules for legacy categories that
// the unmapped-category telemetry flagged. It is operator tooling only and
// never sits in the per-record normalization path.
type TaxonomySuggestClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// TaxonomySuggestion is one proposed mapping for an unmapped legacy category
type TaxonomySuggestion struct {
	Category        string  `json:"category"`
	ActivityType    string  `json:"activity_type"`
	ActivitySubtype string  `json:"activity_subtype,omitempty"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
	TokensUsed      int     `json:"tokens_used,omitempty"`
}

// NewTaxonomySuggestClient creates a new suggestion client
func NewTaxonomySuggestClient() *TaxonomySuggestClient {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY environment variable is required")
	}

	return &TaxonomySuggestClient{
		client:      openai.NewClient(apiKey),
		model:       "gpt-4o-mini",
		temperature: 0.1,
		maxTokens:   500,
	}
}

// SuggestMapping asks the model to map one legacy category (with sample
// subcategories for context) onto the closed taxonomy.
func (t *TaxonomySuggestClient) SuggestMapping(ctx context.Context, category string, sampleSubcategories []string) (*TaxonomySuggestion, error) {
	if category == "" {
		return nil, fmt.Errorf("category cannot be empty")
	}

	resp, err := t.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       t.model,
			Temperature: t.temperature,
			MaxTokens:   t.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: t.buildSystemPrompt(),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: t.buildUserPrompt(category, sampleSubcategories),
				},
			},
		},
	)

	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices from OpenAI")
	}

	cleaned := t.cleanJSONResponse(resp.Choices[0].Message.Content)

	var suggestion TaxonomySuggestion
	if err := json.Unmarshal([]byte(cleaned), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to parse suggestion JSON: %w\nResponse: %s", err, cleaned)
	}

	if !models.ValidateActivityType(suggestion.ActivityType) {
		return nil, fmt.Errorf("suggested type '%s' is not in the taxonomy", suggestion.ActivityType)
	}

	suggestion.Category = category
	suggestion.TokensUsed = resp.Usage.TotalTokens

	return &suggestion, nil
}

func (t *TaxonomySuggestClient) buildSystemPrompt() string {
	return fmt.Sprintf(`You classify recreation-program categories for a kids activity tracker.

Map the given legacy category onto exactly one of these activity types:
%s

Respond with JSON only, no prose:
{"activity_type": "...", "activity_subtype": "...", "confidence": 0.0, "reasoning": "one sentence"}

The activity_type MUST be copied verbatim from the list. Leave
activity_subtype empty if no refinement is obvious.`, strings.Join(models.AllActivityTypes(), "\n"))
}

func (t *TaxonomySuggestClient) buildUserPrompt(category string, sampleSubcategories []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Legacy category: %q\n", category)
	if len(sampleSubcategories) > 0 {
		fmt.Fprintf(&b, "Sample subcategories seen with it: %s\n", strings.Join(sampleSubcategories, ", "))
	}
	return b.String()
}

// cleanJSONResponse strips markdown code fences the model sometimes wraps
// around its JSON.
func (t *TaxonomySuggestClient) cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
