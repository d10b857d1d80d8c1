package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
)

var ErrEmptyResponse = errors.New("model returned no content")

// Client wraps the Gemini API for itinerary generation. The key comes from
// config, never from the environment.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, model: cfg.Model}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// TripRequest describes what to plan.
type TripRequest struct {
	Destination  string
	DurationDays int
	Budget       string
	Activities   string
	TravelWith   string
}

// GenerateItinerary asks the model for a day-by-day plan and returns the raw
// JSON payload. The payload is stored opaquely; only basic JSON validity is
// checked here.
func (c *Client) GenerateItinerary(ctx context.Context, req *TripRequest) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(
			"You are BonVoyage, a travel planner. " +
				"Respond with a single JSON object: " +
				`{"destination","duration_days","summary","days":[{"day","title","morning","afternoon","evening","estimated_cost"}],"travel_tips":[]}. ` +
				"No markdown fences, no prose outside the JSON.",
		)},
	}

	prompt := buildPrompt(req)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("itinerary generation failed: %w", err)
	}

	raw := extractText(resp)
	if raw == "" {
		return "", ErrEmptyResponse
	}

	cleaned := stripFences(raw)
	if !json.Valid([]byte(cleaned)) {
		return "", fmt.Errorf("model returned invalid JSON payload")
	}

	return cleaned, nil
}

func buildPrompt(req *TripRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-day trip to %s on a %s budget.", req.DurationDays, req.Destination, req.Budget)
	if req.Activities != "" {
		fmt.Fprintf(&b, " Preferred activities: %s.", req.Activities)
	}
	if req.TravelWith != "" {
		fmt.Fprintf(&b, " Traveling with: %s.", req.TravelWith)
	}
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String())
}

// stripFences removes ```json fences some models insist on adding.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
