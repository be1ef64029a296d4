package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrEmptyResponse = errors.New("no response candidates from Gemini")

// GeminiProvider implements Coach using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) EcoTip(ctx context.Context, in CoachContext) (*TipResult, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(buildCoachPrompt(in)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	return parseTip(text.String())
}

func parseTip(raw string) (*TipResult, error) {
	var result TipResult
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, raw: %s", err, raw)
	}
	result.Tip = strings.TrimSpace(result.Tip)
	if result.Tip == "" {
		return nil, fmt.Errorf("empty tip in response: %s", raw)
	}
	result.FocusMode = strings.ToLower(strings.TrimSpace(result.FocusMode))
	return &result, nil
}

func buildCoachPrompt(in CoachContext) string {
	modes := make([]string, 0, len(in.ModeCounts))
	for m := range in.ModeCounts {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	var usage strings.Builder
	for _, m := range modes {
		fmt.Fprintf(&usage, "- %s: %d trips\n", m, in.ModeCounts[m])
	}
	if usage.Len() == 0 {
		usage.WriteString("- no saved trips yet\n")
	}

	priority := in.Priority
	if priority == "" {
		priority = "Balanced"
	}

	return fmt.Sprintf(`You are a friendly commuting coach helping a user cut their transport CO2 emissions.

User summary for this month:
- CO2 saved: %.2f kg of a %.0f kg goal (%.0f%% reached)
- Trips: %d, distance: %.1f km
- Route priority: %s

Transport usage across all saved trips:
%s
Write ONE concrete, encouraging tip of at most two sentences that helps the user reach the goal.
Prefer walking or cycling for short trips and transit for longer ones; never shame driving.

Respond with JSON only, exactly this shape:
{"tip": "<text>", "focusMode": "walking" | "cycling" | "transit" | "driving"}`,
		in.MonthCO2Kg, in.MonthlyGoalKg, in.GoalProgress,
		in.MonthTrips, in.MonthDistance,
		priority,
		usage.String(),
	)
}

func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
