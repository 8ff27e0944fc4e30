package domain

import "context"

// Prompt is a single system+user exchange sent to a text generation provider.
type Prompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// TextGenerator produces a completion for a prompt. Failures wrap ErrProvider.
type TextGenerator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// TimeSuggestion is a suggested slot for an event.
type TimeSuggestion struct {
	SuggestedDay  string `json:"suggestedDay"`
	SuggestedTime string `json:"suggestedTime"`
	Reason        string `json:"reason"`
}

// LocationSuggestion is one kind of venue with a short description.
type LocationSuggestion struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// WeeklySummary is a generated overview of the caller's next seven days.
type WeeklySummary struct {
	Summary string   `json:"summary"`
	Events  []*Event `json:"events"`
}

// AssistService defines the AI helper operations.
type AssistService interface {
	GenerateDescription(ctx context.Context, title string) (string, error)
	SuggestTime(ctx context.Context, title, eventType string) (*TimeSuggestion, error)
	SuggestLocations(ctx context.Context, title, description string) ([]LocationSuggestion, error)
	WeeklySummary(ctx context.Context, callerID string) (*WeeklySummary, error)
}
