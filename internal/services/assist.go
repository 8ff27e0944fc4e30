package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"eventscheduler/internal/domain"
)

const (
	descriptionSystemPrompt = "You are an expert event planner assistant. Generate a professional and engaging event description based on the event title provided. " +
		"Keep it concise (2-3 sentences), informative, and inviting. Don't include any placeholders or brackets."

	timeSystemPrompt = `You are a scheduling expert. Based on the event title/type provided, suggest the optimal day of the week and time to hold this event. Consider:
- Typical productivity patterns
- Common availability for different event types
- Best practices for different types of gatherings

Respond ONLY with valid JSON in this exact format (no markdown, no code blocks):
{"suggestedDay": "Day of week", "suggestedTime": "HH:MM", "reason": "Brief explanation (1-2 sentences)"}`

	locationSystemPrompt = `You are an event venue expert. Based on the event title and description, suggest appropriate venue types or location ideas. Provide 3 suggestions ranging from casual to more formal options.

Respond ONLY with valid JSON in this exact format (no markdown, no code blocks):
{"suggestions": [{"type": "Venue type", "description": "Brief explanation"}, {"type": "Venue type 2", "description": "Brief explanation"}, {"type": "Venue type 3", "description": "Brief explanation"}]}`

	summarySystemPrompt = "You are a helpful assistant that provides concise, friendly weekly schedule summaries. Summarize the user's upcoming week in 2-3 sentences. " +
		"Highlight any busy days and provide a brief overview of key events. Keep it encouraging and helpful."

	// EmptyWeekSummary is returned without calling the provider when the caller has nothing scheduled.
	EmptyWeekSummary = "You have no events scheduled for the upcoming week. It's a great time to plan new activities or enjoy some free time!"

	summaryWindow = 7 * 24 * time.Hour
	temperature   = 0.7
)

type assistService struct {
	generator      domain.TextGenerator
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
	now            func() time.Time
}

// NewAssistService creates an AssistService. A nil generator makes every operation fail with
// domain.ErrAssistNotConfigured.
func NewAssistService(generator domain.TextGenerator, eventRepo domain.EventRepository, timeout time.Duration) domain.AssistService {
	return &assistService{
		generator:      generator,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *assistService) generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	if s.generator == nil {
		return "", domain.ErrAssistNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", domain.ErrProvider)
	}
	return reply, nil
}

func requireTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	return title, nil
}

func (s *assistService) GenerateDescription(ctx context.Context, title string) (string, error) {
	title, err := requireTitle(title)
	if err != nil {
		return "", err
	}
	return s.generate(ctx, domain.Prompt{
		System:      descriptionSystemPrompt,
		User:        fmt.Sprintf("Generate a description for an event titled: %q", title),
		MaxTokens:   150,
		Temperature: temperature,
	})
}

func (s *assistService) SuggestTime(ctx context.Context, title, eventType string) (*domain.TimeSuggestion, error) {
	title, err := requireTitle(title)
	if err != nil {
		return nil, err
	}
	user := fmt.Sprintf("Suggest the best time for: %q", title)
	if t := strings.TrimSpace(eventType); t != "" {
		user += fmt.Sprintf(" (Type: %s)", t)
	}
	reply, err := s.generate(ctx, domain.Prompt{System: timeSystemPrompt, User: user, MaxTokens: 200, Temperature: temperature})
	if err != nil {
		return nil, err
	}
	var suggestion domain.TimeSuggestion
	if err := parseJSONReply(reply, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

func (s *assistService) SuggestLocations(ctx context.Context, title, description string) ([]domain.LocationSuggestion, error) {
	title, err := requireTitle(title)
	if err != nil {
		return nil, err
	}
	user := fmt.Sprintf("Suggest locations for: %q", title)
	if d := strings.TrimSpace(description); d != "" {
		user += "\nDescription: " + d
	}
	reply, err := s.generate(ctx, domain.Prompt{System: locationSystemPrompt, User: user, MaxTokens: 300, Temperature: temperature})
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Suggestions []domain.LocationSuggestion `json:"suggestions"`
	}
	if err := parseJSONReply(reply, &parsed); err != nil {
		return nil, err
	}
	if parsed.Suggestions == nil {
		parsed.Suggestions = []domain.LocationSuggestion{}
	}
	return parsed.Suggestions, nil
}

// WeeklySummary summarizes the caller's events in [now, now+7d].
func (s *assistService) WeeklySummary(ctx context.Context, callerID string) (*domain.WeeklySummary, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if s.generator == nil {
		return nil, domain.ErrAssistNotConfigured
	}

	start := s.now()
	end := start.Add(summaryWindow)
	listCtx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	events, err := s.eventRepo.ListByOwner(listCtx, callerID, domain.EventFilter{StartDate: &start, EndDate: &end})
	cancel()
	if err != nil {
		return nil, fmt.Errorf("list week events: %w", err)
	}
	if len(events) == 0 {
		return &domain.WeeklySummary{Summary: EmptyWeekSummary, Events: events}, nil
	}

	var lines strings.Builder
	for _, e := range events {
		fmt.Fprintf(&lines, "- %s on %s", e.Title, e.EventDatetime.Format("Monday, Jan 2, 03:04 PM"))
		if e.Location != nil && *e.Location != "" {
			fmt.Fprintf(&lines, " at %s", *e.Location)
		}
		fmt.Fprintf(&lines, " (%s)\n", e.Status)
	}
	summary, err := s.generate(ctx, domain.Prompt{
		System:      summarySystemPrompt,
		User:        fmt.Sprintf("Here are my events for the upcoming week:\n%s\nPlease provide a brief summary of my week.", lines.String()),
		MaxTokens:   200,
		Temperature: temperature,
	})
	if err != nil {
		return nil, err
	}
	return &domain.WeeklySummary{Summary: summary, Events: events}, nil
}

// parseJSONReply decodes a model reply, retrying once with markdown code fences removed.
func parseJSONReply(reply string, v any) error {
	if err := json.Unmarshal([]byte(reply), v); err == nil {
		return nil
	}
	cleaned := strings.ReplaceAll(reply, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	if err := json.Unmarshal([]byte(strings.TrimSpace(cleaned)), v); err != nil {
		return fmt.Errorf("%w: malformed reply: %v", domain.ErrProvider, err)
	}
	return nil
}
