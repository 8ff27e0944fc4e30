package assist

import (
	"fmt"
	"net/http"
	"time"

	"eventscheduler/internal/domain"
)

// Provider names accepted by NewGenerator.
const (
	ProviderOpenAI    = "openai"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

var defaultModels = map[string]string{
	ProviderOpenAI:    "gpt-3.5-turbo",
	ProviderGroq:      "llama-3.1-8b-instant",
	ProviderAnthropic: "claude-3-haiku-20240307",
}

// Config selects and configures the text generation provider.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewGenerator creates a TextGenerator from config. Groq is reached through its OpenAI-compatible API.
// An empty API key yields domain.ErrAssistNotConfigured so the server can still start without AI features.
func NewGenerator(config Config) (domain.TextGenerator, error) {
	if config.APIKey == "" {
		return nil, domain.ErrAssistNotConfigured
	}
	model := config.Model
	if model == "" {
		model = defaultModels[config.Provider]
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	switch config.Provider {
	case ProviderOpenAI:
		return newOpenAIGenerator(config.APIKey, config.BaseURL, model, httpClient), nil
	case ProviderGroq:
		baseURL := config.BaseURL
		if baseURL == "" {
			baseURL = groqBaseURL
		}
		return newOpenAIGenerator(config.APIKey, baseURL, model, httpClient), nil
	case ProviderAnthropic:
		return newAnthropicGenerator(config.APIKey, config.BaseURL, model, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", config.Provider)
	}
}
