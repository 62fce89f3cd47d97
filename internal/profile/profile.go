package profile

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Version is the current version of the server
	Version string

	// LLM configuration
	LLMBaseURL string // SAGE_LLM_BASE_URL (default: https://api.openai.com/v1)
	LLMAPIKey  string // SAGE_LLM_API_KEY
	LLMModel   string // SAGE_LLM_MODEL (default: gpt-4o-mini)

	// Knowledge lookup configuration
	WikipediaBaseURL string // SAGE_WIKIPEDIA_BASE_URL (default: https://en.wikipedia.org)

	// Conversation store configuration
	TokenBudget int // SAGE_TOKEN_BUDGET (default: 4000)
	KeepRecent  int // SAGE_KEEP_RECENT (default: 5)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLLMEnabled returns true when a completion API key is configured. Without
// one the server still runs; every generation degrades to the fallback reply.
func (p *Profile) IsLLMEnabled() bool {
	return p.LLMAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvOrDefault returns the environment variable parsed as an integer,
// or the default when unset or malformed.
func getIntEnvOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// FromEnv loads configuration from SAGE_* environment variables.
func (p *Profile) FromEnv() {
	p.LLMBaseURL = getEnvOrDefault("SAGE_LLM_BASE_URL", "https://api.openai.com/v1")
	p.LLMAPIKey = os.Getenv("SAGE_LLM_API_KEY")
	p.LLMModel = getEnvOrDefault("SAGE_LLM_MODEL", "gpt-4o-mini")
	p.WikipediaBaseURL = getEnvOrDefault("SAGE_WIKIPEDIA_BASE_URL", "https://en.wikipedia.org")
	p.TokenBudget = getIntEnvOrDefault("SAGE_TOKEN_BUDGET", 4000)
	p.KeepRecent = getIntEnvOrDefault("SAGE_KEEP_RECENT", 5)
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}
	if p.TokenBudget <= 0 {
		return errors.Errorf("token budget must be positive, got %d", p.TokenBudget)
	}
	if p.KeepRecent <= 0 {
		return errors.Errorf("keep-recent must be positive, got %d", p.KeepRecent)
	}
	return nil
}
