package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "https://api.openai.com/v1", p.LLMBaseURL)
	assert.Equal(t, "gpt-4o-mini", p.LLMModel)
	assert.Equal(t, "https://en.wikipedia.org", p.WikipediaBaseURL)
	assert.Equal(t, 4000, p.TokenBudget)
	assert.Equal(t, 5, p.KeepRecent)
	assert.False(t, p.IsLLMEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SAGE_LLM_BASE_URL", "http://localhost:11434/v1")
	t.Setenv("SAGE_LLM_API_KEY", "sk-test")
	t.Setenv("SAGE_LLM_MODEL", "llama3")
	t.Setenv("SAGE_WIKIPEDIA_BASE_URL", "http://localhost:9999")
	t.Setenv("SAGE_TOKEN_BUDGET", "2000")
	t.Setenv("SAGE_KEEP_RECENT", "3")

	p := &Profile{}
	p.FromEnv()

	assert.Equal(t, "http://localhost:11434/v1", p.LLMBaseURL)
	assert.Equal(t, "sk-test", p.LLMAPIKey)
	assert.Equal(t, "llama3", p.LLMModel)
	assert.Equal(t, "http://localhost:9999", p.WikipediaBaseURL)
	assert.Equal(t, 2000, p.TokenBudget)
	assert.Equal(t, 3, p.KeepRecent)
	assert.True(t, p.IsLLMEnabled())
}

func TestFromEnvMalformedInt(t *testing.T) {
	t.Setenv("SAGE_TOKEN_BUDGET", "not-a-number")

	p := &Profile{}
	p.FromEnv()
	assert.Equal(t, 4000, p.TokenBudget)
}

func TestValidate(t *testing.T) {
	p := &Profile{Mode: "dev", Port: 8080}
	p.FromEnv()
	require.NoError(t, p.Validate())

	p.Mode = "something-else"
	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)

	p.Port = -1
	assert.Error(t, p.Validate())

	p.Port = 8080
	p.TokenBudget = 0
	assert.Error(t, p.Validate())
}

func TestIsDev(t *testing.T) {
	assert.True(t, (&Profile{Mode: "dev"}).IsDev())
	assert.True(t, (&Profile{Mode: "demo"}).IsDev())
	assert.False(t, (&Profile{Mode: "prod"}).IsDev())
}
