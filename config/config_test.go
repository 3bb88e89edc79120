package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/uvzlabs/launchpad/course"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, string(course.ModeKeywords), cfg.InputMode)
	assert.Equal(t, "gpt-4o-mini", cfg.ModelName)
	assert.Equal(t, "https://api.whop.com", cfg.WhopBaseURL)
	assert.Equal(t, 2*time.Minute, cfg.CallTimeout)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.False(t, cfg.UseFakes)
}

func TestLoadConfigWithFakesSkipsKeyValidation(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("WHOP_API_KEY", "")
	t.Setenv("LAUNCHPAD_USE_FAKES", "true")

	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.True(t, cfg.UseFakes)
}

func TestLoadConfigRequiresKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("WHOP_API_KEY", "")
	t.Setenv("LAUNCHPAD_USE_FAKES", "false")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("WHOP_API_KEY", "whop-test")
	t.Setenv("LAUNCHPAD_INPUT_MODE", "uvz")
	t.Setenv("LAUNCHPAD_MODEL_NAME", "gpt-4o")
	t.Setenv("LAUNCHPAD_CALL_TIMEOUT", "90s")

	cfg, err := LoadConfig("")
	assert.NoError(t, err)
	assert.Equal(t, course.ModeUVZ, cfg.Mode())
	assert.Equal(t, "gpt-4o", cfg.ModelName)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, 90*time.Second, cfg.CallTimeout)
}

func TestLoadConfigRejectsUnknownMode(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LAUNCHPAD_USE_FAKES", "true")
	t.Setenv("LAUNCHPAD_INPUT_MODE", "psychic")

	_, err := LoadConfig("")
	assert.Error(t, err)
}
