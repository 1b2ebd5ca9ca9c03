package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			Token:       "123:abc",
			APIBase:     "https://api.telegram.org",
			PollTimeout: 30,
			MainBotURL:  "https://t.me/UGMSA_bot",
		},
		OpenAI: OpenAIConfig{
			APIKey:  "sk-test",
			Model:   "gpt-4o-mini",
			Timeout: 30 * time.Second,
		},
		Knowledge: KnowledgeConfig{
			DocIDs:       []string{"doc-1"},
			WebsiteURL:   "https://ugmsa.org/",
			FetchTimeout: 10 * time.Second,
		},
		Ops: OpsConfig{Host: "0.0.0.0", Port: 0},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_MissingTelegramToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN is required")
}

func TestValidate_MissingOpenAIKey(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAI.APIKey = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY is required")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	cfg.OpenAI.APIKey = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN is required")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY is required")
}

func TestValidate_BadWebsiteURL(t *testing.T) {
	cfg := validConfig()
	cfg.Knowledge.WebsiteURL = "not a url"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KNOWLEDGE_WEBSITE_URL")
}

func TestValidate_NoKnowledgeSources(t *testing.T) {
	cfg := validConfig()
	cfg.Knowledge.DocIDs = nil
	cfg.Knowledge.WebsiteURL = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one knowledge source")
}

func TestValidate_OpsPortRange(t *testing.T) {
	cfg := validConfig()
	cfg.Ops.Port = 70000

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPS_PORT")
}

func TestValidate_PollTimeoutBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.PollTimeout = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_POLL_TIMEOUT")
}
