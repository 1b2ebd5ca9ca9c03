package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Telegram  TelegramConfig
	OpenAI    OpenAIConfig
	Knowledge KnowledgeConfig
	Ops       OpsConfig
	Log       LogConfig
}

type TelegramConfig struct {
	Token       string `validate:"required"`
	APIBase     string `validate:"required,url"`
	PollTimeout int
	MainBotURL  string `validate:"required,url"`
}

// Base returns the bot-scoped API base URL, e.g.
// "https://api.telegram.org/bot<token>".
func (c TelegramConfig) Base() string {
	return fmt.Sprintf("%s/bot%s", strings.TrimRight(c.APIBase, "/"), c.Token)
}

type OpenAIConfig struct {
	APIKey  string `validate:"required"`
	Model   string `validate:"required"`
	Timeout time.Duration
}

type KnowledgeConfig struct {
	DocIDs       []string
	WebsiteURL   string `validate:"omitempty,url"`
	FetchTimeout time.Duration
}

// OpsConfig configures the liveness/metrics HTTP server. Port 0 disables it.
type OpsConfig struct {
	Host string
	Port int
}

func (c OpsConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c OpsConfig) Enabled() bool {
	return c.Port > 0
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(".env"), dotenv.Parser())

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			Token:       k.String("telegram.token"),
			APIBase:     k.String("telegram.api.base"),
			PollTimeout: k.Int("telegram.poll.timeout"),
			MainBotURL:  k.String("telegram.main.bot.url"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  k.String("openai.api.key"),
			Model:   k.String("openai.model"),
			Timeout: k.Duration("openai.timeout"),
		},
		Knowledge: KnowledgeConfig{
			DocIDs:       splitList(k.String("knowledge.doc.ids")),
			WebsiteURL:   k.String("knowledge.website.url"),
			FetchTimeout: k.Duration("knowledge.fetch.timeout"),
		},
		Ops: OpsConfig{
			Host: k.String("ops.host"),
			Port: k.Int("ops.port"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	// Apply defaults
	if cfg.Telegram.APIBase == "" {
		cfg.Telegram.APIBase = "https://api.telegram.org"
	}
	if cfg.Telegram.PollTimeout == 0 {
		cfg.Telegram.PollTimeout = 30
	}
	if cfg.Telegram.MainBotURL == "" {
		cfg.Telegram.MainBotURL = "https://t.me/UGMSA_bot"
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.OpenAI.Timeout == 0 {
		cfg.OpenAI.Timeout = 30 * time.Second
	}
	if len(cfg.Knowledge.DocIDs) == 0 {
		cfg.Knowledge.DocIDs = []string{"1vyX3bAFBgX8QuaCCsNHdyltyLMZCzB6BtnELtmjlcd0"}
	}
	if cfg.Knowledge.WebsiteURL == "" {
		cfg.Knowledge.WebsiteURL = "https://ugmsa.org/"
	}
	if cfg.Knowledge.FetchTimeout == 0 {
		cfg.Knowledge.FetchTimeout = 10 * time.Second
	}
	if cfg.Ops.Host == "" {
		cfg.Ops.Host = "0.0.0.0"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
