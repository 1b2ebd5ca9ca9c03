package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks Config for startup-fatal problems.
// It collects all errors into a single joined error.
func (c *Config) Validate() error {
	var errs []string

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, ve := range verrs {
				errs = append(errs, describeFieldError(ve))
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if len(c.Knowledge.DocIDs) == 0 && c.Knowledge.WebsiteURL == "" {
		errs = append(errs, "at least one knowledge source (KNOWLEDGE_DOC_IDS or KNOWLEDGE_WEBSITE_URL) must be configured")
	}
	if c.Ops.Port < 0 || c.Ops.Port > 65535 {
		errs = append(errs, fmt.Sprintf("OPS_PORT must be 0 (disabled) or 1–65535, got %d", c.Ops.Port))
	}
	if c.Telegram.PollTimeout < 1 || c.Telegram.PollTimeout > 50 {
		errs = append(errs, fmt.Sprintf("TELEGRAM_POLL_TIMEOUT must be 1–50 seconds, got %d", c.Telegram.PollTimeout))
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n  " + strings.Join(errs, "\n  "))
	}
	return nil
}

func describeFieldError(ve validator.FieldError) string {
	name := envName(ve.StructNamespace())
	switch ve.Tag() {
	case "required":
		return name + " is required"
	case "url":
		return name + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %q validation", name, ve.Tag())
	}
}

// envName maps a struct namespace like "Config.OpenAI.APIKey" to the
// environment variable name users actually set.
func envName(ns string) string {
	switch ns {
	case "Config.Telegram.Token":
		return "TELEGRAM_TOKEN"
	case "Config.Telegram.APIBase":
		return "TELEGRAM_API_BASE"
	case "Config.Telegram.MainBotURL":
		return "TELEGRAM_MAIN_BOT_URL"
	case "Config.OpenAI.APIKey":
		return "OPENAI_API_KEY"
	case "Config.OpenAI.Model":
		return "OPENAI_MODEL"
	case "Config.Knowledge.WebsiteURL":
		return "KNOWLEDGE_WEBSITE_URL"
	default:
		return ns
	}
}
