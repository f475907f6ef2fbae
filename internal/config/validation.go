package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate checks field constraints, the transport-specific required
// credentials and the reply template verbs.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterStructValidation(transportCredentials, Config{})
	validate.RegisterStructValidation(replyTemplates, MessagesConfig{})
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

func transportCredentials(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	switch c.Transport {
	case "twitch":
		if c.Twitch.OAuthToken == "" {
			sl.ReportError(c.Twitch.OAuthToken, "Twitch.OAuthToken", "OAuthToken", "required_for_transport", "twitch")
		}
		if c.Twitch.Username == "" {
			sl.ReportError(c.Twitch.Username, "Twitch.Username", "Username", "required_for_transport", "twitch")
		}
		if c.Twitch.Channel == "" {
			sl.ReportError(c.Twitch.Channel, "Twitch.Channel", "Channel", "required_for_transport", "twitch")
		}
	case "telegram":
		if c.Telegram.Token == "" {
			sl.ReportError(c.Telegram.Token, "Telegram.Token", "Token", "required_for_transport", "telegram")
		}
		if c.Telegram.ChatID == 0 {
			sl.ReportError(c.Telegram.ChatID, "Telegram.ChatID", "ChatID", "required_for_transport", "telegram")
		}
	}
}

// replyTemplates formats each template with the arguments its command
// passes, so a wrong or missing verb fails at startup instead of in chat.
func replyTemplates(sl validator.StructLevel) {
	m := sl.Current().Interface().(MessagesConfig)
	if m.PhraseStats != "" && badVerbs(m.PhraseStats, 1, 2) {
		sl.ReportError(m.PhraseStats, "PhraseStats", "PhraseStats", "template", "%d %d")
	}
	if m.PhraseList != "" && badVerbs(m.PhraseList, "a, b") {
		sl.ReportError(m.PhraseList, "PhraseList", "PhraseList", "template", "%s")
	}
}

// badVerbs reports whether rendering tpl with args leaves a fmt error marker.
func badVerbs(tpl string, args ...any) bool {
	return strings.Contains(fmt.Sprintf(tpl, args...), "%!")
}
