package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// envBindings maps configuration keys to the environment variables that
// override them.
var envBindings = map[string]string{
	"transport":          "TRANSPORT",
	"twitch.oauth_token": "TWITCH_OAUTH_TOKEN",
	"twitch.username":    "TWITCH_USERNAME",
	"twitch.channel":     "TWITCH_CHANNEL",
	"twitch.server_url":  "TWITCH_SERVER_URL",
	"telegram.token":     "TELEGRAM_TOKEN",
	"telegram.chat_id":   "TELEGRAM_CHAT_ID",
	"bot.min_messages":   "MIN_MESSAGES",
	"bot.max_messages":   "MAX_MESSAGES",
	"bot.seed":           "BOT_SEED",
	"logger.level":       "LOG_LEVEL",
	"logger.json":        "LOG_JSON",
	"database.path":      "DATABASE_PATH",
}

// LoadConfig reads configuration from path (a missing file is allowed),
// applies environment overrides and defaults, normalizes usernames and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("%w: failed to bind %s: %v", ErrConfiguration, env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: failed to read %s: %v", ErrConfiguration, path, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// normalize lowercases usernames so lookups are case-insensitive.
func (c *Config) normalize() {
	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	c.Twitch.Username = strings.ToLower(strings.TrimSpace(c.Twitch.Username))
	c.Twitch.Channel = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(c.Twitch.Channel), "#"))

	ignored := make([]string, 0, len(c.Bot.IgnoredUsers))
	for _, u := range c.Bot.IgnoredUsers {
		ignored = append(ignored, strings.ToLower(strings.TrimSpace(u)))
	}
	c.Bot.IgnoredUsers = ignored

	userPhrases := make(map[string]string, len(c.Bot.UserPhrases))
	for u, p := range c.Bot.UserPhrases {
		userPhrases[strings.ToLower(strings.TrimSpace(u))] = p
	}
	c.Bot.UserPhrases = userPhrases
}
