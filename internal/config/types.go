// Package config provides configuration loading, validation, and management
// for PhraseBot. It reads an optional YAML file, applies environment
// overrides and defaults, and validates the result once at startup.
package config

import (
	"errors"
	"time"
)

// ErrConfiguration wraps every loading and validation failure.
var ErrConfiguration = errors.New("configuration error")

// Config holds the complete application configuration.
type Config struct {
	Transport string          `mapstructure:"transport" validate:"required,oneof=twitch telegram"`
	Twitch    TwitchConfig    `mapstructure:"twitch"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Bot       BotConfig       `mapstructure:"bot"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// TwitchConfig holds the Twitch chat credentials and connection settings.
type TwitchConfig struct {
	OAuthToken string        `mapstructure:"oauth_token"`
	Username   string        `mapstructure:"username"`
	Channel    string        `mapstructure:"channel"`
	ServerURL  string        `mapstructure:"server_url" validate:"required,url"`
	RateLimit  int           `mapstructure:"rate_limit" validate:"gt=0"`
	RatePeriod time.Duration `mapstructure:"rate_period" validate:"gt=0"`
}

// TelegramConfig holds the Telegram bot token and the single chat it serves.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

// BotConfig holds the phrase inventory, responses and trigger bounds.
type BotConfig struct {
	MinMessages   int    `mapstructure:"min_messages"   validate:"gte=0"`
	MaxMessages   int    `mapstructure:"max_messages"   validate:"gte=0,gtefield=MinMessages"`
	CommandPrefix string `mapstructure:"command_prefix" validate:"required"`
	// Seed fixes the random sources; 0 picks a random seed at startup.
	Seed uint64 `mapstructure:"seed"`

	Phrases          []string          `mapstructure:"phrases"           validate:"required,min=1,dive,required"`
	UserPhrases      map[string]string `mapstructure:"user_phrases"      validate:"dive,keys,required,endkeys,required"`
	IgnoredUsers     []string          `mapstructure:"ignored_users"     validate:"dive,required"`
	YesResponses     []string          `mapstructure:"yes_responses"     validate:"required,min=1,dive,required"`
	NoResponses      []string          `mapstructure:"no_responses"      validate:"required,min=1,dive,required"`
	GenericResponses []string          `mapstructure:"generic_responses" validate:"required,min=1,dive,required"`
}

// MessagesConfig holds the command reply templates.
type MessagesConfig struct {
	// PhraseStats receives the remaining message count and the phrase total.
	PhraseStats string `mapstructure:"phrase_stats" validate:"required"`
	// PhraseList receives the comma-joined phrase list.
	PhraseList string `mapstructure:"phrase_list" validate:"required"`
}

// LoggerConfig controls slog output.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DatabaseConfig controls the optional event journal. An empty Path
// disables it.
type DatabaseConfig struct {
	Path      string        `mapstructure:"path"`
	Retention time.Duration `mapstructure:"retention" validate:"gte=0"`
}

// SchedulerConfig lists the periodic tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task and sets its cron schedule (seconds field
// included).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// IgnoredSet returns the ignored users as a set keyed by lowercase name.
func (b BotConfig) IgnoredSet() map[string]struct{} {
	set := make(map[string]struct{}, len(b.IgnoredUsers))
	for _, u := range b.IgnoredUsers {
		set[u] = struct{}{}
	}
	return set
}

// JournalEnabled reports whether the event journal is configured.
func (d DatabaseConfig) JournalEnabled() bool {
	return d.Path != ""
}
