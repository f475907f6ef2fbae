package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration
const (
	DefaultTransport = "twitch"

	DefaultTwitchServerURL  = "wss://irc-ws.chat.twitch.tv:443"
	DefaultTwitchRateLimit  = 20
	DefaultTwitchRatePeriod = 30 * time.Second

	DefaultMinMessages   = 5
	DefaultMaxMessages   = 30
	DefaultCommandPrefix = "!"

	DefaultPhraseStatsMsg = "Messages until next phrase: %d | Total phrases: %d"
	DefaultPhraseListMsg  = "Possible phrases: %s"

	DefaultLogLevel = "info"

	DefaultJournalRetention = 30 * 24 * time.Hour
)

// Default phrase inventory and responses
var (
	DefaultPhrases          = []string{"in bed"}
	DefaultIgnoredUsers     = []string{"nightbot", "streamelements"}
	DefaultYesResponses     = []string{"I knew you'd agree."}
	DefaultNoResponses      = []string{"Agree to disagree."}
	DefaultGenericResponses = []string{"You rang?"}
)

// Default scheduler tasks, keyed by task name
var DefaultTasks = map[string]TaskConfig{
	"status_report":   {Enabled: true, Schedule: "0 */5 * * * *"},
	"journal_prune":   {Enabled: true, Schedule: "0 0 4 * * *"},
	"sql_maintenance": {Enabled: true, Schedule: "0 30 4 * * 0"},
}

// setDefaults sets default values for optional configuration parameters
func setDefaults(v *viper.Viper) {
	v.SetDefault("transport", DefaultTransport)

	v.SetDefault("twitch.server_url", DefaultTwitchServerURL)
	v.SetDefault("twitch.rate_limit", DefaultTwitchRateLimit)
	v.SetDefault("twitch.rate_period", DefaultTwitchRatePeriod)

	v.SetDefault("bot.min_messages", DefaultMinMessages)
	v.SetDefault("bot.max_messages", DefaultMaxMessages)
	v.SetDefault("bot.command_prefix", DefaultCommandPrefix)
	v.SetDefault("bot.seed", 0)
	v.SetDefault("bot.phrases", DefaultPhrases)
	v.SetDefault("bot.user_phrases", map[string]string{})
	v.SetDefault("bot.ignored_users", DefaultIgnoredUsers)
	v.SetDefault("bot.yes_responses", DefaultYesResponses)
	v.SetDefault("bot.no_responses", DefaultNoResponses)
	v.SetDefault("bot.generic_responses", DefaultGenericResponses)

	v.SetDefault("messages.phrase_stats", DefaultPhraseStatsMsg)
	v.SetDefault("messages.phrase_list", DefaultPhraseListMsg)

	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("database.path", "")
	v.SetDefault("database.retention", DefaultJournalRetention)

	for name, task := range DefaultTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}
}
