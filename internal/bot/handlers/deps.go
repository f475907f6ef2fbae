package handlers

import (
	"log/slog"

	"github.com/edgard/phrasebot/internal/config"
	"github.com/edgard/phrasebot/internal/database"
	"github.com/edgard/phrasebot/internal/phrase"
)

// HandlerDeps provides dependencies for chat message and command handlers.
type HandlerDeps struct {
	Logger     *slog.Logger
	Config     *config.Config
	States     *phrase.States
	Phrases    phrase.Set
	Classifier phrase.Classifier
	// Store is nil when the event journal is disabled.
	Store database.Store
}

// NewPhraseSet builds the phrase inventory from the bot configuration.
func NewPhraseSet(cfg config.BotConfig) phrase.Set {
	return phrase.Set{
		Phrases:          cfg.Phrases,
		UserPhrases:      cfg.UserPhrases,
		YesResponses:     cfg.YesResponses,
		NoResponses:      cfg.NoResponses,
		GenericResponses: cfg.GenericResponses,
	}
}
