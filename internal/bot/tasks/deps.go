// Package tasks implements the scheduled tasks of PhraseBot: periodic status
// reports and maintenance of the optional event journal.
package tasks

import (
	"log/slog"

	"github.com/edgard/phrasebot/internal/config"
	"github.com/edgard/phrasebot/internal/database"
	"github.com/edgard/phrasebot/internal/phrase"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Config *config.Config
	States *phrase.States
	// Store is nil when the event journal is disabled.
	Store database.Store
}
