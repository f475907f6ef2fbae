package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the journal operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveEvent inserts a journal event and sets its ID.
	SaveEvent(ctx context.Context, event *Event) error

	// CountEvents returns how many events of kind were recorded for channel.
	// An empty channel or kind matches all.
	CountEvents(ctx context.Context, channel string, kind EventKind) (int, error)

	// PruneEventsBefore deletes events created before cutoff and returns the
	// number removed.
	PruneEventsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("journal ping failed: %w", err)
	}
	return nil
}

// SaveEvent inserts a new journal event.
func (s *sqlxStore) SaveEvent(ctx context.Context, event *Event) error {
	if event == nil {
		return fmt.Errorf("cannot save nil event")
	}
	if event.Channel == "" {
		return fmt.Errorf("event must have a channel")
	}
	if event.Kind != EventPhrase && event.Kind != EventMention {
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
	if event.SentContent == "" {
		return fmt.Errorf("event must have non-empty sent content")
	}

	event.CreatedAt = timestampNow()

	query := `
        INSERT INTO events (created_at, channel, kind, author, trigger_content, sent_content)
        VALUES (:created_at, :channel, :kind, :author, :trigger_content, :sent_content);
    `

	result, err := s.db.NamedExecContext(ctx, query, event)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving event", "channel", event.Channel, "kind", event.Kind, "error", err)
		return fmt.Errorf("failed to save event (channel %s, kind %s): %w", event.Channel, event.Kind, err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		//nolint:gosec // integer overflow conversion is acceptable here
		event.ID = uint(id)
	} else {
		s.logger.WarnContext(ctx, "Could not retrieve last insert ID after saving event", "channel", event.Channel, "error", err)
	}

	s.logger.DebugContext(ctx, "Event saved successfully", "channel", event.Channel, "kind", event.Kind, "event_id", event.ID)
	return nil
}

// CountEvents counts events, optionally filtered by channel and kind.
func (s *sqlxStore) CountEvents(ctx context.Context, channel string, kind EventKind) (int, error) {
	query := `
        SELECT COUNT(*) FROM events
        WHERE (? = '' OR channel = ?) AND (? = '' OR kind = ?);
    `
	var count int
	if err := s.db.GetContext(ctx, &count, query, channel, channel, string(kind), string(kind)); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// PruneEventsBefore deletes events older than cutoff.
func (s *sqlxStore) PruneEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?;`, cutoff.UTC())
	if err != nil {
		s.logger.ErrorContext(ctx, "Error pruning events", "cutoff", cutoff, "error", err)
		return 0, fmt.Errorf("failed to prune events: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned row count: %w", err)
	}
	s.logger.InfoContext(ctx, "Pruned journal events", "cutoff", cutoff, "removed", removed)
	return removed, nil
}

// RunSQLMaintenance executes VACUUM and ANALYZE on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite
	_, err := s.db.ExecContext(ctx, "VACUUM;")
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		s.logger.ErrorContext(ctx, "Database maintenance (ANALYZE) failed", "error", err)
		return fmt.Errorf("failed to execute ANALYZE: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed successfully")
	return nil
}
