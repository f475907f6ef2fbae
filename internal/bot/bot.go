// Package bot implements the lifecycle management and component
// orchestration for PhraseBot: the chat transport and the task scheduler.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/edgard/phrasebot/internal/chat"
)

// Bot runs the chat transport and the scheduler until shutdown.
type Bot struct {
	logger    *slog.Logger
	transport chat.Transport
	handler   chat.HandlerFunc
	scheduler *Scheduler
}

// NewBot creates a new orchestrator. handler receives every inbound message
// from transport.
func NewBot(logger *slog.Logger, transport chat.Transport, handler chat.HandlerFunc, scheduler *Scheduler) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		transport: transport,
		handler:   handler,
		scheduler: scheduler,
	}
}

// Run starts the transport and the scheduler and blocks until ctx is
// cancelled or either component fails; a failure stops the other.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...", "username", b.transport.Username())

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting chat transport...")
		if err := b.transport.Run(gCtx, b.handler); err != nil {
			b.logger.Error("Chat transport stopped with error", "error", err)
			return fmt.Errorf("chat transport: %w", err)
		}
		b.logger.Info("Chat transport stopped.")

		if gCtx.Err() == nil {
			return fmt.Errorf("chat transport stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		if b.scheduler == nil {
			return nil
		}
		if err := b.scheduler.Start(gCtx); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		b.logger.Info("Scheduler running", "jobs", b.scheduler.Jobs())

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}
