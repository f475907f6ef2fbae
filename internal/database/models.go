package database

import "time"

// EventKind identifies what the bot sent.
type EventKind string

const (
	// EventPhrase is an injected phrase message.
	EventPhrase EventKind = "phrase"
	// EventMention is a canned reply to a mention.
	EventMention EventKind = "mention"
)

// Event is one outbound bot message recorded in the journal, together with
// the inbound message that caused it.
type Event struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Channel        string    `db:"channel"`
	Kind           EventKind `db:"kind"`
	Author         string    `db:"author"`
	TriggerContent string    `db:"trigger_content"`
	SentContent    string    `db:"sent_content"`
}
