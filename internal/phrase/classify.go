// Package phrase implements the bot's message handling rules: classifying
// inbound messages, counting them towards the next phrase injection, composing
// the injected phrase and picking canned mention responses.
package phrase

import (
	"strings"

	"github.com/edgard/phrasebot/internal/chat"
)

// Classification is the routing decision for an inbound message.
type Classification int

const (
	Countable Classification = iota
	SelfEcho
	IgnoredUser
	BotMention
	ReplyToOther
	Command
)

func (c Classification) String() string {
	switch c {
	case SelfEcho:
		return "self_echo"
	case IgnoredUser:
		return "ignored_user"
	case BotMention:
		return "bot_mention"
	case ReplyToOther:
		return "reply_to_other"
	case Command:
		return "command"
	default:
		return "countable"
	}
}

// Counts reports whether messages of this classification advance the
// trigger counter. Replies to other users are counted even though they are
// not routed as mentions.
func (c Classification) Counts() bool {
	return c == Countable || c == ReplyToOther
}

// Classifier holds the static inputs needed to classify messages.
type Classifier struct {
	BotName       string
	CommandPrefix string
	// IgnoredUsers is keyed by lowercase username.
	IgnoredUsers map[string]struct{}
}

// Classify applies the routing rules in order; the first match wins.
func (c Classifier) Classify(msg chat.Message) Classification {
	if msg.Echo {
		return SelfEcho
	}
	if _, ignored := c.IgnoredUsers[strings.ToLower(msg.Author)]; ignored {
		return IgnoredUser
	}

	botName := strings.ToLower(c.BotName)
	mentioned := botName != "" && strings.Contains(strings.ToLower(msg.Content), "@"+botName)

	replyToOther := false
	if trimmed := strings.TrimSpace(msg.Content); strings.HasPrefix(trimmed, "@") {
		first := strings.ToLower(strings.TrimLeft(strings.Fields(trimmed)[0], "@"))
		if first != botName {
			mentioned = false
			replyToOther = true
		}
	}

	switch {
	case mentioned:
		return BotMention
	case c.CommandPrefix != "" && strings.HasPrefix(msg.Content, c.CommandPrefix):
		return Command
	case replyToOther:
		return ReplyToOther
	default:
		return Countable
	}
}

// ParseCommand splits a command message into its name and arguments. ok is
// false when content does not carry the prefix or names no command.
func ParseCommand(content, prefix string) (name string, args []string, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}
