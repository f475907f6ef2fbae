package twitch

import (
	"strings"

	"gopkg.in/irc.v4"
)

// nick returns the sender's nickname, or "" for server lines without a
// prefix.
func nick(m *irc.Message) string {
	if m.Prefix == nil {
		return ""
	}
	return m.Prefix.Name
}

// param returns the i-th parameter or "" when absent.
func param(m *irc.Message, i int) string {
	if i < 0 || i >= len(m.Params) {
		return ""
	}
	return m.Params[i]
}

// privmsgText returns the target channel and the text of a PRIVMSG. ok is
// false when the line carries no text parameter.
func privmsgText(m *irc.Message) (target, text string, ok bool) {
	if m.Command != "PRIVMSG" || len(m.Params) < 2 {
		return "", "", false
	}
	return m.Params[0], unwrapAction(m.Trailing()), true
}

// splitLines splits a WebSocket frame into IRC lines; one frame may carry
// several CRLF-terminated lines.
func splitLines(frame string) []string {
	parts := strings.Split(frame, "\n")
	lines := parts[:0]
	for _, p := range parts {
		if p = strings.TrimRight(p, "\r"); p != "" {
			lines = append(lines, p)
		}
	}
	return lines
}

// unwrapAction strips the CTCP ACTION wrapper used by /me messages.
func unwrapAction(text string) string {
	const open = "\x01ACTION "
	if strings.HasPrefix(text, open) {
		return strings.TrimSuffix(strings.TrimPrefix(text, open), "\x01")
	}
	return text
}

// sanitizeOutbound keeps an outbound message on one line and within limit
// characters.
func sanitizeOutbound(text string, limit int) string {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes)
}
