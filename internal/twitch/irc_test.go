package twitch

import (
	"testing"

	"gopkg.in/irc.v4"
)

func mustParse(t *testing.T, raw string) *irc.Message {
	t.Helper()

	m, err := irc.ParseMessage(raw)
	if err != nil {
		t.Fatalf("ParseMessage(%q) error = %v", raw, err)
	}
	return m
}

func TestPrivmsgText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		wantTarget string
		wantText   string
		wantOK     bool
	}{
		{
			name:       "plain message",
			raw:        "@display-name=Alice :alice!alice@alice.tmi.twitch.tv PRIVMSG #chan :hello there!",
			wantTarget: "#chan",
			wantText:   "hello there!",
			wantOK:     true,
		},
		{
			name:       "action is unwrapped",
			raw:        ":bob!bob@bob.tmi.twitch.tv PRIVMSG #chan :\x01ACTION waves\x01",
			wantTarget: "#chan",
			wantText:   "waves",
			wantOK:     true,
		},
		{
			name: "no text parameter",
			raw:  ":bob!bob@bob.tmi.twitch.tv PRIVMSG #chan",
		},
		{
			name: "not a privmsg",
			raw:  "PING :tmi.twitch.tv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target, text, ok := privmsgText(mustParse(t, tt.raw))
			if ok != tt.wantOK || target != tt.wantTarget || text != tt.wantText {
				t.Errorf("privmsgText() = %q, %q, %v; want %q, %q, %v",
					target, text, ok, tt.wantTarget, tt.wantText, tt.wantOK)
			}
		})
	}
}

func TestNickAndParam(t *testing.T) {
	t.Parallel()

	m := mustParse(t, ":bob!bob@bob.tmi.twitch.tv JOIN #chan")
	if got := nick(m); got != "bob" {
		t.Errorf("nick() = %q, want %q", got, "bob")
	}
	if got := param(m, 0); got != "#chan" {
		t.Errorf("param(0) = %q, want %q", got, "#chan")
	}
	if got := param(m, 3); got != "" {
		t.Errorf("param(3) = %q, want empty", got)
	}

	if got := nick(mustParse(t, "PING :tmi.twitch.tv")); got != "" {
		t.Errorf("nick() without prefix = %q, want empty", got)
	}
}

func TestTagsAreUnescaped(t *testing.T) {
	t.Parallel()

	m := mustParse(t, `@msg-id=sub;system-msg=hi\sthere :tmi.twitch.tv USERNOTICE #chan`)
	if got := m.Tags["system-msg"]; got != "hi there" {
		t.Errorf("system-msg tag = %q, want %q", got, "hi there")
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	got := splitLines("PING :a\r\n:x 001 bot :hi\r\n\r\n")
	if len(got) != 2 || got[0] != "PING :a" || got[1] != ":x 001 bot :hi" {
		t.Errorf("splitLines() = %q", got)
	}
}

func TestUnwrapAction(t *testing.T) {
	t.Parallel()

	if got := unwrapAction("\x01ACTION waves\x01"); got != "waves" {
		t.Errorf("unwrapAction() = %q, want %q", got, "waves")
	}
	if got := unwrapAction("plain"); got != "plain" {
		t.Errorf("unwrapAction() = %q, want %q", got, "plain")
	}
}

func TestSanitizeOutbound(t *testing.T) {
	t.Parallel()

	if got := sanitizeOutbound("a\r\nb\nc", 100); got != "a b c" {
		t.Errorf("sanitizeOutbound() = %q, want %q", got, "a b c")
	}
	if got := sanitizeOutbound("héllo", 2); got != "hé" {
		t.Errorf("sanitizeOutbound() = %q, want %q", got, "hé")
	}
}
