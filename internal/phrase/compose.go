package phrase

import (
	"errors"
	"strings"
)

// ErrEmptyList is returned when a draw is attempted from an empty list.
var ErrEmptyList = errors.New("cannot pick from an empty list")

// Set is the static text inventory the bot draws from.
type Set struct {
	Phrases []string
	// UserPhrases is keyed by lowercase username.
	UserPhrases      map[string]string
	YesResponses     []string
	NoResponses      []string
	GenericResponses []string
}

var (
	noKeywords  = []string{"no", "nope", "nah", "negative", "disagree", "wrong"}
	yesKeywords = []string{"yes", "yeah", "yep", "yup", "agree", "correct", "right", "true"}
)

// MentionKind tells which response list a mention was answered from.
type MentionKind string

const (
	MentionNo      MentionKind = "no"
	MentionYes     MentionKind = "yes"
	MentionGeneric MentionKind = "generic"
)

// Pick returns a uniformly chosen element of list.
func Pick(rnd Rand, list []string) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptyList
	}
	return list[rnd.IntN(len(list))], nil
}

// PhraseFor returns the phrase to inject for author: their own override when
// one is configured, otherwise a random phrase.
func (s Set) PhraseFor(rnd Rand, author string) (string, error) {
	if p, ok := s.UserPhrases[strings.ToLower(author)]; ok {
		return p, nil
	}
	return Pick(rnd, s.Phrases)
}

// ClassifyMention decides which response list answers content. "No" keywords
// take priority over "yes" keywords. Matching is by plain substring, so
// "know" counts as "no" and "correction" as "correct".
func ClassifyMention(content string) MentionKind {
	lower := strings.ToLower(content)
	if containsAny(lower, noKeywords) {
		return MentionNo
	}
	if containsAny(lower, yesKeywords) {
		return MentionYes
	}
	return MentionGeneric
}

// MentionResponse picks a canned response for a mention.
func (s Set) MentionResponse(rnd Rand, content string) (MentionKind, string, error) {
	kind := ClassifyMention(content)
	var list []string
	switch kind {
	case MentionNo:
		list = s.NoResponses
	case MentionYes:
		list = s.YesResponses
	default:
		list = s.GenericResponses
	}
	resp, err := Pick(rnd, list)
	return kind, resp, err
}

// Compose appends phrase to content, keeping a trailing '.', '!' or '?' at
// the very end: "hello world!" + "in bed" gives "hello world in bed!".
func Compose(content, phrase string) string {
	content = strings.TrimSpace(content)
	punct := ""
	if n := len(content); n > 0 && strings.ContainsRune(".!?", rune(content[n-1])) {
		punct = content[n-1:]
		content = content[:n-1]
	}
	return content + " " + phrase + punct
}

// Reply addresses text to user.
func Reply(user, text string) string {
	return "@" + user + " " + text
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
