package services

import "strings"

// Moderator rejects content containing any denylist entry as a
// case-insensitive substring. Substring, not token: "diet" trips on "die".
// The list itself is configuration data.
type Moderator struct {
	denylist []string
}

func NewModerator(denylist []string) *Moderator {
	lowered := make([]string, 0, len(denylist))
	for _, word := range denylist {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" {
			lowered = append(lowered, word)
		}
	}
	return &Moderator{denylist: lowered}
}

func (m *Moderator) IsAllowed(text string) bool {
	text = strings.ToLower(text)
	for _, word := range m.denylist {
		if strings.Contains(text, word) {
			return false
		}
	}
	return true
}
