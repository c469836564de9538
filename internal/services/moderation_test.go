package services

import (
	"testing"

	"github.com/minitwitter/minitwitter/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestModeratorSubstringMatch(t *testing.T) {
	m := NewModerator(config.DefaultBannedWords)

	assert.True(t, m.IsAllowed("hello world"))
	assert.True(t, m.IsAllowed("what a lovely class"))

	assert.False(t, m.IsAllowed("I hate mondays"))
	assert.False(t, m.IsAllowed("kill yourself"))

	// Substring, not token: innocuous words containing a banned entry
	// are blocked too.
	assert.False(t, m.IsAllowed("starting my new diet today"))
	assert.False(t, m.IsAllowed("the soldier died in the novel"))
}

func TestModeratorCaseInsensitive(t *testing.T) {
	m := NewModerator([]string{"spoiler"})

	assert.False(t, m.IsAllowed("SPOILER alert"))
	assert.False(t, m.IsAllowed("SpOiLeR"))
	assert.True(t, m.IsAllowed("spoil"))
}

func TestModeratorConfigurableList(t *testing.T) {
	m := NewModerator([]string{"  Banana  ", ""})

	assert.False(t, m.IsAllowed("banana bread"))
	assert.True(t, m.IsAllowed("apple pie"))
}

func TestModeratorEmptyList(t *testing.T) {
	m := NewModerator(nil)

	assert.True(t, m.IsAllowed("anything goes"))
}
