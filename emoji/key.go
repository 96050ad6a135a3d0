// Package emoji extracts, counts and ranks emoji occurrences from Discord
// message content and reaction tallies.
package emoji

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Key identifies one emoji across message text and reactions. Standard
// Unicode emoji are keyed by their literal grapheme cluster. Custom emoji
// are keyed by numeric id only: renaming one server-side must keep
// accumulating onto the same key.
type Key string

const customPrefix = "custom:"

// CustomKey builds the key for a server-custom emoji id.
func CustomKey(id string) Key {
	return Key(customPrefix + id)
}

// KeyFor maps a reaction or registry emoji to its counting key.
func KeyFor(e *discordgo.Emoji) Key {
	if e.ID != "" {
		return CustomKey(e.ID)
	}
	return Key(e.Name)
}

// CustomID returns the numeric id of a custom-emoji key, or false for a
// standard one.
func (k Key) CustomID() (string, bool) {
	return strings.CutPrefix(string(k), customPrefix)
}
