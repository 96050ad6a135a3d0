package emoji

import "github.com/bwmarrin/discordgo"

// Registry is a snapshot of a guild's currently registered custom emoji,
// indexed by id. Taken once per report.
type Registry map[string]*discordgo.Emoji

// NewRegistry indexes a guild emoji listing.
func NewRegistry(list []*discordgo.Emoji) Registry {
	reg := make(Registry, len(list))
	for _, e := range list {
		reg[e.ID] = e
	}
	return reg
}

// Resolve maps a key to its renderable label. Standard emoji render as
// themselves. Custom emoji still in the registry render in their current
// form, picking up any rename; deleted ones fall back to the raw key, which
// keeps their historical usage reportable.
func (r Registry) Resolve(k Key) string {
	id, ok := k.CustomID()
	if !ok {
		return string(k)
	}
	if e, ok := r[id]; ok {
		return e.MessageFormat()
	}
	return string(k)
}
