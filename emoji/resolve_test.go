package emoji_test

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emotally/emotally/emoji"
)

func TestKeyFor(t *testing.T) {
	custom := emoji.KeyFor(&discordgo.Emoji{ID: "123", Name: "wave"})
	assert.Equal(t, emoji.CustomKey("123"), custom)

	id, ok := custom.CustomID()
	require.True(t, ok)
	assert.Equal(t, "123", id)

	standard := emoji.KeyFor(&discordgo.Emoji{Name: "😀"})
	assert.Equal(t, emoji.Key("😀"), standard)
	_, ok = standard.CustomID()
	assert.False(t, ok)
}

func TestResolveLiveCustomEmoji(t *testing.T) {
	reg := emoji.NewRegistry([]*discordgo.Emoji{
		{ID: "123", Name: "wave"},
		{ID: "42", Name: "party", Animated: true},
	})

	assert.Equal(t, "<:wave:123>", reg.Resolve(emoji.CustomKey("123")))
	assert.Equal(t, "<a:party:42>", reg.Resolve(emoji.CustomKey("42")))
}

func TestResolveFollowsRename(t *testing.T) {
	// historical text stored the key under the old name; the label comes
	// from the registry's current one
	reg := emoji.NewRegistry([]*discordgo.Emoji{{ID: "123", Name: "hello"}})

	assert.Equal(t, "<:hello:123>", reg.Resolve(emoji.CustomKey("123")))
}

func TestResolveDeletedCustomEmojiFallsBack(t *testing.T) {
	reg := emoji.NewRegistry(nil)

	assert.Equal(t, "custom:999", reg.Resolve(emoji.CustomKey("999")))
}

func TestResolveStandardEmoji(t *testing.T) {
	reg := emoji.NewRegistry(nil)

	assert.Equal(t, "😀", reg.Resolve("😀"))
}
