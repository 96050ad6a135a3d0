package emoji_test

import (
	"strconv"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emotally/emotally/emoji"
)

func message(content string, reactions ...*discordgo.MessageReactions) *discordgo.Message {
	return &discordgo.Message{Content: content, Reactions: reactions}
}

func reaction(name, id string, count int) *discordgo.MessageReactions {
	return &discordgo.MessageReactions{
		Count: count,
		Emoji: &discordgo.Emoji{Name: name, ID: id},
	}
}

func TestCounterIgnoresEmojilessMessages(t *testing.T) {
	c := emoji.NewCounter()
	c.CountMessage(message("no emoji here, just text"))
	c.CountMessage(message(""))

	assert.Zero(t, c.Len())
	assert.Empty(t, c.Ranked())
}

func TestCounterMergesTextAndReactionTallies(t *testing.T) {
	// two 😀 in one message, one more in a second, plus an 😂 reaction
	// applied by three users
	c := emoji.NewCounter()
	c.CountMessage(message("😀😀"))
	c.CountMessage(message("😀", reaction("😂", "", 3)))

	require.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.Get("😀"))
	assert.Equal(t, 3, c.Get("😂"))

	ranked := c.Ranked()
	require.Len(t, ranked, 2)
	// tied counts keep discovery order
	assert.Equal(t, emoji.Entry{Key: "😀", Count: 3}, ranked[0])
	assert.Equal(t, emoji.Entry{Key: "😂", Count: 3}, ranked[1])
}

func TestCounterOrderIndependence(t *testing.T) {
	msgs := []*discordgo.Message{
		message("😀 <:wave:123>"),
		message("😂😂", reaction("wave", "123", 2)),
		message("", reaction("😀", "", 5)),
	}

	forward := emoji.NewCounter()
	for _, m := range msgs {
		forward.CountMessage(m)
	}
	backward := emoji.NewCounter()
	for i := len(msgs) - 1; i >= 0; i-- {
		backward.CountMessage(msgs[i])
	}

	require.Equal(t, forward.Len(), backward.Len())
	for _, k := range []emoji.Key{"😀", "😂", emoji.CustomKey("123")} {
		assert.Equal(t, forward.Get(k), backward.Get(k), "key %s", k)
	}
}

func TestReactionTallyAddsItsCount(t *testing.T) {
	c := emoji.NewCounter()
	c.CountMessage(message("", reaction("🔥", "", 4)))

	assert.Equal(t, 4, c.Get("🔥"))
}

func TestRenameAccumulatesOnOneKey(t *testing.T) {
	// same id under two display names, as text written before and after a
	// rename would carry
	c := emoji.NewCounter()
	c.CountText("<:wave:123>")
	c.CountText("<:hello:123>")
	c.CountMessage(message("", reaction("hello", "123", 1)))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Get(emoji.CustomKey("123")))
}

func TestNoDeduplicationAcrossSources(t *testing.T) {
	// inline 👍 and a 👍 reaction on the same message both count
	c := emoji.NewCounter()
	c.CountMessage(message("👍", reaction("👍", "", 2)))

	assert.Equal(t, 3, c.Get("👍"))
}

func TestTopTruncatesInDescendingOrder(t *testing.T) {
	c := emoji.NewCounter()
	for i := 0; i < 25; i++ {
		c.Add(emoji.CustomKey(strconv.Itoa(i)), 25-i)
	}

	top := c.Top(20)
	require.Len(t, top, 20)
	for i, e := range top {
		assert.Equal(t, emoji.CustomKey(strconv.Itoa(i)), e.Key)
		assert.Equal(t, 25-i, e.Count)
	}
}

func TestAddIgnoresNonPositiveTallies(t *testing.T) {
	c := emoji.NewCounter()
	c.Add("😀", 0)
	c.Add("😀", -2)

	assert.Zero(t, c.Len())
}
