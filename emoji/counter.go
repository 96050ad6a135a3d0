package emoji

import (
	"slices"

	"github.com/bwmarrin/discordgo"
)

// Counter accumulates emoji occurrences into a frequency map. Distinct keys
// are also recorded in discovery order, so ranking can break count ties by
// first appearance. A Counter is built fresh per report and is not safe for
// concurrent use.
type Counter struct {
	counts     map[Key]int
	order      []Key
	tokenizers []Tokenizer
}

func NewCounter() *Counter {
	return &Counter{
		counts:     make(map[Key]int),
		tokenizers: DefaultTokenizers,
	}
}

// Add records n further occurrences of k.
func (c *Counter) Add(k Key, n int) {
	if n <= 0 {
		return
	}
	if _, seen := c.counts[k]; !seen {
		c.order = append(c.order, k)
	}
	c.counts[k] += n
}

// CountText tallies every emoji occurrence in a message body.
func (c *Counter) CountText(text string) {
	for _, t := range c.tokenizers {
		for _, k := range t.Tokenize(text) {
			c.Add(k, 1)
		}
	}
}

// CountMessage tallies a message's text and its reactions. A reaction entry
// already aggregates every user who applied it, so its count is added
// as-is, never as a single occurrence.
func (c *Counter) CountMessage(m *discordgo.Message) {
	c.CountText(m.Content)
	for _, r := range m.Reactions {
		if r == nil || r.Emoji == nil {
			continue
		}
		c.Add(KeyFor(r.Emoji), r.Count)
	}
}

// Get returns the tally for k, zero if never seen.
func (c *Counter) Get(k Key) int {
	return c.counts[k]
}

// Len returns the number of distinct emoji seen so far.
func (c *Counter) Len() int {
	return len(c.counts)
}

// Entry is one ranked result.
type Entry struct {
	Key   Key
	Count int
}

// Ranked returns all entries sorted by count descending. Equal counts keep
// discovery order.
func (c *Counter) Ranked() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		entries = append(entries, Entry{Key: k, Count: c.counts[k]})
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Count - a.Count
	})
	return entries
}

// Top returns at most n highest-ranked entries.
func (c *Counter) Top(n int) []Entry {
	entries := c.Ranked()
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
