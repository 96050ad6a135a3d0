package emoji

import (
	"regexp"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// Tokenizer extracts emoji keys from message text, in order of appearance.
type Tokenizer interface {
	Tokenize(text string) []Key
}

// DefaultTokenizers is the composition the Counter runs over each message:
// standard Unicode emoji first, then server-custom markup.
var DefaultTokenizers = []Tokenizer{UnicodeTokenizer{}, CustomTokenizer{}}

// UnicodeTokenizer finds standard Unicode emoji. Text is segmented into
// grapheme clusters first, so multi-codepoint sequences (skin tones, ZWJ
// families, flags, keycaps) come out as single occurrences.
type UnicodeTokenizer struct{}

func (UnicodeTokenizer) Tokenize(text string) []Key {
	var keys []Key
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		if c := gr.Str(); gomoji.ContainsEmoji(c) {
			keys = append(keys, Key(c))
		}
	}
	return keys
}

// custom emoji render in message content as <:name:id>, or <a:name:id> for
// animated ones
var customPattern = regexp.MustCompile(`<a?:[\w~]+:(\d+)>`)

// CustomTokenizer finds server-custom emoji markup. Only the numeric id
// ends up in the key.
type CustomTokenizer struct{}

func (CustomTokenizer) Tokenize(text string) []Key {
	var keys []Key
	for _, m := range customPattern.FindAllStringSubmatch(text, -1) {
		keys = append(keys, CustomKey(m[1]))
	}
	return keys
}
