package transition

import "github.com/rivo/uniseg"

// TokenizeFunc splits text into tokens whose concatenation is the input.
type TokenizeFunc func(text string) []string

// Words splits text at Unicode word boundaries. Runs of whitespace and each
// punctuation mark form their own tokens, and a line break is always a
// separate token.
func Words(text string) []string {
	var tokens []string
	state := -1
	for text != "" {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		tokens = append(tokens, word)
	}
	return tokens
}
