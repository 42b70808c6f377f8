package chunker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Abbreviations whose trailing period must not end a sentence.
var abbreviations = map[string]struct{}{
	"mr.":   {},
	"mrs.":  {},
	"ms.":   {},
	"dr.":   {},
	"prof.": {},
	"sr.":   {},
	"jr.":   {},
	"vs.":   {},
	"etc.":  {},
	"i.e.":  {},
	"e.g.":  {},
}

// splitSentences walks the text word by word. A word ending in '.', '!'
// or '?' that is not a known abbreviation closes the sentence when it is
// the last word or the next word starts with an upper-case letter. The
// trailing partial sentence, if any, is emitted as-is.
func splitSentences(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var sentences []string
	var cur []string

	for i, word := range words {
		cur = append(cur, word)
		if !endsSentence(word) {
			continue
		}
		if i == len(words)-1 || startsUpper(words[i+1]) {
			sentences = append(sentences, strings.Join(cur, " "))
			cur = cur[:0]
		}
	}
	if len(cur) > 0 {
		sentences = append(sentences, strings.Join(cur, " "))
	}

	return sentences
}

func endsSentence(word string) bool {
	if !strings.HasSuffix(word, ".") && !strings.HasSuffix(word, "!") && !strings.HasSuffix(word, "?") {
		return false
	}
	_, abbr := abbreviations[strings.ToLower(word)]
	return !abbr
}

func startsUpper(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}
