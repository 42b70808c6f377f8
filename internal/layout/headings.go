package layout

import (
	"regexp"
	"strings"
	"unicode"
)

// A line qualifies as a heading by layout evidence (oversized font and
// short) or by textual pattern alone.
const maxHeadingWords = 8

var headingPatterns = []*regexp.Regexp{
	// "Chapter IV", "Chapter 12"
	regexp.MustCompile(`(?i)^chapter\s+([ivxlcdm]+|\d+)\b`),
	// "Section 3.2"
	regexp.MustCompile(`(?i)^section\s+\d+(\.\d+)*\b`),
	// Dotted numeric outline: "1.2 Title", "3.4.1 Results"
	regexp.MustCompile(`^\d+(\.\d+)+\s+\S`),
	// Roman numeral heading: "IV. Methods"
	regexp.MustCompile(`^[IVXLCDM]+\.\s+[A-Z]`),
}

var headingKeywords = []string{
	"introduction", "conclusion", "abstract", "summary", "overview",
	"background", "methodology", "results", "discussion", "references",
	"appendix", "acknowledgment", "acknowledgments",
}

// isHeadingLine decides heading status for a reconstructed line.
// threshold is the document-wide font height cutoff; a zero threshold
// disables the layout test (no usable font metrics).
func isHeadingLine(text string, maxHeight, threshold float64) bool {
	words := strings.Fields(text)
	if len(words) == 0 {
		return false
	}
	if threshold > 0 && maxHeight > threshold && len(words) <= maxHeadingWords {
		return true
	}
	return matchesHeadingPattern(text, words)
}

func matchesHeadingPattern(text string, words []string) bool {
	for _, re := range headingPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	if len(words) >= 2 && len(words) <= maxHeadingWords && isAllUpper(text) {
		return true
	}
	first := strings.ToLower(strings.TrimRight(words[0], ".:"))
	for _, kw := range headingKeywords {
		if first == kw {
			return true
		}
	}
	return false
}

// isAllUpper reports whether text contains at least one letter and no
// lower-case letters.
func isAllUpper(text string) bool {
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

var (
	hyphenBreakRe    = regexp.MustCompile(`-\n([a-zA-Z])`)
	spaceRunRe       = regexp.MustCompile(`[ \t]+`)
	leadingSpaceRe   = regexp.MustCompile(`(?m)^ +`)
	newlineRunRe     = regexp.MustCompile(`\n{4,}`)
	headingSpacingRe = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+`)
	headingBlockRe   = regexp.MustCompile(`\n{2,}(#{1,6} [^\n]*)\n{2,}`)
)

// normalize cleans up assembled text: joins hyphenation breaks, expands
// form feeds to blank lines, collapses space runs, strips per-line
// leading spaces, caps newline runs at three, and tightens spacing
// around heading markers.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\f", "\n\n")
	text = hyphenBreakRe.ReplaceAllString(text, "$1")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = leadingSpaceRe.ReplaceAllString(text, "")
	text = newlineRunRe.ReplaceAllString(text, "\n\n\n")
	text = headingSpacingRe.ReplaceAllString(text, "$1 ")
	text = headingBlockRe.ReplaceAllString(text, "\n\n$1\n\n")
	return strings.TrimSpace(text)
}
