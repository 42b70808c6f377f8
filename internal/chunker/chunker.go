// Package chunker partitions document text into short reading chunks of
// bounded word count, optionally tagged with the enclosing section's
// heading.
package chunker

import (
	"regexp"
	"strings"
)

// Chunk is the durable unit of reading text. Context is the enclosing
// section's heading, empty when the source has no heading structure.
type Chunk struct {
	Text    string `json:"text"`
	Context string `json:"context,omitempty"`
}

// Options controls chunking behavior.
type Options struct {
	// StructuralChunking respects Markdown-style heading boundaries and
	// tags chunks with their section heading. When disabled, heading
	// lines fold into the text as ordinary lines.
	StructuralChunking bool
	// MaxWords is the target upper bound per chunk.
	MaxWords int
}

// DefaultOptions returns the standard reading configuration.
func DefaultOptions() Options {
	return Options{
		StructuralChunking: true,
		MaxWords:           50,
	}
}

var (
	anyHeadingRe  = regexp.MustCompile(`(?m)^#{1,6}\s+.+`)
	headingLineRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
)

// section is a contiguous span of source text under one heading.
// Header is empty only for leading content before any heading.
type section struct {
	header  string
	content string
}

// ChunkText splits text into ordered reading chunks. Empty or
// whitespace-only input yields an empty sequence, never an error.
func ChunkText(text string, opts Options) []Chunk {
	if opts.MaxWords <= 0 {
		opts.MaxWords = 50
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return []Chunk{}
	}

	if opts.StructuralChunking && anyHeadingRe.MatchString(text) {
		return chunkSections(parseSections(text), opts.MaxWords)
	}
	return chunkFlat(text, opts.MaxWords)
}

// parseSections scans lines and groups non-heading content under the
// most recent heading. Content-less sections are dropped; only sections
// that end up with content produce chunks.
func parseSections(text string) []section {
	var sections []section
	var header string
	var content []string

	flush := func() {
		body := strings.TrimSpace(strings.Join(content, "\n"))
		if body != "" {
			sections = append(sections, section{header: header, content: body})
		}
		content = content[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if m := headingLineRe.FindStringSubmatch(line); m != nil {
			flush()
			header = strings.TrimSpace(m[2])
			continue
		}
		content = append(content, line)
	}
	flush()

	return sections
}

// chunkSections packs each section independently, tagging every chunk
// with the section header.
func chunkSections(sections []section, maxWords int) []Chunk {
	chunks := []Chunk{}
	for _, sec := range sections {
		body := collapseWhitespace(sec.content)
		if body == "" {
			continue
		}
		for _, text := range packSentences(splitSentences(body), maxWords) {
			chunks = append(chunks, Chunk{Text: text, Context: sec.header})
		}
	}
	return chunks
}

// chunkFlat applies sentence packing to the whole text as one untagged
// section.
func chunkFlat(text string, maxWords int) []Chunk {
	chunks := []Chunk{}
	for _, t := range packSentences(splitSentences(collapseWhitespace(text)), maxWords) {
		chunks = append(chunks, Chunk{Text: t})
	}
	return chunks
}

// packSentences greedily accumulates sentences up to maxWords per chunk.
// A sentence that alone exceeds maxWords is hard-split after flushing
// whatever is pending.
func packSentences(sentences []string, maxWords int) []string {
	var out []string
	var cur []string
	curWords := 0

	flush := func() {
		if len(cur) > 0 {
			out = append(out, strings.Join(cur, " "))
			cur = cur[:0]
			curWords = 0
		}
	}

	for _, sent := range sentences {
		words := strings.Fields(sent)
		if len(words) == 0 {
			continue
		}
		if len(words) > maxWords {
			flush()
			out = append(out, hardSplit(words, maxWords)...)
			continue
		}
		if curWords+len(words) > maxWords {
			flush()
		}
		cur = append(cur, sent)
		curWords += len(words)
	}
	flush()

	return out
}

// hardSplit cuts an over-length sentence into pieces of at most maxWords
// words. At each cut it scans back up to ten words for a clause break
// and prefers cutting there.
func hardSplit(words []string, maxWords int) []string {
	var parts []string
	start := 0
	for len(words)-start > maxWords {
		cut := start + maxWords
		for i := cut; i > cut-10 && i > start; i-- {
			if endsWithClauseBreak(words[i-1]) {
				cut = i
				break
			}
		}
		parts = append(parts, strings.Join(words[start:cut], " "))
		start = cut
	}
	if start < len(words) {
		parts = append(parts, strings.Join(words[start:], " "))
	}
	return parts
}

func endsWithClauseBreak(word string) bool {
	for _, suffix := range []string{",", ";", ":", "-", "—"} {
		if strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// WordCount counts non-empty whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
