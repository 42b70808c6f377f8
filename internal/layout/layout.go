// Package layout reconstructs reading text from positioned PDF glyph
// runs and annotates lines that look like section titles with
// Markdown-style heading markers.
package layout

import (
	"strings"
)

// TextItem is one glyph run extracted from a PDF page.
type TextItem struct {
	Text       string  // Run content
	FontHeight float64 // Font size in points
	BaselineY  float64 // Page-local vertical position
	PageNumber int     // 1-indexed source page
}

// Baseline deltas between consecutive runs, in points.
const (
	sameLineTolerance  = 5.0  // Within this delta, runs share a visual line.
	paragraphTolerance = 15.0 // Beyond this delta, a paragraph break separates lines.
)

// headingScale is applied to the document's mean font height to obtain
// the heading threshold.
const headingScale = 1.2

// line is a reconstructed visual line with the layout evidence needed
// for heading classification.
type line struct {
	text      string
	maxHeight float64
	sep       string // Separator emitted before this line: "", "\n" or "\n\n".
}

// AnnotateHeadings converts extracted text items into a single plain-text
// string where inferred section titles appear as "# Title" lines
// surrounded by blank lines. Items must be in extraction (reading) order.
// The heading threshold is a whole-document statistic, so all items are
// materialized before classification.
func AnnotateHeadings(items []TextItem) string {
	if len(items) == 0 {
		return ""
	}

	lines := reconstructLines(items)
	threshold := headingThreshold(items)

	var out strings.Builder
	for _, ln := range lines {
		text := strings.TrimSpace(ln.text)
		if text == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteString(ln.sep)
		}
		if isHeadingLine(text, ln.maxHeight, threshold) {
			out.WriteString("\n\n# ")
			out.WriteString(text)
			out.WriteString("\n\n")
		} else {
			out.WriteString(text)
		}
	}

	return normalize(out.String())
}

// headingThreshold returns mean font height times headingScale,
// ignoring items without a positive height.
func headingThreshold(items []TextItem) float64 {
	var sum float64
	var n int
	for _, it := range items {
		if it.FontHeight > 0 {
			sum += it.FontHeight
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return (sum / float64(n)) * headingScale
}

// reconstructLines groups consecutive items into visual lines using
// baseline deltas. A page change always flushes the current line and
// separates with a page break.
func reconstructLines(items []TextItem) []line {
	var lines []line
	var cur line

	flush := func(sep string) {
		if strings.TrimSpace(cur.text) != "" {
			lines = append(lines, cur)
		}
		cur = line{sep: sep}
	}

	for i, it := range items {
		if i == 0 {
			cur.text = it.Text
			cur.maxHeight = it.FontHeight
			continue
		}
		prev := items[i-1]

		if it.PageNumber != prev.PageNumber {
			flush("\n\n")
		} else {
			delta := it.BaselineY - prev.BaselineY
			if delta < 0 {
				delta = -delta
			}
			switch {
			case delta <= sameLineTolerance:
				cur.text += it.Text
				if it.FontHeight > cur.maxHeight {
					cur.maxHeight = it.FontHeight
				}
				continue
			case delta > paragraphTolerance:
				flush("\n\n")
			default:
				flush("\n")
			}
		}

		cur.text = it.Text
		cur.maxHeight = it.FontHeight
	}
	flush("")

	return lines
}
