package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsBecomeMarkers(t *testing.T) {
	input := "# Title\n\nIntro text.\n\n## Subsection\n\nMore text here."
	p := &MarkdownParser{}
	res, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(res.Text, "# Title") {
		t.Errorf("missing level-1 marker:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "## Subsection") {
		t.Errorf("missing level-2 marker:\n%s", res.Text)
	}
	if !strings.Contains(res.Text, "Intro text.") || !strings.Contains(res.Text, "More text here.") {
		t.Errorf("paragraph text missing:\n%s", res.Text)
	}
}

func TestMarkdownParser_SetextHeadingNormalized(t *testing.T) {
	input := "Title\n=====\n\nBody text."
	p := &MarkdownParser{}
	res, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "# Title") {
		t.Errorf("setext heading should normalize to a marker line:\n%s", res.Text)
	}
	if strings.Contains(res.Text, "=====") {
		t.Errorf("setext underline should not survive:\n%s", res.Text)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := "Just a paragraph.\n\nAnd another."
	p := &MarkdownParser{}
	res, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(res.Text, "#") {
		t.Errorf("no markers expected:\n%s", res.Text)
	}
	if res.Title != "doc" {
		t.Errorf("title = %q, want doc", res.Title)
	}
}

func TestMarkdownParser_DeepHeadingLevelPreserved(t *testing.T) {
	input := "### Third Level\n\nText."
	p := &MarkdownParser{}
	res, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "### Third Level") {
		t.Errorf("level should be preserved:\n%s", res.Text)
	}
}
