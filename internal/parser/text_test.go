package parser

import (
	"strings"
	"testing"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	res, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", res.Title)
	}
	paragraphs := strings.Split(res.Text, "\n\n")
	if len(paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d", len(paragraphs))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		if paragraphs[i] != w {
			t.Errorf("paragraph[%d]: expected %q, got %q", i, w, paragraphs[i])
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	res, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "" {
		t.Errorf("expected empty text, got %q", res.Text)
	}
}

func TestTextParser_MultipleBlankLines(t *testing.T) {
	// Runs of blank lines must not produce empty paragraphs.
	input := "Para one.\n\n\n\nPara two."
	p := &TextParser{}
	res, err := p.Parse(strings.NewReader(input), "gaps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "Para one.\n\nPara two." {
		t.Errorf("got %q", res.Text)
	}
}

func TestTextParser_HeadingMarkersSurvive(t *testing.T) {
	// Authored markers in a plain text file pass through unchanged.
	input := "# Chapter One\n\nIt begins."
	p := &TextParser{}
	res, err := p.Parse(strings.NewReader(input), "book.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(res.Text, "# Chapter One") {
		t.Errorf("heading marker lost: %q", res.Text)
	}
}

func TestForFile_SupportedFormats(t *testing.T) {
	for _, name := range []string{"a.txt", "a.md", "a.csv", "a.html", "a.pdf", "a.docx"} {
		if _, err := ForFile(name); err != nil {
			t.Errorf("ForFile(%q): %v", name, err)
		}
	}
	if _, err := ForFile("a.xyz"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("Report.PDF") {
		t.Error("extension check should be case-insensitive")
	}
	if IsSupportedExtension("archive.zip") {
		t.Error("zip must not be supported")
	}
}
