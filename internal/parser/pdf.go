package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/readbit/internal/layout"
)

// PDFParser handles PDF files. The native path extracts positioned
// glyph runs and infers headings from font metrics; the optional
// pdftotext fallback yields plain text without metrics, which flows
// through flat chunking.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*Result, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "readbit-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractAnnotatedText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	return &Result{
		Title: titleFromFilename(filename),
		Text:  text,
	}, nil
}

// extractAnnotatedText materializes every glyph run in the document and
// hands them to the layout pass. Any page-level extraction error is
// fatal for the document: no partial result is returned.
func extractAnnotatedText(path string) (text string, err error) {
	// The pdf library panics on some malformed files; surface that as a
	// normal extraction error instead of taking the process down.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction panicked: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var items []layout.TextItem
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		for _, t := range page.Content().Text {
			if strings.TrimSpace(t.S) == "" && t.S != " " {
				continue
			}
			items = append(items, layout.TextItem{
				Text:       t.S,
				FontHeight: t.FontSize,
				BaselineY:  t.Y,
				PageNumber: i,
			})
		}
	}

	return layout.AnnotateHeadings(items), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
