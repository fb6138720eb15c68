package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// documentXML mirrors the parts of word/document.xml we care about.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// extractDOCX reads the WordprocessingML main document part out of the
// DOCX zip container and flattens it to paragraph-separated plain text.
func extractDOCX(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
		}
		return parseDocumentXML(content)
	}
	return "", fmt.Errorf("%w: missing word/document.xml", ErrCorruptDocument)
}

func parseDocumentXML(content []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(content, &doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var result strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			result.WriteString("\n\n")
		}
		for _, r := range para.Runs {
			for _, t := range r.Text {
				result.WriteString(t.Content)
			}
		}
	}
	return strings.TrimSpace(result.String()), nil
}
