// Package extract turns uploaded document bytes into plain text.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the declared document format of an upload.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ErrUnsupportedFormat is returned for uploads that are neither PDF nor DOCX.
var ErrUnsupportedFormat = errors.New("only PDF and DOCX files are supported")

// ErrCorruptDocument is returned when a document of a supported format
// cannot be parsed.
var ErrCorruptDocument = errors.New("document could not be parsed")

// FormatFromFilename maps a filename extension to a Format.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Extractor converts raw document bytes into plain text.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract returns the plain text of the document. The input bytes are not
// retained; any temporary artifacts created during extraction are removed
// before Extract returns, on success and failure alike.
func (e *Extractor) Extract(data []byte, format Format) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", ErrCorruptDocument)
	}
	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	default:
		return "", ErrUnsupportedFormat
	}
}
