package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// extractPDF writes the document to a temporary file, reads its plain
// text, and removes the file again on every exit path.
func extractPDF(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return "", fmt.Errorf("writing temp file: %w", err)
	}

	f, reader, err := pdf.Open(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	defer f.Close()

	b, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	return buf.String(), nil
}
