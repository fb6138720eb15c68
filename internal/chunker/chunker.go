// Package chunker splits extracted document text into overlapping
// fixed-size segments for embedding.
package chunker

import (
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
)

const (
	// DefaultChunkSize is the target chunk length in characters.
	DefaultChunkSize = 1000
	// DefaultOverlap is the number of characters shared between
	// consecutive chunks.
	DefaultOverlap = 200
)

// Splitter cuts text into chunks of at most chunkSize characters with the
// configured overlap, preferring to break on a paragraph boundary, then a
// sentence end, then a word boundary, before falling back to a hard cut.
type Splitter struct {
	chunkSize int
	overlap   int
}

// New returns a Splitter. Non-positive size or overlap fall back to the
// defaults; overlap is clamped below the chunk size.
func New(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultOverlap
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split cuts text into ordered chunks. Every character of the input is
// covered by at least one chunk and no chunk exceeds the target size.
// Empty input yields no chunks.
func (s *Splitter) Split(text string) []domain.Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	var chunks []domain.Chunk
	start := 0
	for start < len(runes) {
		end := start + s.chunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = s.cut(runes, start, end)
		}
		chunks = append(chunks, domain.Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
		})
		if end == len(runes) {
			break
		}
		start = end - s.overlap
	}
	return chunks
}

// cut picks the boundary to end a chunk at, searching backwards from end.
// Boundaries closer to start than overlap+1 are ignored so the next chunk
// always makes forward progress.
func (s *Splitter) cut(runes []rune, start, end int) int {
	floor := start + s.overlap + 1

	// Paragraph break: cut after the blank line.
	for i := end - 1; i > floor; i-- {
		if runes[i-1] == '\n' && runes[i] == '\n' {
			return i + 1
		}
	}
	// Sentence end followed by whitespace.
	for i := end - 1; i > floor; i-- {
		if isSentenceEnd(runes[i-1]) && isSpace(runes[i]) {
			return i + 1
		}
	}
	// Word boundary.
	for i := end - 1; i > floor; i-- {
		if isSpace(runes[i]) {
			return i + 1
		}
	}
	// Hard character cut.
	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
