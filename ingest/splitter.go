package ingest

import (
	"strings"
)

// Default window geometry for standards text. 1000 characters keeps a full
// principle statement in one chunk; 150 characters of overlap means no
// passage is split at a boundary without redundancy on both sides.
const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 150
)

// separators, coarsest first. A segment that still exceeds the window after
// the last separator is an indivisible unit and is kept whole.
var separators = []string{"\n\n", "\n", ". ", " "}

// Splitter cuts document text into overlapping windows.
type Splitter struct {
	chunkSize int
	overlap   int
}

func NewSplitter(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultOverlap
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}
}

// Split returns the chunk texts for one document. Each chunk is at most
// chunkSize characters unless a single indivisible unit is larger than the
// window; adjacent chunks share roughly overlap characters.
func (s *Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	units := s.splitUnits(text, 0)

	var chunks []string
	var window []string
	windowLen := 0

	flush := func() {
		if windowLen == 0 {
			return
		}
		chunk := strings.TrimSpace(strings.Join(window, " "))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		// Carry the trailing units into the next window as overlap.
		var carry []string
		carryLen := 0
		for i := len(window) - 1; i >= 0; i-- {
			if carryLen+len(window[i]) > s.overlap {
				break
			}
			carry = append([]string{window[i]}, carry...)
			carryLen += len(window[i]) + 1
		}
		window = carry
		windowLen = carryLen
	}

	for _, unit := range units {
		if windowLen > 0 && windowLen+len(unit) > s.chunkSize {
			flush()
			// Shrink the carry so the overlap never pushes a chunk past
			// the window.
			for len(window) > 0 && windowLen+len(unit) > s.chunkSize {
				windowLen -= len(window[0]) + 1
				window = window[1:]
			}
		}
		window = append(window, unit)
		windowLen += len(unit) + 1
	}
	if windowLen > 0 {
		chunk := strings.TrimSpace(strings.Join(window, " "))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	return chunks
}

// splitUnits recursively breaks text on ever finer separators until every
// unit fits the window or no separator is left.
func (s *Splitter) splitUnits(text string, sepIdx int) []string {
	if len(text) <= s.chunkSize || sepIdx >= len(separators) {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	sep := separators[sepIdx]
	parts := strings.Split(text, sep)
	if len(parts) == 1 {
		return s.splitUnits(text, sepIdx+1)
	}

	var units []string
	for i, part := range parts {
		// Keep sentence-final punctuation with its sentence.
		if sep == ". " && i < len(parts)-1 {
			part += "."
		}
		units = append(units, s.splitUnits(part, sepIdx+1)...)
	}
	return units
}
