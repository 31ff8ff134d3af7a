package ingest

import "strings"

// chunk parameters: small enough to fit several chunks into one prompt,
// with an overlap so sentences cut at a boundary survive in the neighbor.
const (
	defaultChunkSize    = 500
	defaultChunkOverlap = 50
)

var chunkSeparators = []string{"\n\n", "\n", ". ", " "}

// ChunkText splits text into chunks of at most chunkSize characters,
// preferring paragraph then sentence then word boundaries, with
// chunkOverlap characters carried between neighbors.
func ChunkText(text string, chunkSize, chunkOverlap int) []string {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = defaultChunkOverlap
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= chunkSize {
			chunks = append(chunks, text)
			break
		}

		cut := findCut(text, chunkSize)
		chunks = append(chunks, strings.TrimSpace(text[:cut]))

		next := cut - chunkOverlap
		if next <= 0 {
			next = cut
		}
		text = strings.TrimLeft(text[next:], " \n")
	}

	// Drop empty chunks produced by runs of separators
	out := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// findCut picks the latest separator boundary within the size budget,
// falling back to a hard cut when the text has no separators at all.
func findCut(text string, chunkSize int) int {
	window := text[:chunkSize]
	for _, sep := range chunkSeparators {
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return idx + len(sep)
		}
	}
	return chunkSize
}
