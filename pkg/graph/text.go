package graph

import "strings"

// ChunkSize is the maximum chunk length, in runes, handed to an Extractor in
// one call. The bound exists because extractors have a practical
// input-length limit.
const ChunkSize = 2000

// ChunkText splits text into pieces of at most size runes, preserving order.
func ChunkText(text string, size int) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for len(runes) > 0 {
		n := size
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}

// trailingSections are the article appendix headings after which no prose
// worth extracting appears.
var trailingSections = []string{
	"== References ==",
	"== See also ==",
	"== External links ==",
}

// TruncateSections cuts article content before any trailing reference
// section, so citation lists do not pollute entity extraction.
func TruncateSections(content string) string {
	cut := len(content)
	for _, heading := range trailingSections {
		if idx := strings.Index(content, heading); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(content[:cut])
}
