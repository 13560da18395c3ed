package services

import (
	"strings"
	"unicode/utf8"
)

// TextChunker splits role descriptions into overlapping pieces for the
// reference index.
type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// chunkBuilder accumulates pieces until the next one would exceed maxSize.
// Sizes are counted in runes. seed is the size of the overlap carried into
// the current chunk.
type chunkBuilder struct {
	maxSize int
	overlap int
	chunks  []string
	current strings.Builder
	seed    int
}

func (b *chunkBuilder) add(piece, sep string) {
	size := utf8.RuneCountInString(b.current.String())
	pieceSize := utf8.RuneCountInString(sep) + utf8.RuneCountInString(piece)

	if size+pieceSize > b.maxSize {
		// a chunk holding only the overlap is never emitted
		if size > b.seed {
			b.flush()
			size = b.seed
		}
		if size > 0 && size+pieceSize > b.maxSize {
			b.trimSeed(b.maxSize - pieceSize)
		}
	}

	if b.current.Len() > 0 {
		b.current.WriteString(sep)
	}
	b.current.WriteString(piece)
}

// flush closes the current chunk and seeds the next one with its tail.
func (b *chunkBuilder) flush() {
	prev := b.current.String()
	b.chunks = append(b.chunks, prev)
	b.current.Reset()

	tail := lastNRunes(prev, b.overlap)
	b.current.WriteString(tail)
	b.seed = utf8.RuneCountInString(tail)
}

// trimSeed shortens the overlap to at most n runes.
func (b *chunkBuilder) trimSeed(n int) {
	seed := b.current.String()
	b.current.Reset()

	tail := lastNRunes(seed, n)
	b.current.WriteString(tail)
	b.seed = utf8.RuneCountInString(tail)
}

// finish returns the chunks, including the last one unless it is only overlap.
func (b *chunkBuilder) finish() []string {
	if utf8.RuneCountInString(b.current.String()) > b.seed {
		b.chunks = append(b.chunks, b.current.String())
	}
	return b.chunks
}

// ChunkText splits on blank lines first and on sentence ends for paragraphs
// longer than maxChunkSize.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	b := &chunkBuilder{maxSize: maxChunkSize, overlap: overlap}

	for _, para := range strings.Split(normalizeNewlines(text), "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= maxChunkSize {
			b.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			for _, piece := range splitRunes(sentence, maxChunkSize) {
				b.add(piece, " ")
			}
		}
	}

	return b.finish()
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// splitIntoSentences keeps the terminating punctuation on each sentence.
func splitIntoSentences(text string) []string {
	var (
		result []string
		start  int
	)

	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				result = append(result, s)
			}
			start = i + 1
		}
	}

	if s := strings.TrimSpace(text[start:]); s != "" {
		result = append(result, s)
	}

	return result
}

// splitRunes cuts text into pieces of at most n runes.
func splitRunes(text string, n int) []string {
	runes := []rune(text)
	if len(runes) <= n {
		return []string{text}
	}

	pieces := make([]string, 0, len(runes)/n+1)
	for len(runes) > n {
		pieces = append(pieces, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		pieces = append(pieces, string(runes))
	}

	return pieces
}

func lastNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
