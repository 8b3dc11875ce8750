package textsplitter

import "strings"

// DefaultSeparators are tried in order: paragraphs, lines, sentences, words,
// and finally single characters.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// RecursiveCharacter splits on the coarsest separator that still appears in
// the text, recursing to finer separators for pieces that exceed ChunkSize.
type RecursiveCharacter struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
}

func (s *RecursiveCharacter) SplitText(text string) ([]string, error) {
	separators := s.Separators
	if len(separators) == 0 {
		separators = DefaultSeparators
	}
	return s.split(text, separators), nil
}

func (s *RecursiveCharacter) split(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var next []string
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			next = separators[i+1:]
			break
		}
	}

	var final []string
	var good []string
	for _, piece := range strings.Split(text, separator) {
		if len(piece) < s.ChunkSize {
			good = append(good, piece)
			continue
		}
		if len(good) > 0 {
			final = append(final, mergeSplits(good, separator, s.ChunkSize, s.ChunkOverlap)...)
			good = nil
		}
		if len(next) == 0 {
			final = append(final, piece)
		} else {
			final = append(final, s.split(piece, next)...)
		}
	}
	if len(good) > 0 {
		final = append(final, mergeSplits(good, separator, s.ChunkSize, s.ChunkOverlap)...)
	}
	return final
}

// mergeSplits packs consecutive splits into chunks of at most chunkSize
// characters, carrying chunkOverlap characters over between chunks.
func mergeSplits(splits []string, separator string, chunkSize, chunkOverlap int) []string {
	var chunks []string
	var current []string
	total := 0

	for _, split := range splits {
		withSplit := total + len(split)
		if len(current) > 0 {
			withSplit += len(separator)
		}
		if withSplit > chunkSize && len(current) > 0 {
			if chunk := joinSplits(current, separator); chunk != "" {
				chunks = append(chunks, chunk)
			}
			for total > chunkOverlap || (total+len(split)+len(separator) > chunkSize && total > 0) {
				total -= len(current[0])
				if len(current) > 1 {
					total -= len(separator)
				}
				current = current[1:]
			}
		}
		current = append(current, split)
		total += len(split)
		if len(current) > 1 {
			total += len(separator)
		}
	}
	if chunk := joinSplits(current, separator); chunk != "" {
		chunks = append(chunks, chunk)
	}
	return chunks
}

func joinSplits(splits []string, separator string) string {
	return strings.TrimSpace(strings.Join(splits, separator))
}
