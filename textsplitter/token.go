package textsplitter

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Token splits text by token count using a tiktoken encoding, so chunk size
// tracks what the model actually consumes rather than raw characters.
// Safe for concurrent use: the encoding loads once on first split.
type Token struct {
	ChunkSize    int
	ChunkOverlap int
	EncodingName string

	once   sync.Once
	enc    *tiktoken.Tiktoken
	encErr error
}

// loadEncoding fetches the tiktoken encoding lazily; loading at construction
// would make every engine start depend on the encoding being reachable even
// when the recursive splitter is configured.
func (s *Token) loadEncoding() (*tiktoken.Tiktoken, error) {
	s.once.Do(func() {
		name := s.EncodingName
		if name == "" {
			name = defaultEncoding
		}
		enc, err := tiktoken.GetEncoding(name)
		if err != nil {
			s.encErr = fmt.Errorf("load tiktoken encoding %s failed: %w", name, err)
			return
		}
		s.enc = enc
	})
	return s.enc, s.encErr
}

func (s *Token) SplitText(text string) ([]string, error) {
	enc, err := s.loadEncoding()
	if err != nil {
		return nil, err
	}

	ids := enc.Encode(text, nil, nil)
	if len(ids) == 0 {
		return nil, nil
	}

	step := s.ChunkSize - s.ChunkOverlap
	if step <= 0 {
		step = s.ChunkSize
	}

	var chunks []string
	for start := 0; start < len(ids); start += step {
		end := start + s.ChunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, enc.Decode(ids[start:end]))
		if end == len(ids) {
			break
		}
	}
	return chunks, nil
}
