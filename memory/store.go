// Package memory keeps per-session conversation history. The store holds
// question/answer rounds and renders them into the plain-text history block
// the prompt assembler expects.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ConversationRound is one question and its answer.
type ConversationRound struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationStore stores conversation rounds per session.
type ConversationStore interface {
	GetLastNRounds(ctx context.Context, sessionID string, n int) ([]ConversationRound, error)
	SaveRound(ctx context.Context, sessionID string, round ConversationRound) error
	Clear(ctx context.Context, sessionID string) error
}

// InMemoryConversationStore keeps rounds in a map. Suitable for tests and
// single-node deployments.
type InMemoryConversationStore struct {
	mu        sync.RWMutex
	sessions  map[string][]ConversationRound
	maxRounds int
}

// NewInMemoryConversationStore caps history at maxRounds per session,
// dropping the oldest rounds first.
func NewInMemoryConversationStore(maxRounds int) *InMemoryConversationStore {
	if maxRounds <= 0 {
		maxRounds = 10
	}
	return &InMemoryConversationStore{
		sessions:  make(map[string][]ConversationRound),
		maxRounds: maxRounds,
	}
}

func (s *InMemoryConversationStore) GetLastNRounds(ctx context.Context, sessionID string, n int) ([]ConversationRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rounds := s.sessions[sessionID]
	if len(rounds) == 0 {
		return []ConversationRound{}, nil
	}
	if n <= 0 || n >= len(rounds) {
		out := make([]ConversationRound, len(rounds))
		copy(out, rounds)
		return out, nil
	}
	out := make([]ConversationRound, n)
	copy(out, rounds[len(rounds)-n:])
	return out, nil
}

func (s *InMemoryConversationStore) SaveRound(ctx context.Context, sessionID string, round ConversationRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rounds := append(s.sessions[sessionID], round)
	if len(rounds) > s.maxRounds {
		rounds = rounds[len(rounds)-s.maxRounds:]
	}
	s.sessions[sessionID] = rounds
	return nil
}

func (s *InMemoryConversationStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// FormatHistory renders rounds into the history block consumed by the
// prompt. An empty slice renders to an empty string, which the assembler
// replaces with its new-conversation marker.
func FormatHistory(rounds []ConversationRound) string {
	if len(rounds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(rounds))
	for _, r := range rounds {
		parts = append(parts, fmt.Sprintf("User: %s\nAssistant: %s", r.Question, r.Answer))
	}
	return strings.Join(parts, "\n")
}
