package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndGetRounds(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryConversationStore(10)

	require.NoError(t, s.SaveRound(ctx, "s1", ConversationRound{Question: "q1", Answer: "a1"}))
	require.NoError(t, s.SaveRound(ctx, "s1", ConversationRound{Question: "q2", Answer: "a2"}))

	rounds, err := s.GetLastNRounds(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, rounds, 2)
	assert.Equal(t, "q1", rounds[0].Question)

	last, err := s.GetLastNRounds(ctx, "s1", 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "q2", last[0].Question)
}

func TestMaxRoundsEviction(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryConversationStore(3)

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.SaveRound(ctx, "s1", ConversationRound{Question: fmt.Sprintf("q%d", i)}))
	}

	rounds, err := s.GetLastNRounds(ctx, "s1", 0)
	require.NoError(t, err)
	require.Len(t, rounds, 3)
	assert.Equal(t, "q3", rounds[0].Question)
	assert.Equal(t, "q5", rounds[2].Question)
}

func TestClearSession(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryConversationStore(10)
	require.NoError(t, s.SaveRound(ctx, "s1", ConversationRound{Question: "q"}))
	require.NoError(t, s.Clear(ctx, "s1"))

	rounds, err := s.GetLastNRounds(ctx, "s1", 0)
	require.NoError(t, err)
	assert.Empty(t, rounds)
}

func TestSessionsIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryConversationStore(10)
	require.NoError(t, s.SaveRound(ctx, "s1", ConversationRound{Question: "q1"}))

	rounds, err := s.GetLastNRounds(ctx, "s2", 0)
	require.NoError(t, err)
	assert.Empty(t, rounds)
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "", FormatHistory(nil))

	out := FormatHistory([]ConversationRound{
		{Question: "What is Alpha?", Answer: "A project."},
		{Question: "And the budget?", Answer: "Confidential."},
	})
	assert.Equal(t, "User: What is Alpha?\nAssistant: A project.\nUser: And the budget?\nAssistant: Confidential.", out)
}
