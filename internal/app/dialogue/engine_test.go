package dialogue_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnmcm/philo-ai/internal/adapters/llm"
	"github.com/finnmcm/philo-ai/internal/app/dialogue"
	"github.com/finnmcm/philo-ai/internal/app/gate"
	"github.com/finnmcm/philo-ai/internal/domain"
)

const inScopeVerdict = `{"is_in_scope": true, "reason": "ok"}`

func millTranscript() []domain.Message {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return []domain.Message{
		{ID: 1, Text: "Should I report my colleague for padding expenses?", Sender: domain.SenderUser, Timestamp: base},
		{ID: 2, Text: "You've been matched with John Stuart Mill!", Sender: domain.SenderSystem, Timestamp: base, Kind: domain.KindPhilosopherMatch},
		{ID: 3, Text: "Consider the happiness of everyone affected.", Sender: domain.SenderPhilosopher, Timestamp: base},
		{ID: 4, Text: "But reporting could cost them their job.", Sender: domain.SenderUser, Timestamp: base.Add(time.Minute)},
	}
}

func newEngine(replies ...string) (*dialogue.Engine, *llm.MockLLM) {
	mock := llm.NewMockLLM(replies...)
	g := gate.New(mock, gate.FailOpen)
	return dialogue.NewEngine(mock, g), mock
}

func TestContinueAppendsOneMessage(t *testing.T) {
	eng, _ := newEngine(inScopeVerdict, "The harm principle cuts both ways here.")

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	conv, err := eng.Continue(context.Background(), dialogue.ContinueInput{
		ConversationID: "conv-1",
		UserID:         "user-1",
		PhilosopherID:  "mill",
		Messages:       millTranscript(),
		CreatedAt:      created,
	})
	require.NoError(t, err)

	require.Len(t, conv.Messages, 5)
	last := conv.Messages[4]
	assert.Equal(t, 5, last.ID)
	assert.Equal(t, domain.SenderPhilosopher, last.Sender)
	assert.Equal(t, domain.KindPhilosopherResponse, last.Kind)
	assert.Equal(t, "The harm principle cuts both ways here.", last.Text)

	assert.Equal(t, "mill", conv.PhilosopherID)
	assert.Equal(t, "John Stuart Mill", conv.PhilosopherName)
	assert.True(t, conv.HasMatch)
	assert.Equal(t, created, conv.CreatedAt)
	assert.True(t, conv.UpdatedAt.After(created))
	assert.Equal(t, domain.DeriveTitle(conv.Messages[0].Text), conv.Title)
}

func TestContinueDoesNotMutateInput(t *testing.T) {
	eng, _ := newEngine(inScopeVerdict, "A reply.")

	msgs := millTranscript()
	_, err := eng.Continue(context.Background(), dialogue.ContinueInput{
		ConversationID: "conv-1",
		UserID:         "user-1",
		PhilosopherID:  "mill",
		Messages:       msgs,
	})
	require.NoError(t, err)
	assert.Len(t, msgs, 4)
}

func TestContinueSystemTurnsDroppedFromHistory(t *testing.T) {
	eng, mock := newEngine(inScopeVerdict, "A reply.")

	_, err := eng.Continue(context.Background(), dialogue.ContinueInput{
		ConversationID: "conv-1",
		UserID:         "user-1",
		PhilosopherID:  "mill",
		Messages:       millTranscript(),
	})
	require.NoError(t, err)

	// Call 0 is the gate, call 1 the generation.
	require.Equal(t, 2, mock.CallCount())
	gen := mock.Calls[1]
	assert.Contains(t, gen.System, "John Stuart Mill")
	assert.Contains(t, gen.System, "first person")

	require.Len(t, gen.Turns, 3)
	assert.Equal(t, domain.ChatRoleUser, gen.Turns[0].Role)
	assert.Equal(t, domain.ChatRoleModel, gen.Turns[1].Role)
	assert.Equal(t, domain.ChatRoleUser, gen.Turns[2].Role)
	for _, turn := range gen.Turns {
		assert.NotContains(t, turn.Text, "You've been matched")
	}
}

func TestContinueRejectsWhenLastTurnNotUser(t *testing.T) {
	eng, _ := newEngine(inScopeVerdict)

	msgs := millTranscript()[:3] // ends with a philosopher turn
	_, err := eng.Continue(context.Background(), dialogue.ContinueInput{
		ConversationID: "conv-1",
		UserID:         "user-1",
		PhilosopherID:  "mill",
		Messages:       msgs,
	})
	assert.ErrorIs(t, err, dialogue.ErrLastTurnNotUser)
	assert.ErrorContains(t, err, "most recent message must be from the user")
}

func TestContinuePreconditions(t *testing.T) {
	eng, _ := newEngine()
	ctx := context.Background()

	_, err := eng.Continue(ctx, dialogue.ContinueInput{
		ConversationID: "conv-1", PhilosopherID: "mill", Messages: millTranscript(),
	})
	assert.ErrorIs(t, err, dialogue.ErrUserIDRequired)

	_, err = eng.Continue(ctx, dialogue.ContinueInput{
		UserID: "user-1", PhilosopherID: "mill", Messages: millTranscript(),
	})
	assert.ErrorIs(t, err, dialogue.ErrConversationIDRequired)

	_, err = eng.Continue(ctx, dialogue.ContinueInput{
		ConversationID: "conv-1", UserID: "user-1", PhilosopherID: "mill",
	})
	assert.ErrorIs(t, err, dialogue.ErrEmptyTranscript)

	_, err = eng.Continue(ctx, dialogue.ContinueInput{
		ConversationID: "conv-1", UserID: "user-1", PhilosopherID: "mill",
		Messages: []domain.Message{{ID: 1, Sender: domain.SenderSystem, Text: "note"}},
	})
	assert.ErrorIs(t, err, dialogue.ErrNoUserMessages)

	_, err = eng.Continue(ctx, dialogue.ContinueInput{
		ConversationID: "conv-1", UserID: "user-1", PhilosopherID: "laozi",
		Messages: millTranscript(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestContinueOffTopicWindow(t *testing.T) {
	eng, mock := newEngine(`{"is_in_scope": false, "reason": "drifted to tech support"}`)

	_, err := eng.Continue(context.Background(), dialogue.ContinueInput{
		ConversationID: "conv-1",
		UserID:         "user-1",
		PhilosopherID:  "mill",
		Messages:       millTranscript(),
	})
	var offTopic *gate.OffTopicError
	require.ErrorAs(t, err, &offTopic)
	assert.Equal(t, "drifted to tech support", offTopic.Reason)
	assert.Equal(t, 1, mock.CallCount(), "no generation after a rejection")
}

func TestContinueEmptyGeneration(t *testing.T) {
	eng, _ := newEngine(inScopeVerdict, "   ")

	_, err := eng.Continue(context.Background(), dialogue.ContinueInput{
		ConversationID: "conv-1",
		UserID:         "user-1",
		PhilosopherID:  "mill",
		Messages:       millTranscript(),
	})
	assert.ErrorIs(t, err, domain.ErrEmptyGeneration)
}

func TestContinueWindowBoundedToFive(t *testing.T) {
	eng, mock := newEngine(inScopeVerdict, "A reply.")

	msgs := millTranscript()
	base := msgs[len(msgs)-1].Timestamp
	for i := 5; i <= 9; i++ {
		sender := domain.SenderPhilosopher
		if i%2 == 0 {
			sender = domain.SenderUser
		}
		msgs = append(msgs, domain.Message{ID: i, Text: "turn", Sender: sender, Timestamp: base})
	}
	// ends on ID 9 (philosopher); append a user turn
	msgs = append(msgs, domain.Message{ID: 10, Text: "latest question", Sender: domain.SenderUser, Timestamp: base})

	conv, err := eng.Continue(context.Background(), dialogue.ContinueInput{
		ConversationID: "conv-1",
		UserID:         "user-1",
		PhilosopherID:  "mill",
		Messages:       msgs,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, conv.Messages[len(conv.Messages)-1].ID)

	gen := mock.Calls[1]
	assert.LessOrEqual(t, len(gen.Turns), 5)
	assert.Equal(t, "latest question", gen.Turns[len(gen.Turns)-1].Text)
}
