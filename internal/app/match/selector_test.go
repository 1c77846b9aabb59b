package match_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finnmcm/philo-ai/internal/adapters/llm"
	"github.com/finnmcm/philo-ai/internal/app/match"
	"github.com/finnmcm/philo-ai/internal/domain"
)

func TestSelectHappyPath(t *testing.T) {
	mock := llm.NewMockLLM(`{"philosopher_id": "kant", "reasoning": "a question of duty", "initial_response": "To lie is to treat your friend as a means."}`)
	sel := match.NewSelector(mock)

	res, err := sel.Select(context.Background(), "Should I lie to protect a friend's feelings?")
	require.NoError(t, err)
	assert.Equal(t, "kant", res.PhilosopherID)
	assert.Equal(t, "a question of duty", res.Reasoning)
	assert.NotEmpty(t, res.InitialResponse)
}

func TestSelectFencedOutput(t *testing.T) {
	mock := llm.NewMockLLM("```json\n{\"philosopher_id\": \"mill\", \"reasoning\": \"consequences\", \"initial_response\": \"Weigh the happiness produced.\"}\n```")
	sel := match.NewSelector(mock)

	res, err := sel.Select(context.Background(), "Should I report my colleague?")
	require.NoError(t, err)
	assert.Equal(t, "mill", res.PhilosopherID)
}

func TestSelectMissingFields(t *testing.T) {
	mock := llm.NewMockLLM(`{"philosopher_id": "kant"}`)
	sel := match.NewSelector(mock)

	_, err := sel.Select(context.Background(), "Should I lie?")
	var missing *match.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"reasoning", "initial_response"}, missing.Fields)
}

func TestSelectAllFieldsMissing(t *testing.T) {
	mock := llm.NewMockLLM(`{}`)
	sel := match.NewSelector(mock)

	_, err := sel.Select(context.Background(), "Should I lie?")
	var missing *match.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"philosopher_id", "reasoning", "initial_response"}, missing.Fields)
}

func TestSelectUnknownPhilosopher(t *testing.T) {
	mock := llm.NewMockLLM(`{"philosopher_id": "descartes", "reasoning": "doubt", "initial_response": "I think."}`)
	sel := match.NewSelector(mock)

	_, err := sel.Select(context.Background(), "Should I lie?")
	assert.ErrorIs(t, err, match.ErrUnknownPhilosopher)
}

func TestSelectNonJSONOutput(t *testing.T) {
	mock := llm.NewMockLLM("Kant would be the right fit here.")
	sel := match.NewSelector(mock)

	_, err := sel.Select(context.Background(), "Should I lie?")
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestSelectEmptyOutput(t *testing.T) {
	mock := llm.NewMockLLM("   ")
	sel := match.NewSelector(mock)

	_, err := sel.Select(context.Background(), "Should I lie?")
	assert.ErrorIs(t, err, domain.ErrEmptyGeneration)
}

func TestSelectPromptListsRoster(t *testing.T) {
	mock := llm.NewMockLLM(`{"philosopher_id": "kant", "reasoning": "r", "initial_response": "i"}`)
	sel := match.NewSelector(mock)

	_, err := sel.Select(context.Background(), "Should I lie?")
	require.NoError(t, err)

	require.Equal(t, 1, mock.CallCount())
	prompt := mock.Calls[0].Turns[0].Text
	assert.Contains(t, prompt, "Immanuel Kant")
	assert.Contains(t, prompt, "John Stuart Mill")
	assert.Contains(t, prompt, "socrates")
	assert.Contains(t, prompt, "Should I lie?")
}
