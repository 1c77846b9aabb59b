package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finnmcm/philo-ai/internal/domain"
)

func TestDeriveTitle(t *testing.T) {
	long := strings.Repeat("a", 80)
	title := domain.DeriveTitle(long)
	assert.Equal(t, strings.Repeat("a", 50)+"...", title)

	short := strings.Repeat("b", 30)
	assert.Equal(t, short, domain.DeriveTitle(short))

	exact := strings.Repeat("c", 50)
	assert.Equal(t, exact, domain.DeriveTitle(exact))
}

func TestTrailingWindow(t *testing.T) {
	msgs := make([]domain.Message, 8)
	for i := range msgs {
		msgs[i] = domain.Message{ID: i + 1}
	}

	window := domain.TrailingWindow(msgs, 5)
	assert.Len(t, window, 5)
	assert.Equal(t, 4, window[0].ID)
	assert.Equal(t, 8, window[4].ID)

	short := domain.TrailingWindow(msgs[:3], 5)
	assert.Len(t, short, 3)
}

func TestHasUserMessage(t *testing.T) {
	assert.False(t, domain.HasUserMessage(nil))
	assert.False(t, domain.HasUserMessage([]domain.Message{
		{Sender: domain.SenderSystem},
		{Sender: domain.SenderPhilosopher},
	}))
	assert.True(t, domain.HasUserMessage([]domain.Message{
		{Sender: domain.SenderPhilosopher},
		{Sender: domain.SenderUser},
	}))
}
