package discussion

import "github.com/finnmcm/philo-ai/internal/domain"

// Envelope builders are pure assembly: no I/O, no failure modes beyond
// programmer error. A nil conversation or an empty philosopher here means a
// bug upstream, so they panic rather than return a half-built envelope.

func newStartEnvelope(conv *domain.Conversation, phil domain.Philosopher, reasoning, key string) *StartOutput {
	if conv == nil || phil.ID == "" || key == "" {
		panic("discussion: start envelope missing required field")
	}
	return &StartOutput{
		ConversationID: conv.ID,
		Philosopher:    phil,
		PhilosopherID:  phil.ID,
		Reasoning:      reasoning,
		Response:       lastMessageText(conv),
		Discussion:     conv,
		Key:            key,
	}
}

func newContinueEnvelope(conv *domain.Conversation, phil domain.Philosopher, key string) *ContinueOutput {
	if conv == nil || phil.ID == "" || key == "" {
		panic("discussion: continue envelope missing required field")
	}
	return &ContinueOutput{
		Discussion:  conv,
		Philosopher: phil,
		Key:         key,
	}
}

func lastMessageText(conv *domain.Conversation) string {
	if len(conv.Messages) == 0 {
		return ""
	}
	return conv.Messages[len(conv.Messages)-1].Text
}
