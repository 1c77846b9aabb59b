package domain

import "time"

// Message represents a single turn in a discussion timeline.
// ID is the 1-based sequence number within the conversation.
type Message struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"type,omitempty"`
}

// Conversation is a persisted, append-only discussion between a user and one
// philosopher. After creation it only grows: new messages are appended and
// UpdatedAt moves forward; nothing else changes.
type Conversation struct {
	ID              ConversationID `json:"id"`
	PhilosopherID   string         `json:"philosopherId"`
	PhilosopherName string         `json:"philosopherName"`
	Messages        []Message      `json:"messages"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	Title           string         `json:"title"`
	HasMatch        bool           `json:"hasPhilosopherMatch"`
}

const titleLimit = 50

// DeriveTitle builds a conversation title from its first user message:
// the first 50 characters plus an ellipsis when truncated.
func DeriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "..."
	}
	return text
}

// TrailingWindow returns the most recent n messages, oldest to newest.
func TrailingWindow(msgs []Message, n int) []Message {
	if n > 0 && len(msgs) > n {
		return msgs[len(msgs)-n:]
	}
	return msgs
}

// HasUserMessage reports whether any message in the transcript was sent by the user.
func HasUserMessage(msgs []Message) bool {
	for _, m := range msgs {
		if m.Sender == SenderUser {
			return true
		}
	}
	return false
}
