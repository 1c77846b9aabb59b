package domain

type ConversationID string
type UserID string

type Sender string

const (
	SenderUser        Sender = "user"
	SenderPhilosopher Sender = "philosopher"
	SenderSystem      Sender = "system"
)

// Message kind tags carried on the wire in the "type" field.
const (
	KindPhilosopherMatch    = "philosopher_match"
	KindPhilosopherResponse = "philosopher_response"
)
