package domain

import "context"

// ChatRole identifies the speaker of a turn handed to the text-generation model.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatTurn is one entry of the bounded history handed to the model.
type ChatTurn struct {
	Role ChatRole
	Text string
}

// TextGenerator defines how the core application requests model output.
// Implementations return the generated text or a classified error; an empty
// reply is an error, never an empty string.
type TextGenerator interface {
	Generate(ctx context.Context, system string, turns []ChatTurn) (string, error)
}

// ObjectStore defines blob persistence: values are opaque bytes stored under
// string keys, listable by prefix.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
