// Package dialogue continues an existing discussion: it gates the recent
// transcript, builds a bounded-context prompt for the bound philosopher, and
// appends the generated reply under the conversation's ordering invariants.
package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/finnmcm/philo-ai/internal/app/gate"
	"github.com/finnmcm/philo-ai/internal/catalog"
	"github.com/finnmcm/philo-ai/internal/domain"
	"github.com/finnmcm/philo-ai/internal/observability"
)

// historyWindow bounds how many trailing messages feed the model.
const historyWindow = 5

// Caller errors. None of them mutate state and none are retried.
var (
	ErrUserIDRequired         = fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	ErrConversationIDRequired = fmt.Errorf("%w: conversation id is required", domain.ErrInvalidArgument)
	ErrEmptyTranscript        = fmt.Errorf("%w: conversation has no messages", domain.ErrInvalidArgument)
	ErrNoUserMessages         = fmt.Errorf("%w: conversation must contain at least one user message", domain.ErrInvalidArgument)
	ErrLastTurnNotUser        = fmt.Errorf("%w: most recent message must be from the user", domain.ErrInvalidArgument)
)

type Engine struct {
	gen  domain.TextGenerator
	gate *gate.Gate
	now  func() time.Time
}

func NewEngine(gen domain.TextGenerator, g *gate.Gate) *Engine {
	// UTC keeps stored timestamps stable across serialization round trips.
	return &Engine{gen: gen, gate: g, now: func() time.Time { return time.Now().UTC() }}
}

type ContinueInput struct {
	ConversationID domain.ConversationID
	UserID         domain.UserID
	PhilosopherID  string
	Messages       []domain.Message
	CreatedAt      time.Time // zero means unknown; the engine substitutes now
}

// Continue produces the updated conversation with exactly one appended
// philosopher message. The input transcript is not mutated; either the full
// updated conversation is returned or an error and no visible change.
func (e *Engine) Continue(ctx context.Context, in ContinueInput) (*domain.Conversation, error) {
	if in.UserID == "" {
		return nil, ErrUserIDRequired
	}
	if in.ConversationID == "" {
		return nil, ErrConversationIDRequired
	}
	if len(in.Messages) == 0 {
		return nil, ErrEmptyTranscript
	}
	if !domain.HasUserMessage(in.Messages) {
		return nil, ErrNoUserMessages
	}
	phil, ok := catalog.Get(in.PhilosopherID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown philosopher %q", domain.ErrInvalidArgument, in.PhilosopherID)
	}

	log := observability.LoggerFromContext(ctx).With(
		"conversation_id", in.ConversationID,
		"philosopher_id", phil.ID,
	)

	window := domain.TrailingWindow(in.Messages, historyWindow)

	verdict := e.gate.CheckWindow(ctx, window)
	if !verdict.InScope {
		log.Info("continuation rejected as off-topic", "reason", verdict.Reason)
		return nil, &gate.OffTopicError{Reason: verdict.Reason}
	}

	// Out-of-turn requests would double-generate; the last turn must be the
	// user's.
	if window[len(window)-1].Sender != domain.SenderUser {
		return nil, ErrLastTurnNotUser
	}

	reply, err := e.gen.Generate(ctx, personaPrompt(phil), chatTurns(window))
	if err != nil {
		log.Error("continuation generation failed", "error", err)
		return nil, err
	}
	if strings.TrimSpace(reply) == "" {
		return nil, domain.ErrEmptyGeneration
	}

	now := e.now()
	msgs := make([]domain.Message, 0, len(in.Messages)+1)
	msgs = append(msgs, in.Messages...)
	msgs = append(msgs, domain.Message{
		ID:        len(in.Messages) + 1,
		Text:      reply,
		Sender:    domain.SenderPhilosopher,
		Timestamp: now,
		Kind:      domain.KindPhilosopherResponse,
	})

	created := in.CreatedAt
	if created.IsZero() {
		created = now
	}

	log.Info("continuation appended", "message_count", len(msgs))

	return &domain.Conversation{
		ID:              in.ConversationID,
		PhilosopherID:   phil.ID,
		PhilosopherName: phil.Name,
		Messages:        msgs,
		CreatedAt:       created,
		UpdatedAt:       now,
		Title:           domain.DeriveTitle(msgs[0].Text),
		HasMatch:        true,
	}, nil
}

// chatTurns maps the windowed transcript to model history. System-tagged
// entries (match announcements) are conversational artifacts, not model-turn
// history, and are dropped.
func chatTurns(window []domain.Message) []domain.ChatTurn {
	turns := make([]domain.ChatTurn, 0, len(window))
	for _, m := range window {
		switch m.Sender {
		case domain.SenderUser:
			turns = append(turns, domain.ChatTurn{Role: domain.ChatRoleUser, Text: m.Text})
		case domain.SenderPhilosopher:
			turns = append(turns, domain.ChatTurn{Role: domain.ChatRoleModel, Text: m.Text})
		}
	}
	return turns
}

func personaPrompt(p domain.Philosopher) string {
	return fmt.Sprintf(`You are %s, the %s philosopher.
Your style: %s.
Your specialties: %s.

Stay in character and answer in the first person, as %s would.
Keep replies to 3-4 sentences and use simple, everyday language.
Never mention that you are an AI, a model, or a simulation.`,
		p.Name, p.Era, p.Style, strings.Join(p.Specialties, ", "), p.Name)
}
