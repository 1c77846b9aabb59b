// Package discussion orchestrates the two-phase flow: match once (gate,
// select, create) and continue many (gate, generate, append). It owns the
// storage keys and the response envelopes; persistence itself belongs to the
// object-store collaborator.
package discussion

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finnmcm/philo-ai/internal/app/dialogue"
	"github.com/finnmcm/philo-ai/internal/app/gate"
	"github.com/finnmcm/philo-ai/internal/app/match"
	"github.com/finnmcm/philo-ai/internal/catalog"
	"github.com/finnmcm/philo-ai/internal/domain"
	"github.com/finnmcm/philo-ai/internal/observability"
)

var (
	ErrUserIDRequired  = fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	ErrEmptyMessage    = fmt.Errorf("%w: empty message content", domain.ErrInvalidArgument)
	ErrPrefixRequired  = fmt.Errorf("%w: prefix is required", domain.ErrInvalidArgument)
	ErrProfileIDNeeded = fmt.Errorf("%w: profile id is required", domain.ErrInvalidArgument)
)

// Service wires the gate, selector and continuation engine to the store.
// It is stateless per request; concurrent continuations of one conversation
// are not serialized here and resolve last-writer-wins at the store. Callers
// that need strict ordering must serialize per conversation themselves.
type Service struct {
	gate     *gate.Gate
	selector *match.Selector
	engine   *dialogue.Engine
	store    domain.ObjectStore
	now      func() time.Time
	newID    func() string
}

func NewService(g *gate.Gate, sel *match.Selector, eng *dialogue.Engine, store domain.ObjectStore) *Service {
	return &Service{
		gate:     g,
		selector: sel,
		engine:   eng,
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// ─────────────────────────────────────────────
// Storage keys
// ─────────────────────────────────────────────

func discussionKey(owner domain.UserID, id domain.ConversationID) string {
	return fmt.Sprintf("%s/discussions/%s.json", owner, id)
}

func discussionsPrefix(owner domain.UserID) string {
	return fmt.Sprintf("%s/discussions/", owner)
}

func profileKey(owner domain.UserID) string {
	return fmt.Sprintf("%s/users/%s/profile.json", owner, owner)
}

func philosopherDataKey(id string) string {
	return "philosopher_data/" + id + ".json"
}

// ─────────────────────────────────────────────
// Start (match phase)
// ─────────────────────────────────────────────

type StartInput struct {
	UserID domain.UserID
	Text   string
	// DiscussionID is optional; clients may supply their own id.
	DiscussionID domain.ConversationID
}

// StartOutput is the envelope returned for a fresh match.
type StartOutput struct {
	ConversationID domain.ConversationID `json:"conversation_id"`
	Philosopher    domain.Philosopher    `json:"philosopher"`
	PhilosopherID  string                `json:"philosopher_id"`
	Reasoning      string                `json:"reasoning"`
	Response       string                `json:"response"`
	Discussion     *domain.Conversation  `json:"discussion"`
	Key            string                `json:"key"`
}

// Start gates the dilemma, selects a philosopher, creates the conversation
// and persists it. Nothing is written on any error path.
func (s *Service) Start(ctx context.Context, in StartInput) (*StartOutput, error) {
	if in.UserID == "" {
		return nil, ErrUserIDRequired
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	log := observability.LoggerFromContext(ctx).With("user_id", in.UserID)

	verdict := s.gate.CheckText(ctx, text)
	if !verdict.InScope {
		log.Info("dilemma rejected as off-topic", "reason", verdict.Reason)
		return nil, &gate.OffTopicError{Reason: verdict.Reason}
	}

	sel, err := s.selector.Select(ctx, text)
	if err != nil {
		log.Error("philosopher selection failed", "error", err)
		return nil, err
	}
	phil, _ := catalog.Get(sel.PhilosopherID)

	now := s.now()
	id := in.DiscussionID
	if id == "" {
		id = domain.ConversationID(s.newID())
	}

	conv := &domain.Conversation{
		ID:              id,
		PhilosopherID:   phil.ID,
		PhilosopherName: phil.Name,
		Messages: []domain.Message{
			{ID: 1, Text: text, Sender: domain.SenderUser, Timestamp: now},
			{
				ID:        2,
				Text:      fmt.Sprintf("You've been matched with %s!", phil.Name),
				Sender:    domain.SenderSystem,
				Timestamp: now,
				Kind:      domain.KindPhilosopherMatch,
			},
			{ID: 3, Text: sel.InitialResponse, Sender: domain.SenderPhilosopher, Timestamp: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
		Title:     domain.DeriveTitle(text),
	}

	key := discussionKey(in.UserID, conv.ID)
	if err := s.putJSON(ctx, key, conv); err != nil {
		log.Error("failed to persist new discussion", "error", err)
		return nil, err
	}

	log.Info("discussion created",
		"conversation_id", conv.ID,
		"philosopher_id", phil.ID,
		"key", key)

	return newStartEnvelope(conv, phil, sel.Reasoning, key), nil
}

// ─────────────────────────────────────────────
// Continue (append phase)
// ─────────────────────────────────────────────

// ContinueOutput is the envelope returned for a continued discussion.
type ContinueOutput struct {
	Discussion  *domain.Conversation `json:"discussion"`
	Philosopher domain.Philosopher   `json:"philosopher"`
	Key         string               `json:"key"`
}

func (s *Service) Continue(ctx context.Context, in dialogue.ContinueInput) (*ContinueOutput, error) {
	log := observability.LoggerFromContext(ctx).With(
		"user_id", in.UserID,
		"conversation_id", in.ConversationID,
	)

	conv, err := s.engine.Continue(ctx, in)
	if err != nil {
		return nil, err
	}

	key := discussionKey(in.UserID, conv.ID)
	if err := s.putJSON(ctx, key, conv); err != nil {
		log.Error("failed to persist continued discussion", "error", err)
		return nil, err
	}

	phil, _ := catalog.Get(conv.PhilosopherID)

	log.Info("discussion continued", "message_count", len(conv.Messages), "key", key)

	return newContinueEnvelope(conv, phil, key), nil
}

// ─────────────────────────────────────────────
// Profiles, listings and roster data
// ─────────────────────────────────────────────

// SaveProfile stores an arbitrary profile document for a user and returns
// the storage key.
func (s *Service) SaveProfile(ctx context.Context, userID domain.UserID, profile map[string]any) (string, error) {
	if userID == "" {
		return "", ErrProfileIDNeeded
	}
	key := profileKey(userID)
	if err := s.putJSON(ctx, key, profile); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) GetProfile(ctx context.Context, userID domain.UserID) (json.RawMessage, error) {
	if userID == "" {
		return nil, ErrProfileIDNeeded
	}
	data, err := s.store.Get(ctx, profileKey(userID))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// ListDiscussions fetches every stored discussion of a user, keyed by
// discussion id. Returns ErrObjectNotFound when the user has none.
func (s *Service) ListDiscussions(ctx context.Context, userID domain.UserID) (map[string]json.RawMessage, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.fetchFolder(ctx, discussionsPrefix(userID))
}

// GetFolder fetches every JSON object under an arbitrary prefix, keyed by
// file name. It serves the philosopher_data roster blobs among others.
func (s *Service) GetFolder(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	if strings.TrimSpace(prefix) == "" {
		return nil, ErrPrefixRequired
	}
	return s.fetchFolder(ctx, prefix)
}

// SavePhilosopherData stores a roster blob under philosopher_data/ and
// returns the storage key.
func (s *Service) SavePhilosopherData(ctx context.Context, id string, data map[string]any) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: philosopher data id is required", domain.ErrInvalidArgument)
	}
	key := philosopherDataKey(id)
	if err := s.putJSON(ctx, key, data); err != nil {
		return "", err
	}
	return key, nil
}

func (s *Service) fetchFolder(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	log := observability.LoggerFromContext(ctx).With("prefix", prefix)

	keys, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	results := make(map[string]json.RawMessage)
	for _, key := range keys {
		if !strings.HasSuffix(strings.ToLower(key), ".json") {
			continue
		}
		data, err := s.store.Get(ctx, key)
		if err != nil {
			log.Warn("could not fetch object", "key", key, "error", err)
			continue
		}
		if !json.Valid(data) {
			log.Warn("invalid JSON object skipped", "key", key)
			continue
		}
		name := strings.TrimSuffix(path.Base(key), ".json")
		results[name] = json.RawMessage(data)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no objects under prefix %q", domain.ErrObjectNotFound, prefix)
	}
	return results, nil
}

func (s *Service) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.store.Put(ctx, key, data, "application/json")
}
