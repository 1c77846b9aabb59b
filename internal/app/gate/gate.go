// Package gate decides whether content is in scope for the service before
// any reply is generated. The domain is philosophical, ethical and
// life-guidance content; personal dilemmas get the benefit of the doubt.
package gate

import (
	"context"
	"fmt"
	"strings"

	"github.com/finnmcm/philo-ai/internal/domain"
	"github.com/finnmcm/philo-ai/internal/modelout"
	"github.com/finnmcm/philo-ai/internal/observability"
)

// Policy controls what the gate does when its own classification fails.
type Policy string

const (
	// FailOpen admits content when classification fails. Over-blocking a
	// legitimate user is judged worse than occasionally admitting borderline
	// content.
	FailOpen Policy = "fail_open"
	// FailClosed rejects content when classification fails.
	FailClosed Policy = "fail_closed"
)

const (
	failOpenReason   = "validation check failed, allowing by default"
	failClosedReason = "validation check failed, rejecting by default"
)

// windowSize bounds how much of an ongoing conversation the gate inspects.
const windowSize = 5

// Verdict is the gate's transient result. It is never persisted.
type Verdict struct {
	InScope bool   `json:"is_in_scope"`
	Reason  string `json:"reason"`
}

// OffTopicError is returned by callers of the gate when a verdict rejects
// content; it carries the gate's reason to the user.
type OffTopicError struct {
	Reason string
}

func (e *OffTopicError) Error() string {
	return "input not related to philosophy: " + e.Reason
}

// Gate wraps a model call with a strict output contract and a configurable
// failure policy.
type Gate struct {
	gen    domain.TextGenerator
	policy Policy
}

func New(gen domain.TextGenerator, policy Policy) *Gate {
	if policy != FailClosed {
		policy = FailOpen
	}
	return &Gate{gen: gen, policy: policy}
}

// CheckText classifies a fresh dilemma. Empty content short-circuits to an
// in-scope verdict without calling the model.
func (g *Gate) CheckText(ctx context.Context, text string) Verdict {
	if strings.TrimSpace(text) == "" {
		return Verdict{InScope: true, Reason: "no content to check"}
	}
	return g.classify(ctx, fmt.Sprintf("text: %q", text), false)
}

// CheckWindow classifies the trailing window of an ongoing conversation,
// rendered oldest to newest as a labeled transcript excerpt.
func (g *Gate) CheckWindow(ctx context.Context, msgs []domain.Message) Verdict {
	window := domain.TrailingWindow(msgs, windowSize)
	if len(window) == 0 {
		return Verdict{InScope: true, Reason: "no content to check"}
	}
	var excerpt strings.Builder
	for _, m := range window {
		fmt.Fprintf(&excerpt, "%s: %s\n", m.Sender, m.Text)
	}
	return g.classify(ctx, "conversation excerpt:\n"+excerpt.String(), true)
}

func (g *Gate) classify(ctx context.Context, excerpt string, ongoing bool) Verdict {
	log := observability.LoggerFromContext(ctx)

	raw, err := g.gen.Generate(ctx, "", []domain.ChatTurn{
		{Role: domain.ChatRoleUser, Text: buildPrompt(excerpt, ongoing)},
	})
	if err != nil {
		log.Warn("scope check failed", "error", err, "policy", g.policy)
		return g.fallback()
	}

	var v Verdict
	if err := modelout.Unmarshal(raw, &v); err != nil {
		log.Warn("scope check returned malformed verdict", "error", err, "policy", g.policy)
		return g.fallback()
	}
	return v
}

func (g *Gate) fallback() Verdict {
	if g.policy == FailClosed {
		return Verdict{InScope: false, Reason: failClosedReason}
	}
	return Verdict{InScope: true, Reason: failOpenReason}
}

func buildPrompt(excerpt string, ongoing bool) string {
	subject := "text"
	if ongoing {
		subject = "conversation"
	}
	return fmt.Sprintf(`Determine if the following %s is related to philosophy, ethics, morality, or seeking philosophical guidance.

%s

You MUST respond with ONLY a valid JSON object in this exact format:
{"is_in_scope": true, "reason": "brief explanation here"}

Be lenient with personal dilemmas, ethical questions, life decisions, meaning, purpose, or moral conflicts.
Reject only if clearly unrelated (e.g. technical support, recipes, weather, etc.)

Respond with ONLY the JSON object, no other text.`, subject, excerpt)
}
