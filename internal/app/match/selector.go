// Package match selects the philosopher best suited to a user's dilemma.
package match

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finnmcm/philo-ai/internal/catalog"
	"github.com/finnmcm/philo-ai/internal/domain"
	"github.com/finnmcm/philo-ai/internal/modelout"
	"github.com/finnmcm/philo-ai/internal/observability"
)

// ErrUnknownPhilosopher means the model named a philosopher outside the
// roster. The selection is discarded rather than repaired: silently
// substituting a default would corrupt the conversation's philosopher
// reference.
var ErrUnknownPhilosopher = errors.New("model selected a philosopher outside the roster")

// MissingFieldsError names exactly the required fields absent from the
// model's selection output.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "model response missing required fields: " + strings.Join(e.Fields, ", ")
}

// Result is the transient outcome of a selection, consumed immediately to
// build a new conversation.
type Result struct {
	PhilosopherID   string
	Reasoning       string
	InitialResponse string
}

type Selector struct {
	gen domain.TextGenerator
}

func NewSelector(gen domain.TextGenerator) *Selector {
	return &Selector{gen: gen}
}

// Select asks the model to pick exactly one philosopher for the dilemma and
// produce an initial in-voice reply. Any contract violation in the model's
// output is a terminal error for the request.
func (s *Selector) Select(ctx context.Context, userText string) (Result, error) {
	log := observability.LoggerFromContext(ctx)

	raw, err := s.gen.Generate(ctx, "", []domain.ChatTurn{
		{Role: domain.ChatRoleUser, Text: buildSelectionPrompt(userText)},
	})
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return Result{}, domain.ErrEmptyGeneration
	}

	var out struct {
		PhilosopherID   *string `json:"philosopher_id"`
		Reasoning       *string `json:"reasoning"`
		InitialResponse *string `json:"initial_response"`
	}
	if err := modelout.Unmarshal(raw, &out); err != nil {
		return Result{}, fmt.Errorf("parsing selection: %w", err)
	}

	var missing []string
	if out.PhilosopherID == nil {
		missing = append(missing, "philosopher_id")
	}
	if out.Reasoning == nil {
		missing = append(missing, "reasoning")
	}
	if out.InitialResponse == nil {
		missing = append(missing, "initial_response")
	}
	if len(missing) > 0 {
		return Result{}, &MissingFieldsError{Fields: missing}
	}

	if !catalog.Has(*out.PhilosopherID) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownPhilosopher, *out.PhilosopherID)
	}

	log.Info("philosopher selected", "philosopher_id", *out.PhilosopherID)

	return Result{
		PhilosopherID:   *out.PhilosopherID,
		Reasoning:       *out.Reasoning,
		InitialResponse: *out.InitialResponse,
	}, nil
}

func buildSelectionPrompt(userText string) string {
	var list strings.Builder
	for _, p := range catalog.All() {
		fmt.Fprintf(&list, "- %s: %s\n", p.Name, strings.Join(p.Specialties, ", "))
	}

	return fmt.Sprintf(`A user has presented the following moral dilemma or philosophical question:

%q

Available philosophers:
%s
Select the MOST appropriate philosopher to address this dilemma.
Consider their specialties, approach, and relevance to the issue.

You MUST respond with ONLY a valid JSON object in this exact format:
{"philosopher_id": "choose_one_id", "reasoning": "brief explanation", "initial_response": "2-3 sentences in the philosopher's voice"}

The philosopher_id MUST be one of: %s

Respond with ONLY the JSON object, no other text.`,
		userText, list.String(), strings.Join(catalog.IDs(), ", "))
}
