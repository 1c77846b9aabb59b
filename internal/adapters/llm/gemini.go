package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/finnmcm/philo-ai/internal/domain"
)

// GeminiClient implements domain.TextGenerator using Vertex AI (Gemini).
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Vertex AI backed client bound to one model name.
func NewGeminiClient(ctx context.Context, projectID, location, model string) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("project and location are required for the Gemini client")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// WithModel returns a client sharing the underlying connection but bound to
// a different model, e.g. a cheaper one for scope checks.
func (c *GeminiClient) WithModel(model string) *GeminiClient {
	return &GeminiClient{client: c.client, model: model}
}

// Generate implements domain.TextGenerator.
func (c *GeminiClient) Generate(ctx context.Context, system string, turns []domain.ChatTurn) (string, error) {
	var contents []*genai.Content
	for _, t := range turns {
		role := genai.Role(genai.RoleUser)
		if t.Role == domain.ChatRoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}

	temp := float32(0.7)
	topP := float32(0.9)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: int32(8192),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", classifyError(err)
	}

	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyGeneration
	}
	return text, nil
}

// classifyError buckets upstream failures by substring so operators can tell
// billing and auth problems from transient ones. Quota is checked before rate
// limiting: both surface as 429 upstream.
func classifyError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "authentication") ||
		strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "401"):
		return fmt.Errorf("%w: %v", domain.ErrGenerationAuth, err)
	case strings.Contains(msg, "quota") || strings.Contains(msg, "429"):
		return fmt.Errorf("%w: %v", domain.ErrGenerationQuota, err)
	case strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted"):
		return fmt.Errorf("%w: %v", domain.ErrGenerationRateLimited, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
}
