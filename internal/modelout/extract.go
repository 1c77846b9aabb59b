// Package modelout extracts strict JSON from free-form model text. Models
// asked for "ONLY a JSON object" still wrap it in markdown fences often
// enough that every parse site needs the same cleanup.
package modelout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StripFences removes an optional markdown code-block wrapper from content.
// A missing closing fence is tolerated: everything after the opening fence is
// kept. Content without a leading fence is returned trimmed and untouched.
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	if rest, ok := strings.CutPrefix(content, "json"); ok {
		content = rest
	}
	if idx := strings.Index(content, "```"); idx >= 0 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}

// Unmarshal strips fencing and decodes the remaining text into v.
func Unmarshal(content string, v any) error {
	content = StripFences(content)
	if content == "" {
		return errors.New("empty model content")
	}
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("model content is not valid JSON: %w", err)
	}
	return nil
}
