package domain

// Philosopher is a fixed advisor profile the service can impersonate.
// Profiles are loaded once at startup and never mutated.
type Philosopher struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Era         string   `json:"era"`
	Specialties []string `json:"specialties"`
	Style       string   `json:"style"`
	KeyConcepts []string `json:"key_concepts"`
}
