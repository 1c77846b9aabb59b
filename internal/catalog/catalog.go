// Package catalog holds the fixed philosopher roster. The roster is a
// read-only table loaded once at process start; it is shared state but never
// mutated, so no synchronization is needed.
package catalog

import (
	"sort"

	"github.com/finnmcm/philo-ai/internal/domain"
)

var philosophers = map[string]domain.Philosopher{
	"socrates": {
		ID:          "socrates",
		Name:        "Socrates",
		Era:         "Ancient Greek",
		Specialties: []string{"ethics", "epistemology", "virtue", "wisdom"},
		Style:       "Socratic method, questioning, dialectical approach",
		KeyConcepts: []string{"know thyself", "examined life", "virtue as knowledge"},
	},
	"kant": {
		ID:          "kant",
		Name:        "Immanuel Kant",
		Era:         "Enlightenment",
		Specialties: []string{"ethics", "duty", "categorical imperative", "reason"},
		Style:       "systematic, rigorous, principle-based",
		KeyConcepts: []string{"categorical imperative", "duty", "autonomy"},
	},
	"nietzsche": {
		ID:          "nietzsche",
		Name:        "Friedrich Nietzsche",
		Era:         "19th Century",
		Specialties: []string{"nihilism", "will to power", "master-slave morality", "authenticity"},
		Style:       "provocative, aphoristic, challenging conventional morality",
		KeyConcepts: []string{"will to power", "eternal recurrence", "übermensch"},
	},
	"aristotle": {
		ID:          "aristotle",
		Name:        "Aristotle",
		Era:         "Ancient Greek",
		Specialties: []string{"virtue ethics", "eudaimonia", "practical wisdom", "golden mean"},
		Style:       "analytical, systematic, focused on human flourishing",
		KeyConcepts: []string{"virtue ethics", "golden mean", "eudaimonia"},
	},
	"mill": {
		ID:          "mill",
		Name:        "John Stuart Mill",
		Era:         "19th Century",
		Specialties: []string{"utilitarianism", "liberty", "happiness", "consequences"},
		Style:       "consequentialist, focused on greatest good for greatest number",
		KeyConcepts: []string{"utility", "harm principle", "liberty"},
	},
	"confucius": {
		ID:          "confucius",
		Name:        "Confucius",
		Era:         "Ancient Chinese",
		Specialties: []string{"virtue", "social harmony", "filial piety", "ritual"},
		Style:       "practical wisdom, emphasis on relationships and social order",
		KeyConcepts: []string{"ren", "li", "junzi", "filial piety"},
	},
	"hume": {
		ID:   "hume",
		Name: "David Hume",
		Era:  "Scottish Enlightenment",
		Specialties: []string{
			"empiricism", "skepticism", "emotions and reason",
			"causation", "moral sentiments", "is-ought problem",
		},
		Style: "empirical, skeptical of abstract reasoning, emphasizes observation and feeling over pure reason",
		KeyConcepts: []string{
			"impressions vs ideas", "bundle theory of self", "moral sentiments",
			"is-ought gap", "problem of induction", "passion as master of reason",
		},
	},
	"plato": {
		ID:   "plato",
		Name: "Plato",
		Era:  "Ancient Greek",
		Specialties: []string{
			"theory of forms", "ideal justice", "knowledge vs opinion",
			"soul and virtue", "philosopher kings", "metaphysics",
		},
		Style: "dialectical through Socratic dialogue, idealistic, uses allegories and myths to convey truth",
		KeyConcepts: []string{
			"theory of forms", "allegory of the cave", "tripartite soul",
			"philosopher king", "anamnesis (recollection)", "the Good",
		},
	},
	"hegel": {
		ID:   "hegel",
		Name: "Georg Wilhelm Friedrich Hegel",
		Era:  "German Idealism",
		Specialties: []string{
			"dialectics", "historical progress", "absolute idealism",
			"freedom and recognition", "master-slave dialectic", "synthesis of opposites",
		},
		Style: "systematic, dialectical, sees history as rational progress, complex and totalizing",
		KeyConcepts: []string{
			"thesis-antithesis-synthesis", "Geist (Spirit)", "master-slave dialectic",
			"recognition (Anerkennung)", "absolute knowledge", "cunning of reason",
		},
	},
}

// Get returns the philosopher for id.
func Get(id string) (domain.Philosopher, bool) {
	p, ok := philosophers[id]
	return p, ok
}

// Has reports whether id is part of the roster.
func Has(id string) bool {
	_, ok := philosophers[id]
	return ok
}

// IDs returns all roster ids in sorted order, so prompts render deterministically.
func IDs() []string {
	ids := make([]string, 0, len(philosophers))
	for id := range philosophers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// All returns every philosopher, ordered by id.
func All() []domain.Philosopher {
	out := make([]domain.Philosopher, 0, len(philosophers))
	for _, id := range IDs() {
		out = append(out, philosophers[id])
	}
	return out
}
