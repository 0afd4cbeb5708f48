package service

import (
	"slices"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// TypeResolver picks the concrete question type for a word.
type TypeResolver struct {
	rng Rand
}

// NewTypeResolver creates a new TypeResolver.
func NewTypeResolver(rng Rand) *TypeResolver {
	return &TypeResolver{rng: rng}
}

// Resolve returns the question type to use for w under the requested mode.
//
// A concrete mode is used as is; ModeMixed picks one of the concrete types uniformly.
// When the chosen type has no answer text for w, the concrete types are tried in
// random order and the first one with a non-empty answer wins. If none has one,
// the first type of that random order is returned.
func (r *TypeResolver) Resolve(w *entities.Word, mode entities.QuizMode) entities.QuestionType {
	t, ok := mode.Concrete()
	if !ok {
		t = entities.QuestionTypes[r.rng.IntN(len(entities.QuestionTypes))]
	}

	if w.Answer(t) != "" {
		return t
	}

	return r.fallback(w)
}

func (r *TypeResolver) fallback(w *entities.Word) entities.QuestionType {
	candidates := slices.Clone(entities.QuestionTypes)
	r.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, c := range candidates {
		if w.Answer(c) != "" {
			return c
		}
	}

	return candidates[0]
}
