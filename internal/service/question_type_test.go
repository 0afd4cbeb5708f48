package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func TestResolve_ConcreteMode(t *testing.T) {
	r := NewTypeResolver(NewRand(1))
	w := &entities.Word{Writing: "cat", Translation: "кот", Pronunciation: "/kæt/"}

	assert.Equal(t, entities.QuestionTypeTranslation, r.Resolve(w, entities.ModeTranslation))
	assert.Equal(t, entities.QuestionTypeWriting, r.Resolve(w, entities.ModeWriting))
	assert.Equal(t, entities.QuestionTypePronunciation, r.Resolve(w, entities.ModePronunciation))
}

func TestResolve_MixedPicksEveryConcreteType(t *testing.T) {
	r := NewTypeResolver(NewRand(5))
	w := &entities.Word{Writing: "cat", Translation: "кот", Pronunciation: "/kæt/"}

	seen := map[entities.QuestionType]int{}
	for range 300 {
		got := r.Resolve(w, entities.ModeMixed)
		assert.True(t, got.Valid())
		seen[got]++
	}

	assert.Len(t, seen, 3)
	for _, typ := range entities.QuestionTypes {
		assert.Greater(t, seen[typ], 50, "type %s picked too rarely", typ)
	}
}

func TestResolve_FallbackOnEmptyAnswer(t *testing.T) {
	w := &entities.Word{Writing: "cat", Translation: "кот"}

	// Shuffle keeps order: translation is the first type with an answer.
	r := NewTypeResolver(firstRand{})
	assert.Equal(t, entities.QuestionTypeTranslation, r.Resolve(w, entities.ModePronunciation))

	// Reversed order: pronunciation (empty) is skipped, writing wins.
	r = NewTypeResolver(reverseRand{})
	assert.Equal(t, entities.QuestionTypeWriting, r.Resolve(w, entities.ModePronunciation))
}

func TestResolve_NoAnswerAtAll(t *testing.T) {
	w := &entities.Word{}

	assert.Equal(t, entities.QuestionTypeTranslation, NewTypeResolver(firstRand{}).Resolve(w, entities.ModeWriting))
	assert.Equal(t, entities.QuestionTypePronunciation, NewTypeResolver(reverseRand{}).Resolve(w, entities.ModeWriting))
}

func TestResolve_NeverReturnsMixed(t *testing.T) {
	r := NewTypeResolver(NewRand(9))
	words := []*entities.Word{
		{Writing: "a"},
		{Translation: "B"},
		{Pronunciation: "/c/"},
		{},
	}

	for _, w := range words {
		for range 20 {
			assert.True(t, r.Resolve(w, entities.ModeMixed).Valid())
		}
	}
}
