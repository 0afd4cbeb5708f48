package entities

import (
	"errors"
	"strings"
)

var ErrUnknownQuizMode = errors.New("unknown quiz mode")

// QuestionType is the concrete attribute pairing a question is built from.
// Only these three values are ever persisted on a question.
type QuestionType string

const (
	QuestionTypeTranslation   QuestionType = "translation"   // prompt: writing, answer: translation
	QuestionTypeWriting       QuestionType = "writing"       // prompt: translation, answer: writing
	QuestionTypePronunciation QuestionType = "pronunciation" // prompt: translation, answer: pronunciation
)

// QuestionTypes lists every concrete question type in canonical order.
var QuestionTypes = []QuestionType{
	QuestionTypeTranslation,
	QuestionTypeWriting,
	QuestionTypePronunciation,
}

// Valid reports whether t is one of the concrete question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeTranslation, QuestionTypeWriting, QuestionTypePronunciation:
		return true
	default:
		return false
	}
}

// QuizMode is the question type requested when a quiz is started.
// Besides the concrete types it may be ModeMixed, which is resolved per word.
type QuizMode string

const (
	ModeTranslation   = QuizMode(QuestionTypeTranslation)
	ModeWriting       = QuizMode(QuestionTypeWriting)
	ModePronunciation = QuizMode(QuestionTypePronunciation)
	ModeMixed         QuizMode = "mixed"
)

// ParseQuizMode converts user input into a QuizMode. Matching is case-insensitive.
func ParseQuizMode(s string) (QuizMode, error) {
	m := QuizMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeTranslation, ModeWriting, ModePronunciation, ModeMixed:
		return m, nil
	default:
		return "", ErrUnknownQuizMode
	}
}

// Concrete returns the question type for a non-mixed mode.
// The second value is false for ModeMixed.
func (m QuizMode) Concrete() (QuestionType, bool) {
	t := QuestionType(m)
	return t, t.Valid()
}
