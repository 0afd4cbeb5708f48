// Package entities contains domain entities used across the application.
package entities

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadyCompleted = errors.New("quiz already completed")

// Quiz is a graded learning session built from the words of one dictionary.
// CompletedAt and Result are either both nil or both set.
type Quiz struct {
	ID           uuid.UUID   // unique quiz ID
	OwnerID      int64       // user who started the quiz
	DictionaryID int64       // dictionary the words were drawn from
	Mode         QuizMode    // requested question type, may be "mixed"
	WordCount    int         // requested number of words
	QuestionIDs  []uuid.UUID // questions in presentation order
	CreatedAt    time.Time
	CompletedAt  *time.Time
	Result       *QuizResult
}

// QuizResult holds the aggregate score of a completed quiz.
type QuizResult struct {
	CorrectCount    int  `json:"correctCount"`
	IncorrectCount  int  `json:"incorrectCount"`
	TotalCount      int  `json:"totalCount"`
	ScorePercent    int  `json:"scorePercent"`
	DurationSeconds *int `json:"durationSeconds,omitempty"`
}

// NewQuiz creates an open quiz for the given owner and dictionary.
func NewQuiz(ownerID, dictionaryID int64, mode QuizMode, wordCount int, createdAt time.Time) *Quiz {
	return &Quiz{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		DictionaryID: dictionaryID,
		Mode:         mode,
		WordCount:    wordCount,
		CreatedAt:    createdAt,
	}
}

// IsCompleted reports whether the quiz has been graded.
func (q *Quiz) IsCompleted() bool {
	return q.CompletedAt != nil
}

// Complete finalizes the quiz with the given counts. It is a one-way transition.
func (q *Quiz) Complete(correct, total int, at time.Time) error {
	if q.IsCompleted() {
		return ErrAlreadyCompleted
	}

	res := NewQuizResult(correct, total)
	if d := int(at.Sub(q.CreatedAt).Seconds()); d >= 0 {
		res.DurationSeconds = &d
	}

	q.CompletedAt = &at
	q.Result = &res
	return nil
}

// NewQuizResult computes the score for correct answers out of total.
// total must be positive.
func NewQuizResult(correct, total int) QuizResult {
	res := QuizResult{
		CorrectCount:   correct,
		IncorrectCount: total - correct,
		TotalCount:     total,
	}
	if total > 0 {
		res.ScorePercent = int(math.Round(float64(correct) / float64(total) * 100))
	}
	return res
}

// QuizFilter selects quizzes by completion state.
type QuizFilter int

const (
	FilterAll QuizFilter = iota
	FilterUnfinished
	FilterCompleted
)

// QuizReport is a completed quiz together with its graded questions.
type QuizReport struct {
	Quiz      *Quiz       `json:"quiz"`
	Questions []*Question `json:"questions"`
}
