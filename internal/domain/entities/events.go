package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuizCompletedEvent is emitted once a quiz has been graded.
type QuizCompletedEvent struct {
	QuizID       uuid.UUID  `json:"quizId"`
	OwnerID      int64      `json:"ownerId"`
	DictionaryID int64      `json:"dictionaryId"`
	Result       QuizResult `json:"result"`
	CompletedAt  time.Time  `json:"completedAt"`
}

// StaleQuizReminder describes an owner with unfinished quizzes.
type StaleQuizReminder struct {
	OwnerID         int64
	UnfinishedCount int
	OldestCreatedAt time.Time
}
