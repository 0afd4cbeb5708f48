package telegram

import (
	"context"

	"github.com/google/uuid"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type QuizService interface {
	StartQuiz(ctx context.Context, ownerID, dictionaryID int64, wordCount int, mode entities.QuizMode) (*entities.Quiz, error)
	Questions(ctx context.Context, quizID uuid.UUID, ownerID int64) ([]entities.QuestionView, error)
	CompleteQuiz(ctx context.Context, quizID uuid.UUID, ownerID int64, answers []entities.Answer) (*entities.QuizResult, error)
	Result(ctx context.Context, quizID uuid.UUID, ownerID int64) (*entities.QuizReport, error)
	ListUnfinished(ctx context.Context, ownerID int64) ([]*entities.Quiz, error)
	ListCompleted(ctx context.Context, ownerID int64) ([]*entities.Quiz, error)
}

type SummaryService interface {
	UserSummary(ctx context.Context, ownerID int64) (*entities.UserSummary, error)
	DictionarySummary(ctx context.Context, ownerID, dictionaryID int64) (*entities.DictionarySummary, error)
}
