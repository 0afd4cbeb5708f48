package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres/repository"
)

// Transactor runs fn in a single all-or-nothing unit of work.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *entities.Quiz) error
	CreateQuestions(ctx context.Context, questions []*entities.Question) error
	GetQuiz(ctx context.Context, quizID uuid.UUID, ownerID int64) (*entities.Quiz, error)
	GetQuizForUpdate(ctx context.Context, quizID uuid.UUID, ownerID int64) (*entities.Quiz, error)
	ListByOwner(ctx context.Context, ownerID int64, filter entities.QuizFilter) ([]*entities.Quiz, error)
	GetQuestions(ctx context.Context, quizID uuid.UUID) ([]*entities.Question, error)
	GetQuestion(ctx context.Context, quizID, questionID uuid.UUID) (*entities.Question, error)
	SaveAnswer(ctx context.Context, q *entities.Question) error
	CompleteQuiz(ctx context.Context, quiz *entities.Quiz) error
}

// DictionaryRepository is the dictionary access collaborator.
type DictionaryRepository interface {
	IsAuthorized(ctx context.Context, userID, dictionaryID int64) (bool, error)
	WordsOf(ctx context.Context, dictionaryID int64) ([]*entities.Word, error)
	WordStats(ctx context.Context, dictionaryID int64) (total, learned int, err error)
}

type SummaryRepository interface {
	ScoreStats(ctx context.Context, ownerID, dictionaryID int64) (repository.ScoreStats, error)
	CountMistakes(ctx context.Context, ownerID int64) (int, error)
	MostMissedWords(ctx context.Context, ownerID int64, limit int) ([]entities.MissedWord, error)
}

// ReminderRepository finds owners with unfinished quizzes they were not reminded about.
type ReminderRepository interface {
	ListStaleOwners(ctx context.Context, olderThan time.Time) ([]entities.StaleQuizReminder, error)
	MarkReminded(ctx context.Context, ownerID int64, olderThan, at time.Time) error
}

// EventPublisher delivers domain events to other services.
type EventPublisher interface {
	PublishQuizCompleted(ctx context.Context, evt entities.QuizCompletedEvent) error
}

// ResultCache keeps reports of completed quizzes. Completed quizzes never change,
// so entries need no invalidation.
type ResultCache interface {
	Get(quizID uuid.UUID) (*entities.QuizReport, bool)
	Set(report *entities.QuizReport)
}

// ReminderNotifier sends reminder notifications to users.
type ReminderNotifier interface {
	SendQuizReminder(ownerID int64, reminder entities.StaleQuizReminder) error
}

type noopPublisher struct{}

func (noopPublisher) PublishQuizCompleted(context.Context, entities.QuizCompletedEvent) error {
	return nil
}

type noopCache struct{}

func (noopCache) Get(uuid.UUID) (*entities.QuizReport, bool) { return nil, false }
func (noopCache) Set(*entities.QuizReport)                    {}
