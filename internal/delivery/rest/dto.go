package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type startQuizRequest struct {
	DictionaryID int64  `json:"dictionaryId"`
	WordCount    int    `json:"wordCount"`
	QuestionType string `json:"questionType"`
}

type startQuizResponse struct {
	QuizID uuid.UUID `json:"quizId"`
}

type submitAnswer struct {
	QuestionID uuid.UUID `json:"questionId"`
	UserAnswer string    `json:"userAnswer"`
}

type quizResponse struct {
	ID           uuid.UUID            `json:"id"`
	DictionaryID int64                `json:"dictionaryId"`
	QuestionType entities.QuizMode    `json:"questionType"`
	WordCount    int                  `json:"wordCount"`
	QuestionIDs  []uuid.UUID          `json:"questions"`
	CreatedAt    time.Time            `json:"createdAt"`
	CompletedAt  *time.Time           `json:"completedAt,omitempty"`
	Result       *entities.QuizResult `json:"result,omitempty"`
}

type questionResponse struct {
	ID            uuid.UUID             `json:"id"`
	WordID        int64                 `json:"wordId"`
	Prompt        string                `json:"prompt"`
	Choices       []string              `json:"choices"`
	QuestionType  entities.QuestionType `json:"questionType"`
	CorrectAnswer string                `json:"correctAnswer"`
	UserAnswer    *string               `json:"userAnswer,omitempty"`
	IsCorrect     *bool                 `json:"isCorrect,omitempty"`
}

type resultResponse struct {
	quizResponse
	Questions []questionResponse `json:"questions"`
}

func toQuizResponse(q *entities.Quiz) quizResponse {
	ids := q.QuestionIDs
	if ids == nil {
		ids = []uuid.UUID{}
	}

	return quizResponse{
		ID:           q.ID,
		DictionaryID: q.DictionaryID,
		QuestionType: q.Mode,
		WordCount:    q.WordCount,
		QuestionIDs:  ids,
		CreatedAt:    q.CreatedAt,
		CompletedAt:  q.CompletedAt,
		Result:       q.Result,
	}
}

func toQuizList(quizzes []*entities.Quiz) []quizResponse {
	out := make([]quizResponse, len(quizzes))
	for i, q := range quizzes {
		out[i] = toQuizResponse(q)
	}
	return out
}

func toResultResponse(report *entities.QuizReport) resultResponse {
	questions := make([]questionResponse, len(report.Questions))
	for i, q := range report.Questions {
		questions[i] = questionResponse{
			ID:            q.ID,
			WordID:        q.WordID,
			Prompt:        q.Prompt,
			Choices:       q.Choices,
			QuestionType:  q.Type,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    q.UserAnswer,
			IsCorrect:     q.IsCorrect,
		}
	}

	return resultResponse{
		quizResponse: toQuizResponse(report.Quiz),
		Questions:    questions,
	}
}
