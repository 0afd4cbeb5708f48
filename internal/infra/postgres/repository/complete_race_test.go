package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres/repository"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type completion struct {
	answers []entities.Answer
	result  *entities.QuizResult
	err     error
}

func TestCompleteQuiz_ConcurrentCallsCompleteOnce(t *testing.T) {
	ctx := context.Background()
	pool := repository.ContainerPool()
	owner := time.Now().UnixNano()
	dict := repository.SeedDictionary(t, owner, "cat", "dog", "fox")

	quizRepo := repository.NewQuizRepository(pool)
	svc := service.NewQuizService(
		quizRepo,
		repository.NewDictionaryRepository(pool),
		postgres.NewTransactor(pool),
		service.NewRand(1),
		zap.NewNop(),
	)

	for round := 0; round < 5; round++ {
		quiz, err := svc.StartQuiz(ctx, owner, dict, 3, entities.ModeTranslation)
		require.NoError(t, err)

		questions, err := quizRepo.GetQuestions(ctx, quiz.ID)
		require.NoError(t, err)
		require.Len(t, questions, 3)

		right := make([]entities.Answer, len(questions))
		wrong := make([]entities.Answer, len(questions))
		for i, q := range questions {
			right[i] = entities.Answer{QuestionID: q.ID, Text: q.CorrectAnswer}
			wrong[i] = entities.Answer{QuestionID: q.ID, Text: q.CorrectAnswer + "!"}
		}

		calls := []*completion{{answers: right}, {answers: wrong}}

		var wg sync.WaitGroup
		start := make(chan struct{})
		for _, c := range calls {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				c.result, c.err = svc.CompleteQuiz(ctx, quiz.ID, owner, c.answers)
			}()
		}
		close(start)
		wg.Wait()

		var winner *completion
		losers := 0
		for _, c := range calls {
			if c.err == nil {
				winner = c
				continue
			}
			assert.ErrorIs(t, c.err, service.ErrQuizAlreadyCompleted)
			losers++
		}
		require.NotNil(t, winner, "one completion must succeed")
		require.Equal(t, 1, losers)

		stored, err := quizRepo.GetQuiz(ctx, quiz.ID, owner)
		require.NoError(t, err)
		require.True(t, stored.IsCompleted())
		assert.Equal(t, winner.result.CorrectCount, stored.Result.CorrectCount)
		assert.Equal(t, winner.result.TotalCount, stored.Result.TotalCount)
		assert.Equal(t, winner.result.ScorePercent, stored.Result.ScorePercent)

		graded, err := quizRepo.GetQuestions(ctx, quiz.ID)
		require.NoError(t, err)
		for i, q := range graded {
			require.NotNil(t, q.UserAnswer)
			assert.Equal(t, winner.answers[i].Text, *q.UserAnswer)
		}
	}
}
