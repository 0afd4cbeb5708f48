package telegram

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func TestBuildProgressBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]", buildProgressBar(1, 2, 10))
	assert.Equal(t, "[░░░░░]", buildProgressBar(0, 0, 5))
	assert.Equal(t, "[███]", buildProgressBar(5, 3, 3))
}

func TestFormatQuizResult(t *testing.T) {
	res := entities.NewQuizResult(3, 4)
	d := 75
	res.DurationSeconds = &d

	text := formatQuizResult(&res)
	assert.Contains(t, text, "3/4 \\(75%\\)")
	assert.Contains(t, text, "1 мин 15 с")
	assert.Contains(t, text, "Хороший результат")
}

func TestFormatQuizReport(t *testing.T) {
	quiz := entities.NewQuiz(1, 2, entities.ModeTranslation, 3, time.Now())
	require.NoError(t, quiz.Complete(1, 2, time.Now()))

	yes, no := true, false
	right, wrong := "кот", "пёс"
	report := &entities.QuizReport{
		Quiz: quiz,
		Questions: []*entities.Question{
			{ID: uuid.New(), Prompt: "cat", CorrectAnswer: "кот", UserAnswer: &right, IsCorrect: &yes},
			{ID: uuid.New(), Prompt: "bird", CorrectAnswer: "птица", UserAnswer: &wrong, IsCorrect: &no},
			{ID: uuid.New(), Prompt: "fish", CorrectAnswer: "рыба"},
		},
	}

	text := formatQuizReport(report)
	assert.Contains(t, text, "✅ cat — кот")
	assert.Contains(t, text, "❌ bird — пёс \\(верно: птица\\)")
	assert.Contains(t, text, "➖ fish — рыба")
}

func TestBuildQuizListKeyboard(t *testing.T) {
	open := entities.NewQuiz(1, 2, entities.ModeMixed, 3, time.Now())
	done := entities.NewQuiz(1, 2, entities.ModeMixed, 3, time.Now())
	require.NoError(t, done.Complete(3, 3, time.Now()))

	kb, ok := buildQuizListKeyboard([]*entities.Quiz{open, done})
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 2)

	require.NotNil(t, kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, buildResumeCallback(open.ID), *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, buildResultCallback(done.ID), *kb.InlineKeyboard[1][0].CallbackData)

	_, ok = buildQuizListKeyboard(nil)
	assert.False(t, ok)
}

func TestBuildAnswerKeyboard(t *testing.T) {
	quizID := uuid.New()
	q := entities.QuestionView{ID: uuid.New(), Prompt: "cat", Choices: []string{"кот", "пёс", "рыба"}}

	kb := buildAnswerKeyboard(quizID, 1, q)
	require.Len(t, kb.InlineKeyboard, 3)

	for i, row := range kb.InlineKeyboard {
		assert.Equal(t, q.Choices[i], row[0].Text)
		assert.Equal(t, buildAnswerCallback(quizID, 1, i), *row[0].CallbackData)
	}
}
