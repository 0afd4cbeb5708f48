package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// maxListButtons limits inline buttons in quiz lists.
const maxListButtons = 10

// buildAnswerKeyboard builds one button per choice of a quiz question.
func buildAnswerKeyboard(quizID uuid.UUID, position int, q entities.QuestionView) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Choices))
	for i, choice := range q.Choices {
		button := tgbotapi.NewInlineKeyboardButtonData(choice, buildAnswerCallback(quizID, position, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// buildQuizListKeyboard builds a button per quiz; the callback depends on the quiz state.
func buildQuizListKeyboard(quizzes []*entities.Quiz) (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, q := range quizzes {
		if i == maxListButtons {
			break
		}

		label := fmt.Sprintf("▶️ %s · словарь %d", q.CreatedAt.Format("02.01 15:04"), q.DictionaryID)
		data := buildResumeCallback(q.ID)
		if q.IsCompleted() {
			label = fmt.Sprintf("📄 %s · %d%%", q.CompletedAt.Format("02.01 15:04"), q.Result.ScorePercent)
			data = buildResultCallback(q.ID)
		}

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, data)))
	}

	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

// buildReminderKeyboard builds keyboard for reminder notifications.
func buildReminderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Незавершённые квизы", buildUnfinishedCallback()),
		),
	)
}

// buildRetrySubmitKeyboard offers to resend the answers of a quiz.
func buildRetrySubmitKeyboard(quizID uuid.UUID) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Отправить ещё раз", buildSubmitCallback(quizID)),
		),
	)
}
