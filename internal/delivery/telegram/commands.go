package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

func (h *Handler) handleQuiz(userID int64, argsStr string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		args, err := parseQuizArgs(argsStr, h.opts)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgQuizUsage))
		}

		h.logger.Debug("starting new quiz",
			zap.Int64("user_id", userID),
			zap.Int64("dictionary_id", args.DictionaryID),
			zap.Int("word_count", args.WordCount),
			zap.String("mode", string(args.Mode)),
		)

		quiz, err := h.quizService.StartQuiz(ctx, userID, args.DictionaryID, args.WordCount, args.Mode)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrDictionaryNotFound):
				return h.send(newPlainMessage(chatID, msgDictionaryNotFound))
			case errors.Is(err, service.ErrInvalidInput):
				return h.send(newPlainMessage(chatID, msgQuizUsage))
			}
			return err
		}

		questions, err := h.quizService.Questions(ctx, quiz.ID, userID)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return h.send(newPlainMessage(chatID, msgEmptyDictionary))
		}

		sheet := &storage.AnswerSheet{
			QuizID:    quiz.ID,
			OwnerID:   userID,
			Questions: questions,
		}
		h.sheets.Store(sheet)

		if err := h.send(newMessage(chatID, buildQuizStartMessage(quiz.Mode, len(questions)))); err != nil {
			return err
		}

		return h.sendQuestion(chatID, sheet)
	}
}

// sendQuestion sends the current question of the sheet with answer buttons.
func (h *Handler) sendQuestion(chatID int64, sheet *storage.AnswerSheet) error {
	q, ok := sheet.Current()
	if !ok {
		return nil
	}

	position := len(sheet.Answers)
	msg := newMessage(chatID, formatQuizQuestion(q, position+1, len(sheet.Questions)))
	msg.ReplyMarkup = buildAnswerKeyboard(sheet.QuizID, position, q)

	return h.send(msg)
}

func (h *Handler) handleUnfinished(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quizzes, err := h.quizService.ListUnfinished(ctx, userID)
		if err != nil {
			return err
		}
		if len(quizzes) == 0 {
			return h.send(newPlainMessage(chatID, msgNoUnfinished))
		}

		msg := newMessage(chatID, formatQuizList("📝 Незавершённые квизы", quizzes))
		if kb, ok := buildQuizListKeyboard(quizzes); ok {
			msg.ReplyMarkup = kb
		}

		return h.send(msg)
	}
}

func (h *Handler) handleHistory(userID int64) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quizzes, err := h.quizService.ListCompleted(ctx, userID)
		if err != nil {
			return err
		}
		if len(quizzes) == 0 {
			return h.send(newPlainMessage(chatID, msgNoCompleted))
		}

		msg := newMessage(chatID, formatQuizList("📚 Завершённые квизы", quizzes))
		if kb, ok := buildQuizListKeyboard(quizzes); ok {
			msg.ReplyMarkup = kb
		}

		return h.send(msg)
	}
}

func (h *Handler) handleStats(userID int64, argsStr string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		argsStr = strings.TrimSpace(argsStr)
		if argsStr == "" {
			summary, err := h.summaryService.UserSummary(ctx, userID)
			if err != nil {
				return err
			}
			return h.send(newMessage(chatID, formatUserSummary(summary)))
		}

		dictID, err := parseDictionaryID(argsStr)
		if err != nil {
			return h.send(newPlainMessage(chatID, msgStatsUsage))
		}

		summary, err := h.summaryService.DictionarySummary(ctx, userID, dictID)
		if err != nil {
			if errors.Is(err, service.ErrDictionaryNotFound) {
				return h.send(newPlainMessage(chatID, msgDictionaryNotFound))
			}
			return err
		}

		return h.send(newMessage(chatID, formatDictionarySummary(summary)))
	}
}

// resultKeyboard offers the graded answers of a completed quiz.
func resultKeyboard(sheet *storage.AnswerSheet) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Разбор ответов", buildResultCallback(sheet.QuizID)),
		),
	)
}
