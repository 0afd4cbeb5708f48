package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	userID := cb.From.ID
	cd := decodeCallback(cb.Data)

	var notice string

	switch cd.Action {
	case actionAnswer:
		var err error
		notice, err = h.handleAnswer(ctx, cb, cd)
		if err != nil {
			h.logger.Error("handle answer",
				zap.Int64("user_id", userID),
				zap.String("data", cb.Data),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
		}

	case actionResume:
		_ = h.withErrorHandling(h.handleResume(userID, cd))(ctx, chatID)

	case actionResult:
		_ = h.withErrorHandling(h.handleResult(userID, cd))(ctx, chatID)

	case actionSubmit:
		_ = h.withErrorHandling(h.handleSubmit(userID, cd))(ctx, chatID)

	case actionUnfinished:
		_ = h.withErrorHandling(h.handleUnfinished(userID))(ctx, chatID)

	default:
		h.logger.Warn("unknown callback", zap.String("data", cb.Data))
	}

	h.answerCallback(cb.ID, notice)
}

// answerCallback removes the user's "clock" and optionally shows a notice.
func (h *Handler) answerCallback(callbackID, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

// handleAnswer records the chosen option and either sends the next question
// or submits the whole answer sheet.
func (h *Handler) handleAnswer(ctx context.Context, cb *tgbotapi.CallbackQuery, cd callbackData) (string, error) {
	chatID := cb.Message.Chat.ID

	quizID, position, choice, err := cd.answer()
	if err != nil {
		h.logger.Warn("invalid answer callback", zap.String("data", cd.Raw))
		return "", nil
	}

	sheet, err := h.sheets.Record(quizID, cb.From.ID, position, choice)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrStaleAnswer):
			return msgAlreadyAnswered, nil
		case errors.Is(err, storage.ErrSheetNotFound):
			h.sendError(chatID, msgQuizExpired)
			return "", nil
		case errors.Is(err, storage.ErrInvalidChoice):
			return "", nil
		}
		return "", err
	}

	total := len(sheet.Questions)
	edit := newEdit(chatID, cb.Message.MessageID,
		formatAnswerChosen(sheet.Questions[position], position+1, total, sheet.Answers[position].Text))
	_ = h.send(edit)

	if !sheet.Done() {
		return "", h.sendQuestion(chatID, sheet)
	}

	return "", h.finishQuiz(ctx, chatID, sheet)
}

// finishQuiz submits a complete answer sheet. The sheet is kept when the
// submission fails for a reason the user can retry.
func (h *Handler) finishQuiz(ctx context.Context, chatID int64, sheet *storage.AnswerSheet) error {
	res, err := h.quizService.CompleteQuiz(ctx, sheet.QuizID, sheet.OwnerID, sheet.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizAlreadyCompleted):
			h.sheets.Delete(sheet.QuizID)
			return h.send(newPlainMessage(chatID, msgQuizAlreadyCompleted))
		case errors.Is(err, service.ErrQuizNotFound):
			h.sheets.Delete(sheet.QuizID)
			return h.send(newPlainMessage(chatID, msgQuizNotFound))
		}

		h.logger.Error("failed to complete quiz",
			zap.String("quiz_id", sheet.QuizID.String()),
			zap.Error(err),
		)
		msg := newPlainMessage(chatID, msgSubmitFailed)
		msg.ReplyMarkup = buildRetrySubmitKeyboard(sheet.QuizID)
		return h.send(msg)
	}

	h.sheets.Delete(sheet.QuizID)

	msg := newMessage(chatID, formatQuizResult(res))
	msg.ReplyMarkup = resultKeyboard(sheet)

	return h.send(msg)
}

// handleSubmit resubmits a finished answer sheet after a failed attempt.
func (h *Handler) handleSubmit(userID int64, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quizID, err := cd.quizID()
		if err != nil {
			return nil
		}

		sheet, ok := h.sheets.Get(quizID)
		if !ok || sheet.OwnerID != userID {
			return h.send(newPlainMessage(chatID, msgQuizExpired))
		}
		if !sheet.Done() {
			return h.sendQuestion(chatID, sheet)
		}

		return h.finishQuiz(ctx, chatID, sheet)
	}
}

func (h *Handler) handleResume(userID int64, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quizID, err := cd.quizID()
		if err != nil {
			return nil
		}

		// A completed quiz shows its report instead.
		report, err := h.quizService.Result(ctx, quizID, userID)
		switch {
		case err == nil:
			return h.send(newMessage(chatID, md(msgQuizAlreadyCompleted)+"\n\n"+formatQuizReport(report)))
		case errors.Is(err, service.ErrQuizNotFound):
			return h.send(newPlainMessage(chatID, msgQuizNotFound))
		case !errors.Is(err, service.ErrQuizNotCompleted):
			return err
		}

		questions, err := h.quizService.Questions(ctx, quizID, userID)
		if err != nil {
			return err
		}
		if len(questions) == 0 {
			return h.send(newPlainMessage(chatID, msgEmptyDictionary))
		}

		sheet := &storage.AnswerSheet{
			QuizID:    quizID,
			OwnerID:   userID,
			Questions: questions,
		}
		h.sheets.Store(sheet)

		if err := h.send(newMessage(chatID, md("📝 Продолжаем квиз..."))); err != nil {
			return err
		}

		return h.sendQuestion(chatID, sheet)
	}
}

func (h *Handler) handleResult(userID int64, cd callbackData) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		quizID, err := cd.quizID()
		if err != nil {
			return nil
		}

		report, err := h.quizService.Result(ctx, quizID, userID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrQuizNotFound):
				return h.send(newPlainMessage(chatID, msgQuizNotFound))
			case errors.Is(err, service.ErrQuizNotCompleted):
				return h.send(newPlainMessage(chatID, msgQuizNotCompleted))
			}
			return err
		}

		return h.send(newMessage(chatID, formatQuizReport(report)))
	}
}
