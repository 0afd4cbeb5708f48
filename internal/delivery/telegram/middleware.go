package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling reports domain errors to the user with their own message.
// Anything else is logged and answered with msgInternalError.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if text, ok := userErrorMessage(err); ok {
			h.logger.Debug("request rejected",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, text)
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

func userErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrQuizNotFound):
		return msgQuizNotFound, true
	case errors.Is(err, service.ErrDictionaryNotFound):
		return msgDictionaryNotFound, true
	case errors.Is(err, service.ErrQuizAlreadyCompleted):
		return msgQuizAlreadyCompleted, true
	case errors.Is(err, service.ErrQuizNotCompleted):
		return msgQuizNotCompleted, true
	case errors.Is(err, service.ErrInvalidInput):
		return msgInvalidInput, true
	}
	return "", false
}
