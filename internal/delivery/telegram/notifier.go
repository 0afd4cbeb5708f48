package telegram

import (
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// SendQuizReminder notifies a user about unfinished quizzes. Private chat IDs
// equal user IDs, so the owner ID is used as the chat.
func (h *Handler) SendQuizReminder(ownerID int64, r entities.StaleQuizReminder) error {
	msg := newMessage(ownerID, buildReminderNotification(r))
	msg.ReplyMarkup = buildReminderKeyboard()

	return h.send(msg)
}
