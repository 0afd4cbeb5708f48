package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

// QuizOptions holds defaults for quizzes started from the bot.
type QuizOptions struct {
	DefaultWordCount int
	MaxWordCount     int
	DefaultMode      entities.QuizMode
}

type Handler struct {
	bot            *tgbotapi.BotAPI
	logger         *zap.Logger
	quizService    QuizService
	summaryService SummaryService
	sheets         *storage.QuizStorage
	opts           QuizOptions
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	quizService QuizService,
	summaryService SummaryService,
	sheets *storage.QuizStorage,
	opts QuizOptions,
) *Handler {
	if opts.DefaultWordCount < 1 {
		opts.DefaultWordCount = 10
	}
	if opts.MaxWordCount < opts.DefaultWordCount {
		opts.MaxWordCount = opts.DefaultWordCount
	}
	if opts.DefaultMode == "" {
		opts.DefaultMode = entities.ModeMixed
	}

	return &Handler{
		bot:            bot,
		logger:         logger,
		quizService:    quizService,
		summaryService: summaryService,
		sheets:         sheets,
		opts:           opts,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		_ = h.send(newMessage(chatID, msgUseCommands()))
		return
	}

	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		_ = h.send(newMessage(chatID, msgWelcome()))

	case "help":
		_ = h.send(newMessage(chatID, msgHelp()))

	case "quiz":
		_ = h.withErrorHandling(h.handleQuiz(userID, args))(ctx, chatID)

	case "quizzes":
		_ = h.withErrorHandling(h.handleUnfinished(userID))(ctx, chatID)

	case "history":
		_ = h.withErrorHandling(h.handleHistory(userID))(ctx, chatID)

	case "stats":
		_ = h.withErrorHandling(h.handleStats(userID, args))(ctx, chatID)

	default:
		_ = h.send(newMessage(chatID, msgUnknownCommand()))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}
