package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/app"
	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/delivery/telegram"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/logger"
	"github.com/aliskhannn/vocab-quiz/internal/service"
	"github.com/aliskhannn/vocab-quiz/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	if cfg.TelegramAPIToken == "" {
		lg.Fatal("TELEGRAM_API_TOKEN is not set", zap.Error(config.ErrMissingEnvironmentVariables))
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "start",
			Description: "Запустить бота",
		},
		{
			Command:     "quiz",
			Description: "Начать квиз (использование: /quiz 3 10 mixed)",
		},
		{
			Command:     "quizzes",
			Description: "Незавершённые квизы",
		},
		{
			Command:     "history",
			Description: "Завершённые квизы",
		},
		{
			Command:     "stats",
			Description: "Статистика",
		},
		{
			Command:     "help",
			Description: "Помощь",
		},
	}

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to initialize application", zap.Error(err))
	}
	defer deps.Close()

	mode, err := entities.ParseQuizMode(cfg.Quiz.DefaultMode)
	if err != nil {
		lg.Fatal("invalid default quiz mode", zap.String("mode", cfg.Quiz.DefaultMode), zap.Error(err))
	}

	handler := telegram.NewHandler(
		bot,
		lg,
		deps.QuizService,
		deps.SummaryService,
		storage.NewQuizStorage(),
		telegram.QuizOptions{
			DefaultWordCount: cfg.Quiz.DefaultWordCount,
			MaxWordCount:     cfg.Quiz.MaxWordCount,
			DefaultMode:      mode,
		},
	)

	if cfg.Reminders.Enabled {
		reminderService := service.NewReminderService(deps.QuizRepo, lg, cfg.Reminders.Schedule, cfg.Reminders.StaleAge)
		reminderService.SetNotifier(handler)

		go func() {
			if err := reminderService.Start(ctx); err != nil {
				lg.Error("reminder service failed", zap.Error(err))
			}
		}()
	}

	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
