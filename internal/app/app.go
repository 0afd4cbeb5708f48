// Package app wires storage, infrastructure and services shared by the bot and the API.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/config"
	"github.com/aliskhannn/vocab-quiz/internal/infra/cache"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres/repository"
	"github.com/aliskhannn/vocab-quiz/internal/infra/rabbitmq"
	"github.com/aliskhannn/vocab-quiz/internal/service"
)

type App struct {
	Pool           *pgxpool.Pool
	QuizRepo       *repository.QuizRepository
	QuizService    *service.QuizService
	SummaryService *service.SummaryService

	closers []func()
}

// New connects to the database, applies migrations when enabled and builds the services.
func New(ctx context.Context, cfg *config.Config, lg *zap.Logger) (*App, error) {
	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	a := &App{Pool: pool}
	a.closers = append(a.closers, pool.Close)

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool); err != nil {
			a.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		lg.Info("database migrations applied")
	}

	rng := service.NewTimeSeededRand()
	if cfg.Quiz.RandomSeed != 0 {
		rng = service.NewRand(cfg.Quiz.RandomSeed)
	}

	a.QuizRepo = repository.NewQuizRepository(pool)
	dictRepo := repository.NewDictionaryRepository(pool)
	summaryRepo := repository.NewSummaryRepository(pool)

	a.QuizService = service.NewQuizService(a.QuizRepo, dictRepo, postgres.NewTransactor(pool), rng, lg)
	a.SummaryService = service.NewSummaryService(summaryRepo, dictRepo)

	results, err := cache.NewResultCache(cfg.Cache.MaxKeys, cfg.Cache.MaxCost)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.QuizService.SetResultCache(results)
	a.closers = append(a.closers, results.Close)

	if cfg.AMQP.URL != "" {
		publisher, err := rabbitmq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		a.QuizService.SetPublisher(publisher)
		a.closers = append(a.closers, func() {
			if err := publisher.Close(); err != nil {
				lg.Warn("failed to close rabbitmq publisher", zap.Error(err))
			}
		})
		lg.Info("quiz events enabled", zap.String("queue", cfg.AMQP.Queue))
	}

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
