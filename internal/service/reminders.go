package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReminderService periodically reminds users about quizzes they did not finish.
type ReminderService struct {
	repo     ReminderRepository
	notifier ReminderNotifier
	logger   *zap.Logger
	schedule string
	staleAge time.Duration
	now      func() time.Time
}

// NewReminderService creates a new reminder service.
// schedule is a standard 5-field cron expression evaluated in UTC.
func NewReminderService(
	repo ReminderRepository,
	logger *zap.Logger,
	schedule string,
	staleAge time.Duration,
) *ReminderService {
	return &ReminderService{
		repo:     repo,
		logger:   logger,
		schedule: schedule,
		staleAge: staleAge,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *ReminderService) SetNotifier(notifier ReminderNotifier) {
	s.notifier = notifier
}

// Start runs the reminder schedule until ctx is canceled.
func (s *ReminderService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: processing quiz reminders")
		if _, err := s.SendReminders(ctx); err != nil {
			s.logger.Error("failed to send quiz reminders", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	s.logger.Info("reminder service started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("reminder service stopped")

	return nil
}

// SendReminders notifies every owner with unfinished quizzes older than the stale age.
// Each stale quiz is reminded about once.
// It returns the number of reminders sent. Failed notifications are logged and skipped.
func (s *ReminderService) SendReminders(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, nil
	}

	now := s.now()
	olderThan := now.Add(-s.staleAge)

	stale, err := s.repo.ListStaleOwners(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("list stale owners: %w", err)
	}

	sent := 0
	for _, rem := range stale {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		if err := s.notifier.SendQuizReminder(rem.OwnerID, rem); err != nil {
			s.logger.Warn("failed to send quiz reminder",
				zap.Int64("owner_id", rem.OwnerID),
				zap.Error(err),
			)
			continue
		}
		sent++

		if err := s.repo.MarkReminded(ctx, rem.OwnerID, olderThan, now); err != nil {
			s.logger.Warn("failed to mark quizzes as reminded",
				zap.Int64("owner_id", rem.OwnerID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("quiz reminders processed", zap.Int("total_sent", sent))

	return sent, nil
}
