package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type mockReminderRepo struct {
	listStaleOwners func(ctx context.Context, olderThan time.Time) ([]entities.StaleQuizReminder, error)
	markReminded    func(ctx context.Context, ownerID int64, olderThan, at time.Time) error
}

func (m *mockReminderRepo) ListStaleOwners(ctx context.Context, olderThan time.Time) ([]entities.StaleQuizReminder, error) {
	return m.listStaleOwners(ctx, olderThan)
}

func (m *mockReminderRepo) MarkReminded(ctx context.Context, ownerID int64, olderThan, at time.Time) error {
	if m.markReminded == nil {
		return nil
	}
	return m.markReminded(ctx, ownerID, olderThan, at)
}

// staleQuizzes holds unfinished quizzes by owner and tracks which were reminded about.
type staleQuizzes struct {
	created  map[int64]time.Time
	reminded map[int64]bool
}

func (s *staleQuizzes) repo() *mockReminderRepo {
	return &mockReminderRepo{
		listStaleOwners: func(_ context.Context, olderThan time.Time) ([]entities.StaleQuizReminder, error) {
			var out []entities.StaleQuizReminder
			for owner, at := range s.created {
				if at.Before(olderThan) && !s.reminded[owner] {
					out = append(out, entities.StaleQuizReminder{OwnerID: owner, UnfinishedCount: 1, OldestCreatedAt: at})
				}
			}
			return out, nil
		},
		markReminded: func(_ context.Context, ownerID int64, olderThan, _ time.Time) error {
			if at, ok := s.created[ownerID]; ok && at.Before(olderThan) {
				s.reminded[ownerID] = true
			}
			return nil
		},
	}
}

type mockNotifier struct {
	sent []int64
	fail map[int64]bool
}

func (m *mockNotifier) SendQuizReminder(ownerID int64, _ entities.StaleQuizReminder) error {
	if m.fail[ownerID] {
		return errors.New("bot was blocked by the user")
	}
	m.sent = append(m.sent, ownerID)
	return nil
}

func TestSendReminders(t *testing.T) {
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	repo := &mockReminderRepo{
		listStaleOwners: func(_ context.Context, olderThan time.Time) ([]entities.StaleQuizReminder, error) {
			assert.Equal(t, now.Add(-24*time.Hour), olderThan)
			return []entities.StaleQuizReminder{
				{OwnerID: 1, UnfinishedCount: 2},
				{OwnerID: 2, UnfinishedCount: 1},
				{OwnerID: 3, UnfinishedCount: 4},
			}, nil
		},
	}
	notifier := &mockNotifier{fail: map[int64]bool{2: true}}

	svc := NewReminderService(repo, zap.NewNop(), "0 * * * *", 24*time.Hour)
	svc.now = func() time.Time { return now }
	svc.SetNotifier(notifier)

	sent, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Equal(t, []int64{1, 3}, notifier.sent)
}

func TestSendReminders_WithoutNotifier(t *testing.T) {
	svc := NewReminderService(&mockReminderRepo{}, zap.NewNop(), "0 * * * *", time.Hour)

	sent, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestSendReminders_RepoError(t *testing.T) {
	repoErr := errors.New("db down")
	svc := NewReminderService(&mockReminderRepo{
		listStaleOwners: func(context.Context, time.Time) ([]entities.StaleQuizReminder, error) {
			return nil, repoErr
		},
	}, zap.NewNop(), "0 * * * *", time.Hour)
	svc.SetNotifier(&mockNotifier{})

	_, err := svc.SendReminders(context.Background())
	assert.ErrorIs(t, err, repoErr)
}

func TestStart_InvalidSchedule(t *testing.T) {
	svc := NewReminderService(&mockReminderRepo{}, zap.NewNop(), "not a cron", time.Hour)

	err := svc.Start(context.Background())
	assert.Error(t, err)
}

func TestStart_StopsOnCancel(t *testing.T) {
	svc := NewReminderService(&mockReminderRepo{}, zap.NewNop(), "0 * * * *", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reminder service did not stop")
	}
}

func TestSendReminders_OncePerStaleQuiz(t *testing.T) {
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	quizzes := &staleQuizzes{
		created:  map[int64]time.Time{7: now.Add(-48 * time.Hour)},
		reminded: map[int64]bool{},
	}
	notifier := &mockNotifier{}

	svc := NewReminderService(quizzes.repo(), zap.NewNop(), "0 * * * *", 24*time.Hour)
	svc.SetNotifier(notifier)

	for tick := 0; tick < 24; tick++ {
		svc.now = func() time.Time { return now.Add(time.Duration(tick) * time.Hour) }
		_, err := svc.SendReminders(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, []int64{7}, notifier.sent)
}

func TestSendReminders_RetriesFailedNotification(t *testing.T) {
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)
	quizzes := &staleQuizzes{
		created:  map[int64]time.Time{7: now.Add(-48 * time.Hour)},
		reminded: map[int64]bool{},
	}
	notifier := &mockNotifier{fail: map[int64]bool{7: true}}

	svc := NewReminderService(quizzes.repo(), zap.NewNop(), "0 * * * *", 24*time.Hour)
	svc.now = func() time.Time { return now }
	svc.SetNotifier(notifier)

	sent, err := svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.False(t, quizzes.reminded[7])

	notifier.fail = nil
	sent, err = svc.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.True(t, quizzes.reminded[7])
}
