package service

import (
	"context"
	"fmt"
	"math"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

const mostMissedLimit = 5

// SummaryService reports statistics over completed quizzes.
type SummaryService struct {
	summaryRepo SummaryRepository
	dictRepo    DictionaryRepository
}

func NewSummaryService(summaryRepo SummaryRepository, dictRepo DictionaryRepository) *SummaryService {
	return &SummaryService{summaryRepo: summaryRepo, dictRepo: dictRepo}
}

// UserSummary aggregates all completed quizzes of the owner.
func (s *SummaryService) UserSummary(ctx context.Context, ownerID int64) (*entities.UserSummary, error) {
	stats, err := s.summaryRepo.ScoreStats(ctx, ownerID, 0)
	if err != nil {
		return nil, fmt.Errorf("get score stats: %w", err)
	}

	mistakes, err := s.summaryRepo.CountMistakes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count mistakes: %w", err)
	}

	missed, err := s.summaryRepo.MostMissedWords(ctx, ownerID, mostMissedLimit)
	if err != nil {
		return nil, fmt.Errorf("get most missed words: %w", err)
	}

	ids := make([]int64, len(missed))
	for i, m := range missed {
		ids[i] = m.WordID
	}

	return &entities.UserSummary{
		OwnerID:             ownerID,
		TotalQuizzes:        stats.Quizzes,
		PerfectScores:       stats.Perfect,
		TotalMistakes:       mistakes,
		MostMissedWordIDs:   ids,
		AverageScorePercent: percent(stats.ScoreSum, stats.Quizzes*100),
	}, nil
}

// DictionarySummary reports word progress and quiz scores for one dictionary.
func (s *SummaryService) DictionarySummary(ctx context.Context, ownerID, dictionaryID int64) (*entities.DictionarySummary, error) {
	ok, err := s.dictRepo.IsAuthorized(ctx, ownerID, dictionaryID)
	if err != nil {
		return nil, fmt.Errorf("check access: %w", err)
	}
	if !ok {
		return nil, ErrDictionaryNotFound
	}

	total, learned, err := s.dictRepo.WordStats(ctx, dictionaryID)
	if err != nil {
		return nil, fmt.Errorf("get word stats: %w", err)
	}

	stats, err := s.summaryRepo.ScoreStats(ctx, ownerID, dictionaryID)
	if err != nil {
		return nil, fmt.Errorf("get score stats: %w", err)
	}

	return &entities.DictionarySummary{
		DictionaryID:      dictionaryID,
		TotalWords:        total,
		LearnedWords:      learned,
		PercentageLearned: percent(learned, total),
		QuizzesTaken:      stats.Quizzes,
		AverageQuizScore:  percent(stats.ScoreSum, stats.Quizzes*100),
	}, nil
}

// percent returns round(part/whole*100), or 0 when whole is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
