package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

// ScoreStats aggregates the scores of completed quizzes.
type ScoreStats struct {
	Quizzes  int
	Perfect  int
	ScoreSum int
}

// SummaryRepository reads aggregates over completed quizzes.
type SummaryRepository struct {
	db postgres.DBTX
}

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(db postgres.DBTX) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// ScoreStats aggregates the owner's completed quizzes.
// A zero dictionaryID means all dictionaries.
func (r *SummaryRepository) ScoreStats(ctx context.Context, ownerID, dictionaryID int64) (ScoreStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE score_percent = 100),
		       COALESCE(SUM(score_percent), 0)
		FROM quizzes
		WHERE owner_id = $1
		  AND completed_at IS NOT NULL
		  AND ($2::bigint = 0 OR dictionary_id = $2::bigint)
	`

	var s ScoreStats
	err := postgres.Executor(ctx, r.db).QueryRow(ctx, query, ownerID, dictionaryID).Scan(&s.Quizzes, &s.Perfect, &s.ScoreSum)
	if err != nil {
		return ScoreStats{}, fmt.Errorf("score stats: %w", err)
	}

	return s, nil
}

// CountMistakes counts wrongly answered questions over the owner's quizzes.
func (r *SummaryRepository) CountMistakes(ctx context.Context, ownerID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM questions q
		JOIN quizzes z ON z.id = q.quiz_id
		WHERE z.owner_id = $1 AND z.completed_at IS NOT NULL AND q.is_correct = FALSE
	`

	var n int
	if err := postgres.Executor(ctx, r.db).QueryRow(ctx, query, ownerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count mistakes: %w", err)
	}

	return n, nil
}

// MostMissedWords returns the words answered wrongly most often, up to limit.
func (r *SummaryRepository) MostMissedWords(ctx context.Context, ownerID int64, limit int) ([]entities.MissedWord, error) {
	query := `
		SELECT q.word_id, COUNT(*) AS misses
		FROM questions q
		JOIN quizzes z ON z.id = q.quiz_id
		WHERE z.owner_id = $1 AND z.completed_at IS NOT NULL AND q.is_correct = FALSE
		GROUP BY q.word_id
		ORDER BY misses DESC, q.word_id
		LIMIT $2
	`

	rows, err := postgres.Executor(ctx, r.db).Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, fmt.Errorf("most missed words: %w", err)
	}
	defer rows.Close()

	out := make([]entities.MissedWord, 0, limit)
	for rows.Next() {
		var m entities.MissedWord
		if err := rows.Scan(&m.WordID, &m.Misses); err != nil {
			return nil, fmt.Errorf("scan missed word: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate missed words: %w", err)
	}

	return out, nil
}
