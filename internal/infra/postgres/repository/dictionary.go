package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

// DictionaryRepository answers access and word-list queries about dictionaries.
type DictionaryRepository struct {
	db postgres.DBTX
}

// NewDictionaryRepository creates a new DictionaryRepository.
func NewDictionaryRepository(db postgres.DBTX) *DictionaryRepository {
	return &DictionaryRepository{db: db}
}

// IsAuthorized reports whether the user owns or borrowed the dictionary.
func (r *DictionaryRepository) IsAuthorized(ctx context.Context, userID, dictionaryID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_dictionaries
			WHERE user_id = $1 AND dictionary_id = $2
		)
	`

	var ok bool
	if err := postgres.Executor(ctx, r.db).QueryRow(ctx, query, userID, dictionaryID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check dictionary access: %w", err)
	}

	return ok, nil
}

// WordsOf returns every word of the dictionary.
func (r *DictionaryRepository) WordsOf(ctx context.Context, dictionaryID int64) ([]*entities.Word, error) {
	query := `
		SELECT id, dictionary_id, writing, translation, pronunciation, is_learned
		FROM words
		WHERE dictionary_id = $1
		ORDER BY id
	`

	rows, err := postgres.Executor(ctx, r.db).Query(ctx, query, dictionaryID)
	if err != nil {
		return nil, fmt.Errorf("get words: %w", err)
	}
	defer rows.Close()

	words := make([]*entities.Word, 0)
	for rows.Next() {
		var w entities.Word
		if err := rows.Scan(&w.ID, &w.DictionaryID, &w.Writing, &w.Translation, &w.Pronunciation, &w.IsLearned); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	return words, nil
}

// WordStats counts all and learned words of the dictionary.
func (r *DictionaryRepository) WordStats(ctx context.Context, dictionaryID int64) (total, learned int, err error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_learned)
		FROM words
		WHERE dictionary_id = $1
	`

	if err := postgres.Executor(ctx, r.db).QueryRow(ctx, query, dictionaryID).Scan(&total, &learned); err != nil {
		return 0, 0, fmt.Errorf("word stats: %w", err)
	}

	return total, learned, nil
}
