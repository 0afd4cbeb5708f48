package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/google/uuid"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// ResultCache keeps reports of completed quizzes in memory.
type ResultCache struct {
	cache *ristretto.Cache[string, *entities.QuizReport]
}

// NewResultCache creates a cache holding up to maxCost reports.
func NewResultCache(maxKeys, maxCost int64) (*ResultCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, *entities.QuizReport]{
		NumCounters: maxKeys * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create result cache: %w", err)
	}

	return &ResultCache{cache: c}, nil
}

func (c *ResultCache) Get(quizID uuid.UUID) (*entities.QuizReport, bool) {
	return c.cache.Get(quizID.String())
}

// Set stores a report. Only completed quizzes are cached.
func (c *ResultCache) Set(report *entities.QuizReport) {
	if report == nil || report.Quiz == nil || !report.Quiz.IsCompleted() {
		return
	}
	c.cache.Set(report.Quiz.ID.String(), report, 1)
}

// Wait blocks until buffered writes are applied.
func (c *ResultCache) Wait() {
	c.cache.Wait()
}

func (c *ResultCache) Close() {
	c.cache.Close()
}
