package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ContainerPool returns the pool connected to the test container.
func ContainerPool() *pgxpool.Pool {
	return testPool
}

// SeedDictionary creates a dictionary owned by ownerID with the given words.
func SeedDictionary(t *testing.T, ownerID int64, words ...string) int64 {
	return seedDictionary(t, ownerID, words, 0)
}
