package service

import "github.com/aliskhannn/vocab-quiz/internal/domain/entities"

// Sampler draws duplicate-free random subsets of dictionary words.
type Sampler struct {
	rng Rand
}

// NewSampler creates a new Sampler.
func NewSampler(rng Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample returns up to n distinct words chosen uniformly at random.
// If there are fewer than n words, all of them are returned in random order.
func (s *Sampler) Sample(words []*entities.Word, n int) []*entities.Word {
	return s.pick(uniqueWords(words, 0, false), n)
}

// SampleExcluding works like Sample but never returns the word with excludeID.
func (s *Sampler) SampleExcluding(words []*entities.Word, excludeID int64, n int) []*entities.Word {
	return s.pick(uniqueWords(words, excludeID, true), n)
}

// pick runs a partial Fisher-Yates shuffle over pool and returns its first n elements.
func (s *Sampler) pick(pool []*entities.Word, n int) []*entities.Word {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	n = min(n, len(pool))

	for i := 0; i < n; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:n]
}

// uniqueWords copies words, dropping nils, repeated IDs and optionally excludeID.
func uniqueWords(words []*entities.Word, excludeID int64, exclude bool) []*entities.Word {
	seen := make(map[int64]struct{}, len(words))
	out := make([]*entities.Word, 0, len(words))
	for _, w := range words {
		if w == nil || (exclude && w.ID == excludeID) {
			continue
		}
		if _, ok := seen[w.ID]; ok {
			continue
		}
		seen[w.ID] = struct{}{}
		out = append(out, w)
	}
	return out
}
