package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func makeWords(n int) []*entities.Word {
	words := make([]*entities.Word, n)
	for i := range words {
		id := int64(i + 1)
		words[i] = &entities.Word{
			ID:            id,
			Writing:       string(rune('a' + i)),
			Translation:   string(rune('A' + i)),
			Pronunciation: "/" + string(rune('a'+i)) + "/",
		}
	}
	return words
}

func wordIDs(words []*entities.Word) []int64 {
	ids := make([]int64, len(words))
	for i, w := range words {
		ids[i] = w.ID
	}
	return ids
}

func TestSample_DistinctAndBounded(t *testing.T) {
	s := NewSampler(NewRand(7))
	words := makeWords(10)

	for n := 0; n <= 12; n++ {
		got := s.Sample(words, n)
		assert.Len(t, got, min(n, len(words)))

		seen := map[int64]bool{}
		for _, w := range got {
			assert.False(t, seen[w.ID], "word %d sampled twice", w.ID)
			seen[w.ID] = true
		}
	}
}

func TestSample_FewerWordsThanRequested(t *testing.T) {
	s := NewSampler(NewRand(1))
	words := makeWords(3)

	got := s.Sample(words, 10)
	assert.ElementsMatch(t, []int64{1, 2, 3}, wordIDs(got))

	assert.Empty(t, s.Sample(nil, 5))
}

func TestSample_DoesNotMutateInput(t *testing.T) {
	s := NewSampler(reverseRand{})
	words := makeWords(5)

	_ = s.Sample(words, 3)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, wordIDs(words))
}

func TestSample_DropsDuplicatesAndNil(t *testing.T) {
	s := NewSampler(firstRand{})
	words := makeWords(2)
	words = append(words, nil, &entities.Word{ID: 1, Writing: "dup"})

	got := s.Sample(words, 5)
	assert.Equal(t, []int64{1, 2}, wordIDs(got))
}

func TestSample_Deterministic(t *testing.T) {
	words := makeWords(20)

	a := NewSampler(NewRand(42)).Sample(words, 5)
	b := NewSampler(NewRand(42)).Sample(words, 5)
	assert.Equal(t, wordIDs(a), wordIDs(b))
}

func TestSampleExcluding(t *testing.T) {
	s := NewSampler(NewRand(3))
	words := makeWords(4)

	for range 50 {
		got := s.SampleExcluding(words, 2, 3)
		require.Len(t, got, 3)
		assert.NotContains(t, wordIDs(got), int64(2))
	}

	assert.Len(t, s.SampleExcluding(words[:2], 1, 3), 1)
	assert.Empty(t, s.SampleExcluding(words[:1], 1, 3))
}
