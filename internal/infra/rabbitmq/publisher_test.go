package rabbitmq

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

func TestEncodeEvent(t *testing.T) {
	id := uuid.MustParse("7d7a3f3c-3b8e-4b9f-9c1e-2f6f0c8a1d11")
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	body, err := encodeEvent(entities.QuizCompletedEvent{
		QuizID:       id,
		OwnerID:      42,
		DictionaryID: 7,
		Result:       entities.NewQuizResult(3, 4),
		CompletedAt:  at,
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))

	assert.Equal(t, id.String(), got["quizId"])
	assert.EqualValues(t, 42, got["ownerId"])
	assert.EqualValues(t, 7, got["dictionaryId"])
	assert.Equal(t, "2025-03-01T10:00:00Z", got["completedAt"])

	result, ok := got["result"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, result["correctCount"])
	assert.EqualValues(t, 1, result["incorrectCount"])
	assert.EqualValues(t, 4, result["totalCount"])
	assert.EqualValues(t, 75, result["scorePercent"])
	assert.NotContains(t, result, "durationSeconds")
}
