package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

var errQuizUsage = errors.New("usage: /quiz <dictionary_id> [count] [mode]")

// quizArgs are the parsed arguments of the /quiz command.
type quizArgs struct {
	DictionaryID int64
	WordCount    int
	Mode         entities.QuizMode
}

// parseQuizArgs parses "<dictionary_id> [count] [mode]". Count and mode may
// come in any order and default to opts.
func parseQuizArgs(s string, opts QuizOptions) (quizArgs, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 3 {
		return quizArgs{}, errQuizUsage
	}

	dictID, err := parseDictionaryID(fields[0])
	if err != nil {
		return quizArgs{}, errQuizUsage
	}

	args := quizArgs{
		DictionaryID: dictID,
		WordCount:    opts.DefaultWordCount,
		Mode:         opts.DefaultMode,
	}

	var countSet, modeSet bool
	for _, f := range fields[1:] {
		if n, err := strconv.Atoi(f); err == nil {
			if countSet || n < 1 || n > opts.MaxWordCount {
				return quizArgs{}, errQuizUsage
			}
			args.WordCount, countSet = n, true
			continue
		}

		mode, err := entities.ParseQuizMode(f)
		if err != nil || modeSet {
			return quizArgs{}, errQuizUsage
		}
		args.Mode, modeSet = mode, true
	}

	return args, nil
}

func parseDictionaryID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid dictionary id")
	}
	return id, nil
}
