package service

import "github.com/aliskhannn/vocab-quiz/internal/domain/entities"

// OptionGenerator builds multiple choice options for quiz questions.
type OptionGenerator struct {
	rng Rand
}

// NewOptionGenerator creates a new option generator.
func NewOptionGenerator(rng Rand) *OptionGenerator {
	return &OptionGenerator{rng: rng}
}

// GenerateOptions returns the correct answer mixed with the answers the sibling words
// give for the same question type. Siblings without an answer are skipped, so the
// result may hold fewer than entities.MaxChoices options. Equal texts are not merged.
func (g *OptionGenerator) GenerateOptions(
	correctAnswer string,
	questionType entities.QuestionType,
	siblings []*entities.Word,
) []string {
	options := make([]string, 0, entities.MaxChoices)
	options = append(options, correctAnswer)

	for _, s := range siblings {
		if len(options) == entities.MaxChoices {
			break
		}
		if a := s.Answer(questionType); a != "" {
			options = append(options, a)
		}
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return options
}
