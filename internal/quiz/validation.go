package quiz

import (
	"fmt"

	"github.com/letsssgooo/codeduo/internal/domain/models"
)

// validateQuestions проверяет, что вопросы можно провести в сессии.
func validateQuestions(questions []*models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: need at least one question", ErrInvalidQuiz)
	}

	for i, question := range questions {
		if question == nil {
			return fmt.Errorf("%w: question %d is nil", ErrInvalidQuiz, i)
		}

		if question.Text == "" {
			return fmt.Errorf("%w: missing text of %d question", ErrInvalidQuiz, i)
		}

		if len(question.Options) < 2 {
			return fmt.Errorf("%w: amount of options must be at least two in %d question", ErrInvalidQuiz, i)
		}

		if len(question.Options) > len(AnswerLetters) {
			return fmt.Errorf("%w: amount of options must be at most %d in %d question",
				ErrInvalidQuiz, len(AnswerLetters), i)
		}

		if question.Correct < 0 || question.Correct >= len(question.Options) {
			return fmt.Errorf("%w: index of correct answer in %d question is out of range", ErrInvalidQuiz, i)
		}
	}

	return nil
}
