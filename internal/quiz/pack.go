package quiz

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/letsssgooo/codeduo/internal/domain/models"
)

//go:embed packs/*.json
var packsFS embed.FS

// DefaultPackName — встроенный набор вопросов по структурам данных и алгоритмам.
const DefaultPackName = "dsa"

// Pack — набор вопросов одного квиза.
type Pack struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Settings  Settings           `json:"settings"`
	Questions []*models.Question `json:"questions"`
}

// LoadPack парсит JSON и проверяет набор вопросов.
func LoadPack(data []byte) (*Pack, error) {
	pack := &Pack{}
	if err := json.Unmarshal(data, pack); err != nil {
		return nil, err
	}

	if err := isCorrectPack(pack); err != nil {
		return nil, fmt.Errorf("can not load pack, %w", err)
	}

	for _, q := range pack.Questions {
		if q.QuizID == "" {
			q.QuizID = pack.ID
		}
	}

	return pack, nil
}

// BuiltinPack загружает встроенный набор по имени.
func BuiltinPack(name string) (*Pack, error) {
	data, err := packsFS.ReadFile("packs/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown pack %q: %w", name, err)
	}

	return LoadPack(data)
}

func isCorrectPack(pack *Pack) error {
	if pack.ID == "" {
		return fmt.Errorf("%w: missing field id", ErrInvalidQuiz)
	}

	if pack.Title == "" {
		return fmt.Errorf("%w: missing field title", ErrInvalidQuiz)
	}

	if pack.Settings.TimePerQuestion < 0 {
		return fmt.Errorf("%w: time_per_question must not be negative", ErrInvalidQuiz)
	}

	return validateQuestions(pack.Questions)
}
