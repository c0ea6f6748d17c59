package quiz

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/letsssgooo/codeduo/internal/domain/models"
)

// Results содержит итоги сессии.
type Results struct {
	Score      int                   `json:"score"`
	MaxStreak  int                   `json:"max_streak"`
	Correct    int                   `json:"correct"`
	Total      int                   `json:"total"`
	Percentage float64               `json:"percentage"`
	Grade      string                `json:"grade"`
	Answers    []models.AnswerRecord `json:"answers"`
}

func newResults(score, maxStreak, total int, answers []models.AnswerRecord) *Results {
	correct := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			correct++
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(correct) / float64(total) * 100
	}

	return &Results{
		Score:      score,
		MaxStreak:  maxStreak,
		Correct:    correct,
		Total:      total,
		Percentage: percentage,
		Grade:      Grade(percentage),
		Answers:    answers,
	}
}

// RoundedPercentage возвращает процент, округлённый до целого.
func (r *Results) RoundedPercentage() int {
	return int(math.Round(r.Percentage))
}

// ShareText возвращает текст, которым игрок делится результатом.
func (r *Results) ShareText(quizTitle string) string {
	return fmt.Sprintf(
		"🎯 Just scored %d%% on CodeDuo's %s quiz! Max streak: %d 🔥 Can you beat my score? Try it now!",
		r.RoundedPercentage(), quizTitle, r.MaxStreak,
	)
}

// ExportCSV экспортирует ответы в CSV.
func (r *Results) ExportCSV() ([]byte, error) {
	rows := make([][]string, 0, len(r.Answers)+1)
	rows = append(rows, []string{
		"QuestionID",
		"Selected",
		"Correct",
		"IsCorrect",
		"TimeRemaining",
		"Points",
	})

	for _, answer := range r.Answers {
		rows = append(rows, []string{
			answer.QuestionID,
			IndexToLetter(answer.Selected),
			IndexToLetter(answer.Correct),
			strconv.FormatBool(answer.IsCorrect),
			strconv.Itoa(answer.TimeRemaining),
			strconv.Itoa(answer.Points),
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
