package models

import (
	"time"
)

// Модели, которые видны снаружи хранилища. Сервис и сессия квиза работают с ними,
// репозитории сохраняют их как есть.

// NoSelection - индекс ответа, если время на вопрос истекло без выбора.
const NoSelection = -1

// Question определяет вопрос квиза.
// ID - идентификатор записи в хранилище, QuestionID - идентификатор вопроса внутри набора.
type Question struct {
	ID          string    `json:"id" bson:"_id"`
	QuestionID  string    `json:"question_id" bson:"question_id"`
	QuizID      string    `json:"quiz_id" bson:"quiz_id"`
	Text        string    `json:"question" bson:"question"`
	Options     []string  `json:"options" bson:"options"`
	Correct     int       `json:"correct_answer" bson:"correct_answer"`
	Explanation string    `json:"explanation,omitempty" bson:"explanation,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Clone возвращает копию вопроса, не разделяющую слайс вариантов.
func (q *Question) Clone() *Question {
	c := *q
	c.Options = append([]string(nil), q.Options...)
	return &c
}

// AnswerRecord определяет ответ на один вопрос сессии.
type AnswerRecord struct {
	QuestionID    string    `json:"question_id"`
	Selected      int       `json:"selected"`
	Correct       int       `json:"correct"`
	IsCorrect     bool      `json:"is_correct"`
	TimeRemaining int       `json:"time_remaining"`
	Points        int       `json:"points"`
	AnsweredAt    time.Time `json:"answered_at"`
}

// TimedOut сообщает, что ответ записан по таймауту.
func (a AnswerRecord) TimedOut() bool {
	return a.Selected == NoSelection
}
