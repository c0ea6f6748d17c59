package storage

import (
	"context"
	"errors"

	"github.com/letsssgooo/codeduo/internal/domain/models"
)

// ErrNotFound возвращается, если запись не найдена.
var ErrNotFound = errors.New("question not found")

// ErrNilQuestion возвращается из Create и Update, если вопрос не передан.
var ErrNilQuestion = errors.New("question object is nil")

// QuestionRepository определяет интерфейс для хранения вопросов.
type QuestionRepository interface {
	// Create сохраняет вопрос и возвращает сохранённую запись.
	Create(ctx context.Context, q *models.Question) (*models.Question, error)

	// FindByID возвращает вопрос по ID записи.
	FindByID(ctx context.Context, id string) (*models.Question, error)

	// FindByQuizID возвращает вопросы квиза в порядке добавления.
	FindByQuizID(ctx context.Context, quizID string) ([]*models.Question, error)

	// FindByQuestionID возвращает вопрос по идентификатору вопроса.
	FindByQuestionID(ctx context.Context, questionID string) (*models.Question, error)

	// Update заменяет данные вопроса и возвращает обновлённую запись.
	Update(ctx context.Context, id string, q *models.Question) (*models.Question, error)

	// FindAll возвращает все вопросы.
	FindAll(ctx context.Context) ([]*models.Question, error)

	// Delete удаляет вопрос.
	Delete(ctx context.Context, id string) error
}
