package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/letsssgooo/codeduo/internal/domain/models"
)

// MemoryStorage реализует QuestionRepository в памяти.
type MemoryStorage struct {
	questions map[string]*models.Question // ключ - ID записи
	order     []string
	mu        sync.RWMutex
}

// NewMemoryStorage создаёт новый MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		questions: make(map[string]*models.Question),
	}
}

// Create сохраняет вопрос. Пустой ID заменяется на сгенерированный.
func (s *MemoryStorage) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	if q == nil {
		return nil, ErrNilQuestion
	}

	stored := q.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[stored.ID]; ok {
		return nil, fmt.Errorf("question %s already exists", stored.ID)
	}

	s.questions[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	return stored.Clone(), nil
}

// FindByID возвращает вопрос по ID записи.
func (s *MemoryStorage) FindByID(ctx context.Context, id string) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, ErrNotFound
	}

	return q.Clone(), nil
}

// FindByQuizID возвращает вопросы квиза.
func (s *MemoryStorage) FindByQuizID(ctx context.Context, quizID string) ([]*models.Question, error) {
	return s.filter(func(q *models.Question) bool {
		return q.QuizID == quizID
	}), nil
}

// FindByQuestionID возвращает первый вопрос с данным идентификатором вопроса.
func (s *MemoryStorage) FindByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	found := s.filter(func(q *models.Question) bool {
		return q.QuestionID == questionID
	})
	if len(found) == 0 {
		return nil, ErrNotFound
	}

	return found[0], nil
}

// Update заменяет данные вопроса, сохраняя ID и время создания.
func (s *MemoryStorage) Update(ctx context.Context, id string, q *models.Question) (*models.Question, error) {
	if q == nil {
		return nil, ErrNilQuestion
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.questions[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := q.Clone()
	updated.ID = old.ID
	updated.CreatedAt = old.CreatedAt
	updated.UpdatedAt = time.Now()
	s.questions[id] = updated

	return updated.Clone(), nil
}

// FindAll возвращает все вопросы в порядке добавления.
func (s *MemoryStorage) FindAll(ctx context.Context) ([]*models.Question, error) {
	return s.filter(func(*models.Question) bool { return true }), nil
}

// Delete удаляет вопрос.
func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return ErrNotFound
	}

	delete(s.questions, id)

	for i, orderedID := range s.order {
		if orderedID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

func (s *MemoryStorage) filter(match func(q *models.Question) bool) []*models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Question, 0)

	for _, id := range s.order {
		q := s.questions[id]
		if match(q) {
			result = append(result, q.Clone())
		}
	}

	return result
}
