package service

import (
	"context"

	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/letsssgooo/codeduo/internal/storage"
)

// QuestionService отдаёт операции над вопросами в репозиторий без изменений.
// Ошибки репозитория возвращаются как есть, например storage.ErrNotFound.
type QuestionService struct {
	repo storage.QuestionRepository
}

// NewQuestionService создаёт сервис поверх репозитория.
func NewQuestionService(repo storage.QuestionRepository) *QuestionService {
	return &QuestionService{repo: repo}
}

func (s *QuestionService) CreateQuestion(ctx context.Context, q *models.Question) (*models.Question, error) {
	return s.repo.Create(ctx, q)
}

func (s *QuestionService) FindQuestionByID(ctx context.Context, id string) (*models.Question, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *QuestionService) FindQuestionsByQuizID(ctx context.Context, quizID string) ([]*models.Question, error) {
	return s.repo.FindByQuizID(ctx, quizID)
}

func (s *QuestionService) FindQuestionByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	return s.repo.FindByQuestionID(ctx, questionID)
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, q *models.Question) (*models.Question, error) {
	return s.repo.Update(ctx, id, q)
}

func (s *QuestionService) FindAllQuestions(ctx context.Context) ([]*models.Question, error) {
	return s.repo.FindAll(ctx)
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
