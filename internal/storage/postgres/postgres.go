package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/letsssgooo/codeduo/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id             TEXT PRIMARY KEY,
	question_id    TEXT NOT NULL,
	quiz_id        TEXT NOT NULL,
	question       TEXT NOT NULL,
	options        TEXT[] NOT NULL,
	correct_answer INTEGER NOT NULL,
	explanation    TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS questions_quiz_id_idx ON questions (quiz_id);
CREATE INDEX IF NOT EXISTS questions_question_id_idx ON questions (question_id);
`

const selectColumns = `
	SELECT id, question_id, quiz_id, question, options, correct_answer, explanation, created_at, updated_at
	FROM questions
`

// Storage реализует storage.QuestionRepository поверх PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage подключается к базе по dsn.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

// Migrate создаёт таблицу вопросов, если её нет.
func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.pool.Close()
}

func (s *Storage) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	if q == nil {
		return nil, storage.ErrNilQuestion
	}

	stored := q.Clone()
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	query := `
	INSERT INTO questions (id, question_id, quiz_id, question, options, correct_answer, explanation, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		stored.ID, stored.QuestionID, stored.QuizID, stored.Text, stored.Options,
		stored.Correct, stored.Explanation, stored.CreatedAt, stored.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (s *Storage) FindByID(ctx context.Context, id string) (*models.Question, error) {
	return s.findOne(ctx, selectColumns+`WHERE id = $1`, id)
}

func (s *Storage) FindByQuizID(ctx context.Context, quizID string) ([]*models.Question, error) {
	return s.findMany(ctx, selectColumns+`WHERE quiz_id = $1 ORDER BY created_at, id`, quizID)
}

func (s *Storage) FindByQuestionID(ctx context.Context, questionID string) (*models.Question, error) {
	return s.findOne(ctx, selectColumns+`WHERE question_id = $1 ORDER BY created_at, id LIMIT 1`, questionID)
}

func (s *Storage) Update(ctx context.Context, id string, q *models.Question) (*models.Question, error) {
	if q == nil {
		return nil, storage.ErrNilQuestion
	}

	query := `
	UPDATE questions
	SET question_id = $2, quiz_id = $3, question = $4, options = $5, correct_answer = $6, explanation = $7, updated_at = $8
	WHERE id = $1
	RETURNING id, question_id, quiz_id, question, options, correct_answer, explanation, created_at, updated_at
	`

	row := s.pool.QueryRow(ctx, query,
		id, q.QuestionID, q.QuizID, q.Text, q.Options, q.Correct, q.Explanation, time.Now().UTC(),
	)

	updated, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Storage) FindAll(ctx context.Context) ([]*models.Question, error) {
	return s.findMany(ctx, selectColumns+`ORDER BY created_at, id`)
}

func (s *Storage) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) findOne(ctx context.Context, query string, args ...interface{}) (*models.Question, error) {
	q, err := scanQuestion(s.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return q, nil
}

func (s *Storage) findMany(ctx context.Context, query string, args ...interface{}) ([]*models.Question, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]*models.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

func scanQuestion(row pgx.Row) (*models.Question, error) {
	var q models.Question
	err := row.Scan(
		&q.ID, &q.QuestionID, &q.QuizID, &q.Text, &q.Options,
		&q.Correct, &q.Explanation, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &q, nil
}
