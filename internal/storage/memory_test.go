package storage

import (
	"context"
	"testing"

	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuestion(questionID, quizID string) *models.Question {
	return &models.Question{
		QuestionID: questionID,
		QuizID:     quizID,
		Text:       "What is the time complexity of binary search?",
		Options:    []string{"O(n)", "O(log n)", "O(1)", "O(n log n)"},
		Correct:    1,
	}
}

func TestMemoryStorage_CreateAndFindByID(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	created, err := s.Create(ctx, newQuestion("q1", "dsa"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestMemoryStorage_CreateKeepsGivenID(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	q := newQuestion("q1", "dsa")
	q.ID = "fixed"

	created, err := s.Create(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, "fixed", created.ID)

	_, err = s.Create(ctx, q)
	assert.Error(t, err)
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	created, err := s.Create(ctx, newQuestion("q1", "dsa"))
	require.NoError(t, err)

	created.Options[0] = "changed"

	found, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "O(n)", found.Options[0])
}

func TestMemoryStorage_NotFound(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	_, err := s.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByQuestionID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Update(ctx, "missing", newQuestion("q1", "dsa"))
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "missing"), ErrNotFound)
}

func TestMemoryStorage_FindByQuizIDKeepsOrder(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	for _, q := range []*models.Question{
		newQuestion("q1", "dsa"),
		newQuestion("x1", "other"),
		newQuestion("q2", "dsa"),
		newQuestion("q3", "dsa"),
	} {
		_, err := s.Create(ctx, q)
		require.NoError(t, err)
	}

	questions, err := s.FindByQuizID(ctx, "dsa")
	require.NoError(t, err)
	require.Len(t, questions, 3)
	assert.Equal(t, "q1", questions[0].QuestionID)
	assert.Equal(t, "q2", questions[1].QuestionID)
	assert.Equal(t, "q3", questions[2].QuestionID)

	empty, err := s.FindByQuizID(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, empty)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestMemoryStorage_FindByQuestionID(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	created, err := s.Create(ctx, newQuestion("q7", "dsa"))
	require.NoError(t, err)

	found, err := s.FindByQuestionID(ctx, "q7")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestMemoryStorage_Update(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	created, err := s.Create(ctx, newQuestion("q1", "dsa"))
	require.NoError(t, err)

	changed := newQuestion("q1", "dsa")
	changed.Text = "Which structure is LIFO?"
	changed.Options = []string{"Queue", "Stack"}
	changed.Correct = 1

	updated, err := s.Update(ctx, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Which structure is LIFO?", updated.Text)
	assert.Equal(t, []string{"Queue", "Stack"}, updated.Options)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestMemoryStorage_Delete(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	first, err := s.Create(ctx, newQuestion("q1", "dsa"))
	require.NoError(t, err)
	second, err := s.Create(ctx, newQuestion("q2", "dsa"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, first.ID))

	_, err = s.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)
}
