// Package storagetest содержит общие проверки для реализаций storage.QuestionRepository.
package storagetest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/letsssgooo/codeduo/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run прогоняет сценарии CRUD на пустом репозитории, который возвращает newRepo.
func Run(t *testing.T, newRepo func(t *testing.T) storage.QuestionRepository) {
	t.Run("create and find", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		quizID := uuid.NewString()

		created, err := repo.Create(ctx, question(uuid.NewString(), quizID))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.QuestionID, byID.QuestionID)
		assert.Equal(t, created.Options, byID.Options)
		assert.Equal(t, created.Correct, byID.Correct)

		byQuestionID, err := repo.FindByQuestionID(ctx, created.QuestionID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, byQuestionID.ID)
	})

	t.Run("find by quiz", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		quizID := uuid.NewString()

		for _, id := range []string{"a", "b", "c"} {
			_, err := repo.Create(ctx, question(quizID+"-"+id, quizID))
			require.NoError(t, err)
		}
		_, err := repo.Create(ctx, question(uuid.NewString(), uuid.NewString()))
		require.NoError(t, err)

		questions, err := repo.FindByQuizID(ctx, quizID)
		require.NoError(t, err)
		require.Len(t, questions, 3)

		ids := make([]string, 0, len(questions))
		for _, q := range questions {
			ids = append(ids, q.QuestionID)
		}
		assert.ElementsMatch(t, []string{quizID + "-a", quizID + "-b", quizID + "-c"}, ids)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 4)
	})

	t.Run("update", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Create(ctx, question(uuid.NewString(), uuid.NewString()))
		require.NoError(t, err)

		changed := created.Clone()
		changed.Text = "Which structure is FIFO?"
		changed.Options = []string{"Stack", "Queue"}
		changed.Correct = 1

		updated, err := repo.Update(ctx, created.ID, changed)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Which structure is FIFO?", updated.Text)
		assert.Equal(t, []string{"Stack", "Queue"}, updated.Options)

		_, err = repo.Update(ctx, uuid.NewString(), changed)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Create(ctx, question(uuid.NewString(), uuid.NewString()))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), storage.ErrNotFound)
	})

	t.Run("nil question", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Create(ctx, nil)
		assert.ErrorIs(t, err, storage.ErrNilQuestion)

		created, err := repo.Create(ctx, question(uuid.NewString(), uuid.NewString()))
		require.NoError(t, err)

		_, err = repo.Update(ctx, created.ID, nil)
		assert.ErrorIs(t, err, storage.ErrNilQuestion)

		stored, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Text, stored.Text)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.FindByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = repo.FindByQuestionID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func question(questionID, quizID string) *models.Question {
	return &models.Question{
		QuestionID: questionID,
		QuizID:     quizID,
		Text:       "Which data structure uses LIFO?",
		Options:    []string{"Queue", "Stack", "Heap", "Tree"},
		Correct:    1,
	}
}
