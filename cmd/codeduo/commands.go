package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/letsssgooo/codeduo/internal/config"
	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/letsssgooo/codeduo/internal/quiz"
	"github.com/letsssgooo/codeduo/internal/service"
	"github.com/letsssgooo/codeduo/internal/storage"
)

// loadPack читает набор вопросов из файла или берёт встроенный.
func loadPack(path string) (*quiz.Pack, error) {
	if path == "" {
		return quiz.BuiltinPack(quiz.DefaultPackName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return quiz.LoadPack(data)
}

// importPack сохраняет вопросы набора. Вопрос с тем же QuestionID обновляется.
func importPack(ctx context.Context, svc *service.QuestionService, pack *quiz.Pack) (created, updated int, err error) {
	for _, q := range pack.Questions {
		existing, err := svc.FindQuestionByQuestionID(ctx, q.QuestionID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			if _, err := svc.CreateQuestion(ctx, q); err != nil {
				return created, updated, fmt.Errorf("create %s: %w", q.QuestionID, err)
			}
			created++
		case err != nil:
			return created, updated, fmt.Errorf("find %s: %w", q.QuestionID, err)
		default:
			if _, err := svc.UpdateQuestion(ctx, existing.ID, q); err != nil {
				return created, updated, fmt.Errorf("update %s: %w", q.QuestionID, err)
			}
			updated++
		}
	}

	return created, updated, nil
}

func listQuestions(ctx context.Context, svc *service.QuestionService, w io.Writer) error {
	questions, err := svc.FindAllQuestions(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tQUIZ\tQUESTION ID\tQUESTION")
	for _, q := range questions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", q.ID, q.QuizID, q.QuestionID, q.Text)
	}

	return tw.Flush()
}

func showQuestion(ctx context.Context, svc *service.QuestionService, w io.Writer, id string) error {
	q, err := svc.FindQuestionByID(ctx, id)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(q)
}

func deleteQuestion(ctx context.Context, svc *service.QuestionService, w io.Writer, id string) error {
	if err := svc.DeleteQuestion(ctx, id); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "deleted %s\n", id)
	return err
}

// sessionQuestions возвращает вопросы квиза из хранилища.
func sessionQuestions(ctx context.Context, svc *service.QuestionService, quizID string) ([]*models.Question, error) {
	questions, err := svc.FindQuestionsByQuizID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no questions for quiz %q, run the import command first", quizID)
	}

	return questions, nil
}

// sessionSettings берёт настройки набора, если он описывает выбранный квиз.
// Время, заданное флагом или окружением, важнее времени из набора.
func sessionSettings(cfg *config.Config, pack *quiz.Pack) quiz.Settings {
	settings := quiz.DefaultSettings()
	if pack != nil && pack.ID == cfg.QuizID && pack.Settings.TimePerQuestion > 0 {
		settings.TimePerQuestion = pack.Settings.TimePerQuestion
	}
	if cfg.TimePerQuestionSet {
		settings.TimePerQuestion = cfg.TimePerQuestion
	}

	return settings
}

// quizTitle берёт название из набора, если он описывает выбранный квиз.
func quizTitle(cfg *config.Config, pack *quiz.Pack) string {
	if pack == nil || pack.ID != cfg.QuizID {
		return cfg.QuizID
	}

	return pack.Title
}

// lostOnExit сообщает, что команда меняет хранилище, которое живёт только в памяти процесса.
func lostOnExit(cfg *config.Config) bool {
	if cfg.StorageDriver != config.DriverMemory {
		return false
	}

	return cfg.Command == config.CommandImport || cfg.Command == config.CommandDelete
}
