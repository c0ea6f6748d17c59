package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/letsssgooo/codeduo/internal/events"
	"github.com/letsssgooo/codeduo/internal/leaderboard"
	"github.com/letsssgooo/codeduo/internal/quiz"
	"golang.org/x/sync/errgroup"
)

// TopSize — сколько игроков показывать в таблице лидеров.
const TopSize = 5

// Bot ведёт одну сессию квиза в терминале.
type Bot struct {
	fetcher   Fetcher
	sender    Sender
	runner    *quiz.Runner
	board     leaderboard.Board
	publisher events.Publisher

	player    string
	quizID    string
	quizTitle string

	lastResults *quiz.Results
}

// Options описывает сессию, которую ведёт бот.
type Options struct {
	Player    string
	QuizID    string
	QuizTitle string
}

// NewBot создаёт нового бота.
func NewBot(
	fetcher Fetcher,
	sender Sender,
	runner *quiz.Runner,
	board leaderboard.Board,
	publisher events.Publisher,
	opts Options,
) *Bot {
	return &Bot{
		fetcher:   fetcher,
		sender:    sender,
		runner:    runner,
		board:     board,
		publisher: publisher,
		player:    opts.Player,
		quizID:    opts.QuizID,
		quizTitle: opts.QuizTitle,
	}
}

// Run запускает сессию и обрабатывает ввод, пока игрок не выйдет.
// Если ввод закончился, бот дожидается результатов и завершается.
func (b *Bot) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := b.runner.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		defer cancel()
		return b.loop(gctx)
	})

	return g.Wait()
}

func (b *Bot) loop(ctx context.Context) error {
	snap := b.runner.Snapshot()
	if err := b.sender.Message(renderWelcome(b.quizTitle, snap.QuestionCount)); err != nil {
		return err
	}

	updates := b.fetcher.GetUpdates(ctx)
	quizEvents := b.runner.Events()
	inputClosed := false
	finished := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-quizEvents:
			if !ok {
				return nil
			}
			if err := b.HandleEvent(ctx, event); err != nil {
				return err
			}

			switch event.Type {
			case quiz.EventTypeResults:
				finished = true
				if inputClosed {
					return nil
				}
			case quiz.EventTypeQuestion:
				finished = false
			}
		case update, ok := <-updates:
			if !ok {
				updates = nil
				inputClosed = true
				if finished {
					return nil
				}
				continue
			}

			quit, err := b.HandleUpdate(update)
			if err != nil {
				return err
			}
			if quit {
				return b.sender.Message(msgGoodbye)
			}
		}
	}
}

// HandleUpdate обрабатывает одну строку ввода. Возвращает true, если игрок вышел.
func (b *Bot) HandleUpdate(update Update) (bool, error) {
	text := strings.ToLower(strings.TrimSpace(update.Text))

	switch text {
	case "q", "quit", "exit":
		return true, nil
	case "r", "restart":
		b.runner.Restart()
		return false, nil
	case "e", "export":
		return false, b.export()
	case "h", "help", "?":
		return false, b.sender.Message(msgHelp)
	}

	idx, ok := quiz.LetterToIndex(text)
	if !ok {
		return false, b.sender.Message(msgUnknownInput)
	}

	b.runner.Select(idx)

	return false, nil
}

// HandleEvent выводит событие сессии игроку.
func (b *Bot) HandleEvent(ctx context.Context, event quiz.Event) error {
	switch event.Type {
	case quiz.EventTypeQuestion:
		b.lastResults = nil
		return b.sender.Message(renderQuestion(event.Snapshot))
	case quiz.EventTypeTick:
		if !shouldRenderTick(event.Snapshot) {
			return nil
		}
		return b.sender.Message(renderTimer(event.Snapshot))
	case quiz.EventTypeRevealed:
		return b.sender.Message(renderReveal(event.Snapshot))
	case quiz.EventTypeCompleted:
		return b.sender.Message(msgCompleting)
	case quiz.EventTypeResults:
		if event.Results == nil {
			return nil
		}
		return b.finish(ctx, event.Results)
	}

	return nil
}

// finish сохраняет результат, публикует событие и выводит страницу результатов.
// Ошибки таблицы лидеров и брокера не прерывают сессию.
func (b *Bot) finish(ctx context.Context, results *quiz.Results) error {
	b.lastResults = results

	if err := b.board.Submit(ctx, b.player, int64(results.Score), results.MaxStreak); err != nil {
		slog.Warn("submit to leaderboard", "err", err)
	}

	rank, err := b.board.Rank(ctx, b.player)
	if err != nil {
		slog.Warn("get rank", "err", err)
	}

	top, err := b.board.Top(ctx, TopSize)
	if err != nil {
		slog.Warn("get leaderboard", "err", err)
	}

	event := events.SessionCompleted{
		EventID:     uuid.NewString(),
		Player:      b.player,
		QuizID:      b.quizID,
		QuizTitle:   b.quizTitle,
		Score:       results.Score,
		MaxStreak:   results.MaxStreak,
		Correct:     results.Correct,
		Total:       results.Total,
		Percentage:  results.RoundedPercentage(),
		Grade:       results.Grade,
		Rank:        rank,
		Answers:     results.Answers,
		CompletedAt: time.Now().UTC(),
	}
	if err := b.publisher.Publish(ctx, events.RoutingKeySessionCompleted, event); err != nil {
		slog.Warn("publish session result", "err", err)
	}

	slog.Info("session completed",
		"player", b.player, "score", results.Score, "grade", results.Grade, "rank", rank)

	return b.sender.Message(renderResults(results, rank, top, b.player, results.ShareText(b.quizTitle)))
}

func (b *Bot) export() error {
	if b.lastResults == nil {
		return b.sender.Message(msgExportUnavailable)
	}

	data, err := b.lastResults.ExportCSV()
	if err != nil {
		return err
	}

	path, err := b.sender.Document(b.quizID+"-results.csv", data)
	if err != nil {
		slog.Warn("export results", "err", err)
		return b.sender.Message("Could not save results: " + err.Error())
	}

	return b.sender.Message("Results saved to " + path)
}
