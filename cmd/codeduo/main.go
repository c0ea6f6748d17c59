package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/letsssgooo/codeduo/internal/bot"
	"github.com/letsssgooo/codeduo/internal/config"
	"github.com/letsssgooo/codeduo/internal/events"
	"github.com/letsssgooo/codeduo/internal/leaderboard"
	"github.com/letsssgooo/codeduo/internal/lib/slogcustom"
	"github.com/letsssgooo/codeduo/internal/quiz"
	"github.com/letsssgooo/codeduo/internal/service"
	"github.com/letsssgooo/codeduo/internal/storage"
	mongostore "github.com/letsssgooo/codeduo/internal/storage/mongo"
	"github.com/letsssgooo/codeduo/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	slog.SetDefault(setupLogger(cfg.LogLevel))
	slog.Debug("starting codeduo", "command", cfg.Command, "storage", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("codeduo failed", "err", err)
		stop()
		os.Exit(1)
	}
}

func setupLogger(level slog.Level) *slog.Logger {
	return slog.New(slogcustom.NewCustomHandler(os.Stderr, level))
}

func run(ctx context.Context, cfg *config.Config) error {
	repo, closeRepo, err := openStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	defer closeRepo()

	svc := service.NewQuestionService(repo)

	pack, err := loadPack(cfg.QuizPack)
	if err != nil {
		return err
	}

	if cfg.StorageDriver == config.DriverMemory {
		if _, _, err := importPack(ctx, svc, pack); err != nil {
			return err
		}
	}

	if lostOnExit(cfg) {
		slog.Warn("memory storage lives for one process, changes are lost on exit",
			"command", cfg.Command, "hint", "use --storage postgres or --storage mongo")
	}

	switch cfg.Command {
	case config.CommandImport:
		if len(cfg.Args) > 0 {
			pack, err = loadPack(cfg.Args[0])
			if err != nil {
				return err
			}
		}
		created, updated, err := importPack(ctx, svc, pack)
		if err != nil {
			return err
		}
		slog.Info("pack imported", "quiz", pack.ID, "created", created, "updated", updated)
		return nil
	case config.CommandList:
		return listQuestions(ctx, svc, os.Stdout)
	case config.CommandShow:
		return showQuestion(ctx, svc, os.Stdout, cfg.Args[0])
	case config.CommandDelete:
		return deleteQuestion(ctx, svc, os.Stdout, cfg.Args[0])
	default:
		return play(ctx, cfg, svc, pack)
	}
}

func play(ctx context.Context, cfg *config.Config, svc *service.QuestionService, pack *quiz.Pack) error {
	questions, err := sessionQuestions(ctx, svc, cfg.QuizID)
	if err != nil {
		return err
	}

	session, err := quiz.NewSession(questions, sessionSettings(cfg, pack))
	if err != nil {
		return err
	}

	board, closeBoard, err := openBoard(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open leaderboard: %w", err)
	}
	defer closeBoard()

	publisher, err := openPublisher(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			slog.Warn("close publisher", "err", err)
		}
	}()

	b := bot.NewBot(
		bot.NewLineFetcher(os.Stdin),
		bot.NewTerminalSender(os.Stdout, "."),
		quiz.NewRunner(session),
		board,
		publisher,
		bot.Options{
			Player:    cfg.PlayerName,
			QuizID:    cfg.QuizID,
			QuizTitle: quizTitle(cfg, pack),
		},
	)

	return b.Run(ctx)
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.QuestionRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		s, err := postgres.NewStorage(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Warn("disconnect mongo", "err", err)
			}
		}
		repo := mongostore.NewQuestionRepository(client.Database(cfg.MongoDatabase))
		if err := repo.EnsureIndexes(ctx); err != nil {
			disconnect()
			return nil, nil, err
		}
		return repo, disconnect, nil
	default:
		return storage.NewMemoryStorage(), func() {}, nil
	}
}

func openBoard(ctx context.Context, cfg *config.Config) (leaderboard.Board, func(), error) {
	if cfg.RedisAddr == "" {
		board := leaderboard.NewMemoryBoard()
		if err := leaderboard.Seed(ctx, board, leaderboard.SampleEntries); err != nil {
			return nil, nil, err
		}
		return board, func() {}, nil
	}

	client, err := leaderboard.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}

	return leaderboard.NewRedisBoard(client), func() { _ = client.Close() }, nil
}

func openPublisher(cfg *config.Config) (events.Publisher, error) {
	if cfg.RabbitMQURI == "" {
		slog.Debug("RabbitMQ URI is empty, result events go to the log")
		return events.LogPublisher{}, nil
	}

	return events.NewAMQPPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
}
