package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

const (
	CommandPlay   = "play"
	CommandImport = "import"
	CommandList   = "list"
	CommandShow   = "show"
	CommandDelete = "delete"
)

// Config содержит настройки приложения.
type Config struct {
	Command string
	Args    []string

	StorageDriver string
	PostgresDSN   string
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RabbitMQURI      string
	RabbitMQExchange string

	QuizID          string
	QuizPack        string
	PlayerName      string
	TimePerQuestion int
	// TimePerQuestionSet — время задано флагом или окружением и важнее настроек набора.
	TimePerQuestionSet bool

	LogLevel slog.Level
}

// Load читает .env, переменные окружения и флаги. Флаги важнее окружения.
// args передаются без имени программы.
func Load(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	timePerQuestion, err := getEnvInt("TIME_PER_QUESTION", 30)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}

	flags := pflag.NewFlagSet("codeduo", pflag.ContinueOnError)
	flags.StringVar(&cfg.StorageDriver, "storage", getEnvOrDefault("STORAGE_DRIVER", DriverMemory),
		"question storage: memory, postgres or mongo")
	flags.StringVar(&cfg.PostgresDSN, "postgres-dsn", getEnvOrDefault("POSTGRES_DSN", ""), "PostgreSQL connection string")
	flags.StringVar(&cfg.MongoURI, "mongo-uri", getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"), "MongoDB URI")
	flags.StringVar(&cfg.MongoDatabase, "mongo-database", getEnvOrDefault("MONGO_DATABASE", "codeduo"), "MongoDB database")
	flags.StringVar(&cfg.RedisAddr, "redis-addr", getEnvOrDefault("REDIS_ADDR", ""),
		"Redis address for the leaderboard, in-memory leaderboard if empty")
	flags.StringVar(&cfg.RedisPassword, "redis-password", getEnvOrDefault("REDIS_PASSWORD", ""), "Redis password")
	flags.IntVar(&cfg.RedisDB, "redis-db", redisDB, "Redis database number")
	flags.StringVar(&cfg.RabbitMQURI, "rabbitmq-uri", getEnvOrDefault("RABBITMQ_URI", ""),
		"RabbitMQ URI for result events, events are logged if empty")
	flags.StringVar(&cfg.RabbitMQExchange, "rabbitmq-exchange", getEnvOrDefault("RABBITMQ_EXCHANGE", "codeduo.events"),
		"RabbitMQ topic exchange")
	flags.StringVar(&cfg.QuizID, "quiz", getEnvOrDefault("QUIZ_ID", "dsa"), "quiz id to play")
	flags.StringVar(&cfg.QuizPack, "pack", getEnvOrDefault("QUIZ_PACK", ""),
		"path to a JSON quiz pack, built-in pack if empty")
	flags.StringVar(&cfg.PlayerName, "player", getEnvOrDefault("PLAYER_NAME", "You"), "player name on the leaderboard")
	flags.IntVar(&cfg.TimePerQuestion, "time", timePerQuestion, "seconds per question")
	logLevel := flags.String("log-level", getEnvOrDefault("LOG_LEVEL", "info"), "log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg.TimePerQuestionSet = flags.Changed("time") || os.Getenv("TIME_PER_QUESTION") != ""

	if err := cfg.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", *logLevel, err)
	}

	cfg.Command = CommandPlay
	if rest := flags.Args(); len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverMongo:
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("postgres storage requires --postgres-dsn or POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	switch c.Command {
	case CommandPlay, CommandImport, CommandList:
	case CommandShow, CommandDelete:
		if len(c.Args) != 1 {
			return fmt.Errorf("%s requires exactly one question id", c.Command)
		}
	default:
		return fmt.Errorf("unknown command %q", c.Command)
	}

	if c.TimePerQuestion <= 0 {
		return fmt.Errorf("time per question must be positive, got %d", c.TimePerQuestion)
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return n, nil
}
