package leaderboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	ScoreKey  = "leaderboard:score"
	StreakKey = "leaderboard:streak"
)

// RedisBoard хранит таблицу лидеров в двух ZSet.
type RedisBoard struct {
	client *redis.Client
}

// NewRedisBoard создаёт таблицу поверх клиента Redis.
func NewRedisBoard(client *redis.Client) *RedisBoard {
	return &RedisBoard{client: client}
}

// Connect подключается к Redis и проверяет соединение.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// Submit обновляет оба ZSet за один запрос. ZADD GT не понижает сохранённые значения.
func (b *RedisBoard) Submit(ctx context.Context, player string, score int64, maxStreak int) error {
	pipe := b.client.Pipeline()
	pipe.ZAddGT(ctx, ScoreKey, redis.Z{Score: float64(score), Member: player})
	pipe.ZAddGT(ctx, StreakKey, redis.Z{Score: float64(maxStreak), Member: player})

	_, err := pipe.Exec(ctx)
	return err
}

func (b *RedisBoard) Top(ctx context.Context, n int64) ([]Entry, error) {
	if n <= 0 {
		return []Entry{}, nil
	}

	results, err := b.client.ZRevRangeWithScores(ctx, ScoreKey, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	pipe := b.client.Pipeline()
	streaks := make([]*redis.FloatCmd, len(results))
	for i, result := range results {
		streaks[i] = pipe.ZScore(ctx, StreakKey, result.Member.(string))
	}
	if len(results) > 0 {
		if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
	}

	entries := make([]Entry, len(results))
	for i, result := range results {
		entries[i] = Entry{
			Rank:   int64(i) + 1,
			Player: result.Member.(string),
			Score:  int64(result.Score),
			Streak: int(streaks[i].Val()),
		}
	}

	return entries, nil
}

func (b *RedisBoard) Rank(ctx context.Context, player string) (int64, error) {
	rank, err := b.client.ZRevRank(ctx, ScoreKey, player).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	return rank + 1, nil
}
