package leaderboard

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBoard(t *testing.T) (*RedisBoard, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisBoard(client), mr
}

func boards(t *testing.T) map[string]Board {
	redisBoard, _ := newRedisBoard(t)

	return map[string]Board{
		"memory": NewMemoryBoard(),
		"redis":  redisBoard,
	}
}

func TestBoard_SeedAndRank(t *testing.T) {
	for name, board := range boards(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, Seed(ctx, board, SampleEntries))
			require.NoError(t, board.Submit(ctx, "You", 424, 3))

			top, err := board.Top(ctx, 3)
			require.NoError(t, err)
			require.Len(t, top, 3)
			assert.Equal(t, Entry{Rank: 1, Player: "Sarah Chen", Score: 18420, Streak: 15}, top[0])
			assert.Equal(t, "Mike Rodriguez", top[1].Player)
			assert.Equal(t, "Emma Thompson", top[2].Player)

			rank, err := board.Rank(ctx, "You")
			require.NoError(t, err)
			assert.Equal(t, int64(4), rank)

			rank, err = board.Rank(ctx, "Nobody")
			require.NoError(t, err)
			assert.Equal(t, int64(0), rank)
		})
	}
}

func TestBoard_KeepsBest(t *testing.T) {
	for name, board := range boards(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, board.Submit(ctx, "alice", 500, 2))
			require.NoError(t, board.Submit(ctx, "alice", 300, 5))
			require.NoError(t, board.Submit(ctx, "bob", 400, 1))

			top, err := board.Top(ctx, 10)
			require.NoError(t, err)
			require.Len(t, top, 2)
			assert.Equal(t, Entry{Rank: 1, Player: "alice", Score: 500, Streak: 5}, top[0])
			assert.Equal(t, Entry{Rank: 2, Player: "bob", Score: 400, Streak: 1}, top[1])

			require.NoError(t, board.Submit(ctx, "bob", 900, 0))
			rank, err := board.Rank(ctx, "bob")
			require.NoError(t, err)
			assert.Equal(t, int64(1), rank)
		})
	}
}

func TestBoard_TopEmpty(t *testing.T) {
	for name, board := range boards(t) {
		t.Run(name, func(t *testing.T) {
			top, err := board.Top(context.Background(), 5)
			require.NoError(t, err)
			assert.Empty(t, top)
		})
	}
}

func TestRedisBoard_Keys(t *testing.T) {
	board, mr := newRedisBoard(t)
	ctx := context.Background()

	require.NoError(t, board.Submit(ctx, "alice", 250, 4))

	score, err := mr.ZScore(ScoreKey, "alice")
	require.NoError(t, err)
	assert.Equal(t, float64(250), score)

	streak, err := mr.ZScore(StreakKey, "alice")
	require.NoError(t, err)
	assert.Equal(t, float64(4), streak)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	mr.Close()
	_, err = Connect(context.Background(), mr.Addr(), "", 0)
	assert.Error(t, err)
}
