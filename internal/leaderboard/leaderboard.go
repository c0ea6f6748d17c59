// Package leaderboard хранит лучшие результаты игроков.
package leaderboard

import (
	"context"
	"sort"
	"sync"
)

// Entry — запись в таблице лидеров.
type Entry struct {
	Rank   int64  `json:"rank"`
	Player string `json:"player"`
	Score  int64  `json:"score"`
	Streak int    `json:"streak"`
}

// Board — таблица лидеров. Для каждого игрока хранится лучший счёт и лучшая серия.
type Board interface {
	// Submit сохраняет результат, если он лучше сохранённого.
	Submit(ctx context.Context, player string, score int64, maxStreak int) error

	// Top возвращает n лучших игроков по счёту.
	Top(ctx context.Context, n int64) ([]Entry, error)

	// Rank возвращает место игрока (с единицы) или 0, если игрока нет.
	Rank(ctx context.Context, player string) (int64, error)
}

// SampleEntries — стартовое содержимое таблицы лидеров.
var SampleEntries = []Entry{
	{Player: "Sarah Chen", Score: 18420, Streak: 15},
	{Player: "Mike Rodriguez", Score: 17850, Streak: 12},
	{Player: "Emma Thompson", Score: 17200, Streak: 10},
}

// Seed записывает entries в таблицу.
func Seed(ctx context.Context, board Board, entries []Entry) error {
	for _, e := range entries {
		if err := board.Submit(ctx, e.Player, e.Score, e.Streak); err != nil {
			return err
		}
	}

	return nil
}

// MemoryBoard хранит таблицу лидеров в памяти процесса.
type MemoryBoard struct {
	scores  map[string]int64
	streaks map[string]int
	mu      sync.RWMutex
}

// NewMemoryBoard создаёт пустую таблицу.
func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{
		scores:  make(map[string]int64),
		streaks: make(map[string]int),
	}
}

func (b *MemoryBoard) Submit(_ context.Context, player string, score int64, maxStreak int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if current, ok := b.scores[player]; !ok || score > current {
		b.scores[player] = score
	}
	if current, ok := b.streaks[player]; !ok || maxStreak > current {
		b.streaks[player] = maxStreak
	}

	return nil
}

func (b *MemoryBoard) Top(_ context.Context, n int64) ([]Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries := b.sorted()
	if n >= 0 && int64(len(entries)) > n {
		entries = entries[:n]
	}

	return entries, nil
}

func (b *MemoryBoard) Rank(_ context.Context, player string) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, e := range b.sorted() {
		if e.Player == player {
			return e.Rank, nil
		}
	}

	return 0, nil
}

// sorted упорядочивает как ZREVRANGE: по счёту, при равенстве по имени в обратном порядке.
func (b *MemoryBoard) sorted() []Entry {
	entries := make([]Entry, 0, len(b.scores))
	for player, score := range b.scores {
		entries = append(entries, Entry{Player: player, Score: score, Streak: b.streaks[player]})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}

		return entries[i].Player > entries[j].Player
	})

	for i := range entries {
		entries[i].Rank = int64(i) + 1
	}

	return entries
}
