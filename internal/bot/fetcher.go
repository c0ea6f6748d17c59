package bot

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"
)

// Update — одна строка, введённая игроком.
type Update struct {
	Text string
}

// Fetcher определяет основной интерфейс для получения ввода игрока.
type Fetcher interface {
	// GetUpdates возвращает канал строк. Канал закрывается, когда ввод закончился.
	GetUpdates(ctx context.Context) <-chan Update
}

// LineFetcher читает ввод построчно.
type LineFetcher struct {
	r io.Reader
}

func NewLineFetcher(r io.Reader) *LineFetcher {
	return &LineFetcher{r: r}
}

// GetUpdates запускает чтение в отдельной горутине.
// Горутина может остаться заблокированной на чтении после отмены ctx, пока не придёт новая строка.
func (f *LineFetcher) GetUpdates(ctx context.Context) <-chan Update {
	updates := make(chan Update)

	go func() {
		defer close(updates)

		scanner := bufio.NewScanner(f.r)
		for scanner.Scan() {
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}

			select {
			case updates <- Update{Text: text}:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			slog.Warn("read input", "err", err)
		}
	}()

	return updates
}
