package quiz

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type commandKind int

const (
	commandSelect commandKind = iota
	commandRestart
)

type command struct {
	kind   commandKind
	option int
}

// Runner ведёт сессию по таймерам в одной горутине.
// Команды игрока приходят через канал, переходы уходят в канал событий.
type Runner struct {
	session  *Session
	mu       sync.RWMutex
	events   chan Event
	commands chan command
	done     chan struct{}

	timer      *time.Timer
	armedEpoch uint64
}

// NewRunner создаёт Runner поверх сессии. Сессию дальше трогает только Runner.
func NewRunner(session *Session) *Runner {
	return &Runner{
		session:  session,
		events:   make(chan Event, MaxCountOfEvents),
		commands: make(chan command, 16),
		done:     make(chan struct{}),
	}
}

// Events возвращает канал событий. Канал закрывается, когда Run завершается.
func (r *Runner) Events() <-chan Event {
	return r.events
}

// Select передаёт выбор варианта ответа.
func (r *Runner) Select(option int) {
	r.send(command{kind: commandSelect, option: option})
}

// Restart начинает квиз заново.
func (r *Runner) Restart() {
	r.send(command{kind: commandRestart})
}

func (r *Runner) send(cmd command) {
	select {
	case r.commands <- cmd:
	case <-r.done:
	}
}

// Snapshot возвращает текущее состояние сессии.
func (r *Runner) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.session.Snapshot()
}

// Run крутит цикл сессии до отмены ctx.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.events)
	defer close(r.done)
	defer r.stopTimer()

	r.emit(ctx, EventTypeQuestion)
	r.arm()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.timerC():
			r.timer = nil
			r.fire(ctx)
		case cmd := <-r.commands:
			r.apply(ctx, cmd)
		}
	}
}

func (r *Runner) fire(ctx context.Context) {
	r.mu.Lock()
	if r.session.Epoch() != r.armedEpoch {
		r.mu.Unlock()
		r.arm()
		return
	}

	var eventType EventType

	switch r.session.Phase() {
	case PhaseAnswering:
		if r.session.Tick() {
			slog.Debug("question timed out", "question", r.session.current)
			eventType = EventTypeRevealed
		} else {
			eventType = EventTypeTick
		}
	case PhaseRevealed:
		r.session.Advance()
		if r.session.Phase() == PhaseAnswering {
			eventType = EventTypeQuestion
		} else {
			eventType = EventTypeCompleted
		}
	case PhaseCompleting:
		r.session.Reveal()
		eventType = EventTypeResults
	}
	r.mu.Unlock()

	if eventType != "" {
		r.emit(ctx, eventType)
	}
	r.arm()
}

func (r *Runner) apply(ctx context.Context, cmd command) {
	r.mu.Lock()

	var eventType EventType

	switch cmd.kind {
	case commandSelect:
		if r.session.Select(cmd.option) {
			eventType = EventTypeRevealed
		}
	case commandRestart:
		r.session.Restart()
		slog.Debug("session restarted")
		eventType = EventTypeQuestion
	}
	r.mu.Unlock()

	if eventType == "" {
		return
	}

	r.emit(ctx, eventType)
	r.stopTimer()
	r.arm()
}

// arm заводит таймер для текущей фазы, если он ещё не заведён.
func (r *Runner) arm() {
	if r.timer != nil {
		return
	}

	r.mu.RLock()
	phase := r.session.Phase()
	settings := r.session.Settings()
	r.armedEpoch = r.session.Epoch()
	r.mu.RUnlock()

	var d time.Duration

	switch phase {
	case PhaseAnswering:
		d = settings.TickInterval
	case PhaseRevealed:
		d = settings.RevealDelay
	case PhaseCompleting:
		d = settings.CompleteDelay
	default:
		return
	}

	r.timer = time.NewTimer(d)
}

func (r *Runner) stopTimer() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Runner) timerC() <-chan time.Time {
	if r.timer == nil {
		return nil
	}

	return r.timer.C
}

func (r *Runner) emit(ctx context.Context, eventType EventType) {
	r.mu.RLock()
	event := Event{
		Type:     eventType,
		Epoch:    r.session.Epoch(),
		Snapshot: r.session.Snapshot(),
	}
	if eventType == EventTypeResults {
		event.Results = r.session.Results()
	}
	r.mu.RUnlock()

	select {
	case r.events <- event:
	case <-ctx.Done():
	}
}
