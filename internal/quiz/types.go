package quiz

import (
	"errors"
	"time"

	"github.com/letsssgooo/codeduo/internal/domain/models"
)

// ErrInvalidQuiz возвращается, если набор вопросов нельзя запустить.
var ErrInvalidQuiz = errors.New("invalid quiz")

// Phase — фаза сессии.
type Phase string

const (
	PhaseAnswering  Phase = "answering"
	PhaseRevealed   Phase = "revealed"
	PhaseCompleting Phase = "completing"
	PhaseResults    Phase = "results"
)

const (
	DefaultTimePerQuestion = 30
	DefaultTickInterval    = time.Second
	DefaultRevealDelay     = 2 * time.Second
	DefaultCompleteDelay   = time.Second

	// LowTimeThreshold — с какого остатка времени таймер подсвечивается.
	LowTimeThreshold = 10
)

// Settings содержит настройки сессии.
type Settings struct {
	TimePerQuestion int           `json:"time_per_question"`
	TickInterval    time.Duration `json:"-"`
	RevealDelay     time.Duration `json:"-"`
	CompleteDelay   time.Duration `json:"-"`
}

// DefaultSettings возвращает настройки по умолчанию: 30 секунд на вопрос,
// тик раз в секунду, разбор ответа 2 секунды, экран завершения 1 секунда.
func DefaultSettings() Settings {
	return Settings{
		TimePerQuestion: DefaultTimePerQuestion,
		TickInterval:    DefaultTickInterval,
		RevealDelay:     DefaultRevealDelay,
		CompleteDelay:   DefaultCompleteDelay,
	}
}

// withDefaults заполняет нулевые поля значениями по умолчанию.
func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.TimePerQuestion <= 0 {
		s.TimePerQuestion = def.TimePerQuestion
	}
	if s.TickInterval <= 0 {
		s.TickInterval = def.TickInterval
	}
	if s.RevealDelay <= 0 {
		s.RevealDelay = def.RevealDelay
	}
	if s.CompleteDelay <= 0 {
		s.CompleteDelay = def.CompleteDelay
	}

	return s
}

// Snapshot — неизменяемый срез состояния сессии.
type Snapshot struct {
	Phase         Phase
	QuestionIdx   int
	QuestionCount int
	Question      *models.Question
	TimeRemaining int
	Score         int
	Streak        int
	MaxStreak     int
	Multiplier    int
	Selected      int
	LastAnswer    *models.AnswerRecord
	Answered      int
}

// Progress возвращает процент пройденных вопросов с учётом текущего.
func (s Snapshot) Progress() float64 {
	if s.QuestionCount == 0 {
		return 0
	}

	return float64(s.QuestionIdx+1) / float64(s.QuestionCount) * 100
}

// LowTime сообщает, что времени осталось мало.
func (s Snapshot) LowTime() bool {
	return s.Phase == PhaseAnswering && s.TimeRemaining <= LowTimeThreshold
}

// Event представляет событие сессии.
type Event struct {
	Type     EventType
	Epoch    uint64
	Snapshot Snapshot
	Results  *Results
}

// EventType — тип события сессии.
type EventType string

const (
	EventTypeQuestion  EventType = "question"
	EventTypeTick      EventType = "tick"
	EventTypeRevealed  EventType = "revealed"
	EventTypeCompleted EventType = "completed"
	EventTypeResults   EventType = "results"
)

// MaxCountOfEvents — размер буфера канала событий.
const MaxCountOfEvents = 1000

// AnswerLetters — допустимые буквы для ответов (A-F для до 6 вариантов).
var AnswerLetters = []string{"A", "B", "C", "D", "E", "F"}

// LetterToIndex преобразует букву в индекс (A=0, B=1, ...). Регистр не важен.
func LetterToIndex(letter string) (int, bool) {
	for i, l := range AnswerLetters {
		if l == letter || (len(letter) == 1 && letter[0] == l[0]+'a'-'A') {
			return i, true
		}
	}

	return -1, false
}

// IndexToLetter преобразует индекс в букву (0=A, 1=B, ...).
func IndexToLetter(idx int) string {
	if idx >= 0 && idx < len(AnswerLetters) {
		return AnswerLetters[idx]
	}

	return ""
}
