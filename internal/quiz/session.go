package quiz

import (
	"time"

	"github.com/letsssgooo/codeduo/internal/domain/models"
)

// Session — состояние одного прохождения квиза.
// Методы синхронные и не потокобезопасны: у сессии один владелец, обычно Runner.
type Session struct {
	questions []*models.Question
	settings  Settings

	phase         Phase
	current       int
	timeRemaining int
	selected      int
	score         int
	streak        int
	maxStreak     int
	multiplier    int
	answers       []models.AnswerRecord

	// epoch меняется при каждой смене вопроса или фазы.
	epoch uint64
	now   func() time.Time
}

// NewSession проверяет вопросы и создаёт сессию на первом вопросе.
func NewSession(questions []*models.Question, settings Settings) (*Session, error) {
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	cloned := make([]*models.Question, len(questions))
	for i, q := range questions {
		cloned[i] = q.Clone()
	}

	s := &Session{
		questions: cloned,
		settings:  settings.withDefaults(),
		now:       time.Now,
	}
	s.reset()

	return s, nil
}

// Settings возвращает настройки сессии.
func (s *Session) Settings() Settings {
	return s.settings
}

// Phase возвращает текущую фазу.
func (s *Session) Phase() Phase {
	return s.phase
}

// Epoch возвращает номер текущего состояния.
func (s *Session) Epoch() uint64 {
	return s.epoch
}

// Tick уменьшает оставшееся время на единицу.
// Когда время доходит до нуля, вопрос закрывается без ответа.
// Возвращает true, если случился таймаут.
func (s *Session) Tick() bool {
	if s.phase != PhaseAnswering {
		return false
	}

	if s.timeRemaining > 0 {
		s.timeRemaining--
	}

	if s.timeRemaining == 0 {
		s.answer(models.NoSelection)
		return true
	}

	return false
}

// Select фиксирует ответ на текущий вопрос.
// Повторный выбор, выбор вне фазы ответа и несуществующий вариант игнорируются.
func (s *Session) Select(option int) bool {
	if s.phase != PhaseAnswering || s.selected != models.NoSelection {
		return false
	}

	if option < 0 || option >= len(s.questions[s.current].Options) {
		return false
	}

	s.answer(option)

	return true
}

func (s *Session) answer(option int) {
	question := s.questions[s.current]
	isCorrect := option == question.Correct

	record := models.AnswerRecord{
		QuestionID:    question.QuestionID,
		Selected:      option,
		Correct:       question.Correct,
		IsCorrect:     isCorrect,
		TimeRemaining: s.timeRemaining,
		AnsweredAt:    s.now(),
	}

	if isCorrect {
		s.streak++
		if s.streak > s.maxStreak {
			s.maxStreak = s.streak
		}
		s.multiplier = Multiplier(s.streak)
		record.Points = Points(s.timeRemaining, s.multiplier)
		s.score += record.Points
	} else {
		s.streak = 0
		s.multiplier = 1
	}

	s.answers = append(s.answers, record)
	s.selected = option
	s.setPhase(PhaseRevealed)
}

// Advance переходит к следующему вопросу или к завершению квиза.
// Работает только после ответа.
func (s *Session) Advance() bool {
	if s.phase != PhaseRevealed {
		return false
	}

	if s.current < len(s.questions)-1 {
		s.current++
		s.selected = models.NoSelection
		s.timeRemaining = s.settings.TimePerQuestion
		s.setPhase(PhaseAnswering)

		return true
	}

	s.setPhase(PhaseCompleting)

	return true
}

// Reveal показывает результаты после экрана завершения.
func (s *Session) Reveal() bool {
	if s.phase != PhaseCompleting {
		return false
	}

	s.setPhase(PhaseResults)

	return true
}

// Restart сбрасывает сессию на первый вопрос из любой фазы.
func (s *Session) Restart() {
	s.reset()
}

func (s *Session) reset() {
	s.current = 0
	s.selected = models.NoSelection
	s.timeRemaining = s.settings.TimePerQuestion
	s.score = 0
	s.streak = 0
	s.maxStreak = 0
	s.multiplier = 1
	s.answers = make([]models.AnswerRecord, 0, len(s.questions))
	s.setPhase(PhaseAnswering)
}

func (s *Session) setPhase(phase Phase) {
	s.phase = phase
	s.epoch++
}

// Snapshot возвращает копию текущего состояния.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         s.phase,
		QuestionIdx:   s.current,
		QuestionCount: len(s.questions),
		Question:      s.questions[s.current].Clone(),
		TimeRemaining: s.timeRemaining,
		Score:         s.score,
		Streak:        s.streak,
		MaxStreak:     s.maxStreak,
		Multiplier:    s.multiplier,
		Selected:      s.selected,
		Answered:      len(s.answers),
	}

	if s.phase == PhaseRevealed && len(s.answers) > 0 {
		last := s.answers[len(s.answers)-1]
		snap.LastAnswer = &last
	}

	return snap
}

// Results считает итоги по записанным ответам.
func (s *Session) Results() *Results {
	answers := make([]models.AnswerRecord, len(s.answers))
	copy(answers, s.answers)

	return newResults(s.score, s.maxStreak, len(s.questions), answers)
}
