package quiz

import (
	"fmt"
	"testing"

	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuestions(n int) []*models.Question {
	questions := make([]*models.Question, n)
	for i := range questions {
		questions[i] = &models.Question{
			QuestionID: fmt.Sprintf("q%d", i+1),
			QuizID:     "test",
			Text:       fmt.Sprintf("Question %d?", i+1),
			Options:    []string{"A", "B", "C", "D"},
			Correct:    i % 4,
		}
	}

	return questions
}

func newTestSession(t *testing.T, n int) *Session {
	t.Helper()

	s, err := NewSession(testQuestions(n), DefaultSettings())
	require.NoError(t, err)

	return s
}

// tickTo тикает до нужного остатка времени.
func tickTo(t *testing.T, s *Session, remaining int) {
	t.Helper()

	for s.Snapshot().TimeRemaining > remaining {
		require.False(t, s.Tick())
	}
}

func TestMultiplier(t *testing.T) {
	testCases := []struct {
		streak int
		want   int
	}{
		{0, 1}, {1, 1}, {2, 1}, {3, 2}, {5, 2}, {6, 3}, {9, 4}, {11, 4}, {12, 5}, {15, 5}, {100, 5},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Multiplier(tc.streak), "streak %d", tc.streak)
	}
}

func TestPoints(t *testing.T) {
	assert.Equal(t, 106, Points(30, 1))
	assert.Equal(t, 105, Points(25, 1))
	assert.Equal(t, 100, Points(4, 1))
	assert.Equal(t, 210, Points(25, 2))
	assert.Equal(t, 100, Points(0, 1))
}

func TestGrade(t *testing.T) {
	testCases := []struct {
		percentage float64
		want       string
	}{
		{100, "A+"}, {90, "A+"}, {89.9, "A"}, {80, "A"}, {70, "B"}, {60, "C"}, {59.9, "D"}, {0, "D"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Grade(tc.percentage), "percentage %v", tc.percentage)
	}
}

func TestNewSession_Invalid(t *testing.T) {
	valid := func() *models.Question {
		return &models.Question{Text: "Q?", Options: []string{"a", "b"}, Correct: 0}
	}

	testCases := []struct {
		name      string
		questions func() []*models.Question
	}{
		{"empty", func() []*models.Question { return nil }},
		{"nil question", func() []*models.Question { return []*models.Question{nil} }},
		{"missing text", func() []*models.Question {
			q := valid()
			q.Text = ""
			return []*models.Question{q}
		}},
		{"one option", func() []*models.Question {
			q := valid()
			q.Options = []string{"a"}
			return []*models.Question{q}
		}},
		{"too many options", func() []*models.Question {
			q := valid()
			q.Options = []string{"a", "b", "c", "d", "e", "f", "g"}
			return []*models.Question{q}
		}},
		{"negative correct", func() []*models.Question {
			q := valid()
			q.Correct = -1
			return []*models.Question{q}
		}},
		{"correct out of range", func() []*models.Question {
			q := valid()
			q.Correct = 2
			return []*models.Question{q}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSession(tc.questions(), DefaultSettings())
			assert.ErrorIs(t, err, ErrInvalidQuiz)
			assert.Nil(t, s)
		})
	}
}

func TestNewSession_InitialState(t *testing.T) {
	s := newTestSession(t, 3)
	snap := s.Snapshot()

	assert.Equal(t, PhaseAnswering, snap.Phase)
	assert.Equal(t, 0, snap.QuestionIdx)
	assert.Equal(t, 3, snap.QuestionCount)
	assert.Equal(t, DefaultTimePerQuestion, snap.TimeRemaining)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, 0, snap.Streak)
	assert.Equal(t, 1, snap.Multiplier)
	assert.Equal(t, models.NoSelection, snap.Selected)
	assert.Nil(t, snap.LastAnswer)
}

func TestNewSession_CopiesQuestions(t *testing.T) {
	questions := testQuestions(1)
	s, err := NewSession(questions, DefaultSettings())
	require.NoError(t, err)

	questions[0].Options[0] = "changed"
	questions[0].Text = "changed"

	snap := s.Snapshot()
	assert.Equal(t, "A", snap.Question.Options[0])
	assert.Equal(t, "Question 1?", snap.Question.Text)
}

func TestSession_TwoCorrectAnswersScore211(t *testing.T) {
	questions := []*models.Question{
		{QuestionID: "q1", Text: "First?", Options: []string{"a", "b"}, Correct: 0},
		{QuestionID: "q2", Text: "Second?", Options: []string{"a", "b"}, Correct: 1},
	}
	s, err := NewSession(questions, DefaultSettings())
	require.NoError(t, err)

	require.True(t, s.Select(0))
	snap := s.Snapshot()
	assert.Equal(t, 106, snap.Score)
	assert.Equal(t, 1, snap.Streak)
	assert.Equal(t, 1, snap.Multiplier)
	require.NotNil(t, snap.LastAnswer)
	assert.True(t, snap.LastAnswer.IsCorrect)
	assert.Equal(t, 30, snap.LastAnswer.TimeRemaining)

	require.True(t, s.Advance())
	tickTo(t, s, 25)

	require.True(t, s.Select(1))
	snap = s.Snapshot()
	assert.Equal(t, 211, snap.Score)
	assert.Equal(t, 2, snap.Streak)
	assert.Equal(t, 1, snap.Multiplier)

	require.True(t, s.Advance())
	assert.Equal(t, PhaseCompleting, s.Phase())
	require.True(t, s.Reveal())
	assert.Equal(t, PhaseResults, s.Phase())

	results := s.Results()
	assert.Equal(t, 211, results.Score)
	assert.Equal(t, 2, results.Correct)
	assert.Equal(t, 2, results.Total)
	assert.Equal(t, 2, results.MaxStreak)
	assert.Equal(t, "A+", results.Grade)
	assert.Len(t, results.Answers, 2)
}

func TestSession_StreakMultiplierApplies(t *testing.T) {
	s := newTestSession(t, 4)

	want := []int{106, 106, 212}
	total := 0
	for i := 0; i < 3; i++ {
		require.True(t, s.Select(s.Snapshot().Question.Correct))
		total += want[i]
		assert.Equal(t, total, s.Snapshot().Score)
		require.True(t, s.Advance())
	}
	assert.Equal(t, 2, s.Snapshot().Multiplier)

	wrong := (s.Snapshot().Question.Correct + 1) % 4
	require.True(t, s.Select(wrong))
	snap := s.Snapshot()
	assert.Equal(t, total, snap.Score)
	assert.Equal(t, 0, snap.Streak)
	assert.Equal(t, 1, snap.Multiplier)
	assert.Equal(t, 3, snap.MaxStreak)
	assert.Equal(t, 0, snap.LastAnswer.Points)
}

func TestSession_DoubleSelectIsNoop(t *testing.T) {
	s := newTestSession(t, 2)

	require.True(t, s.Select(0))
	before := s.Snapshot()
	epoch := s.Epoch()

	assert.False(t, s.Select(1))
	assert.False(t, s.Select(0))

	after := s.Snapshot()
	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.Answered, after.Answered)
	assert.Equal(t, before.Selected, after.Selected)
	assert.Equal(t, epoch, s.Epoch())
}

func TestSession_SelectOutOfRangeIgnored(t *testing.T) {
	s := newTestSession(t, 1)

	assert.False(t, s.Select(-1))
	assert.False(t, s.Select(4))
	assert.Equal(t, PhaseAnswering, s.Phase())
	assert.Equal(t, 0, s.Snapshot().Answered)
}

func TestSession_Timeout(t *testing.T) {
	s := newTestSession(t, 2)
	require.True(t, s.Select(0))
	require.True(t, s.Advance())

	for i := 0; i < DefaultTimePerQuestion-1; i++ {
		require.False(t, s.Tick())
	}
	assert.Equal(t, 1, s.Snapshot().TimeRemaining)

	assert.True(t, s.Tick())

	snap := s.Snapshot()
	assert.Equal(t, PhaseRevealed, snap.Phase)
	assert.Equal(t, 0, snap.Streak)
	assert.Equal(t, 1, snap.Multiplier)
	require.NotNil(t, snap.LastAnswer)
	assert.True(t, snap.LastAnswer.TimedOut())
	assert.False(t, snap.LastAnswer.IsCorrect)
	assert.Equal(t, 0, snap.LastAnswer.TimeRemaining)

	assert.False(t, s.Select(1), "selection after timeout is locked")
	assert.False(t, s.Tick(), "tick outside answering is ignored")

	require.True(t, s.Advance())
	assert.Equal(t, PhaseCompleting, s.Phase())
	require.True(t, s.Reveal())

	results := s.Results()
	assert.Equal(t, 1, results.Correct)
	assert.Equal(t, 2, results.Total)
	assert.Len(t, results.Answers, 2)
	assert.Equal(t, float64(50), results.Percentage)
	assert.Equal(t, "D", results.Grade)
}

func TestSession_PhaseGuards(t *testing.T) {
	s := newTestSession(t, 1)

	assert.False(t, s.Advance())
	assert.False(t, s.Reveal())

	require.True(t, s.Select(0))
	assert.False(t, s.Reveal())

	require.True(t, s.Advance())
	assert.False(t, s.Advance())
	assert.False(t, s.Tick())

	require.True(t, s.Reveal())
	assert.False(t, s.Reveal())
	assert.False(t, s.Select(0))
}

func TestSession_PointerMonotonic(t *testing.T) {
	s := newTestSession(t, 5)

	prev := s.Snapshot().QuestionIdx
	for s.Phase() != PhaseCompleting {
		if s.Phase() == PhaseAnswering {
			s.Select(1)
		} else {
			s.Advance()
		}

		idx := s.Snapshot().QuestionIdx
		assert.GreaterOrEqual(t, idx, prev)
		assert.Less(t, idx, 5)
		prev = idx
	}

	assert.Len(t, s.Results().Answers, 5)
}

func TestSession_Restart(t *testing.T) {
	for _, phase := range []Phase{PhaseAnswering, PhaseRevealed, PhaseCompleting, PhaseResults} {
		t.Run(string(phase), func(t *testing.T) {
			s := newTestSession(t, 1)
			s.Tick()
			if phase != PhaseAnswering {
				require.True(t, s.Select(0))
			}
			if phase == PhaseCompleting || phase == PhaseResults {
				require.True(t, s.Advance())
			}
			if phase == PhaseResults {
				require.True(t, s.Reveal())
			}
			require.Equal(t, phase, s.Phase())
			epoch := s.Epoch()

			s.Restart()

			snap := s.Snapshot()
			assert.Equal(t, PhaseAnswering, snap.Phase)
			assert.Equal(t, 0, snap.QuestionIdx)
			assert.Equal(t, DefaultTimePerQuestion, snap.TimeRemaining)
			assert.Equal(t, 0, snap.Score)
			assert.Equal(t, 0, snap.Streak)
			assert.Equal(t, 0, snap.MaxStreak)
			assert.Equal(t, 1, snap.Multiplier)
			assert.Equal(t, 0, snap.Answered)
			assert.Equal(t, models.NoSelection, snap.Selected)
			assert.Greater(t, s.Epoch(), epoch)
		})
	}
}

func TestSnapshot_ProgressAndLowTime(t *testing.T) {
	s := newTestSession(t, 4)

	snap := s.Snapshot()
	assert.Equal(t, float64(25), snap.Progress())
	assert.False(t, snap.LowTime())

	tickTo(t, s, LowTimeThreshold)
	assert.True(t, s.Snapshot().LowTime())
}

func TestLetters(t *testing.T) {
	idx, ok := LetterToIndex("C")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	idx, ok = LetterToIndex("f")
	assert.True(t, ok)
	assert.Equal(t, 5, idx)

	_, ok = LetterToIndex("G")
	assert.False(t, ok)

	_, ok = LetterToIndex("AB")
	assert.False(t, ok)

	assert.Equal(t, "A", IndexToLetter(0))
	assert.Equal(t, "", IndexToLetter(models.NoSelection))
	assert.Equal(t, "", IndexToLetter(6))
}
