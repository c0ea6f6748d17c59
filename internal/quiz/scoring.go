package quiz

const (
	BasePoints       = 100
	TimeBonusDivisor = 5
	StreakStep       = 3
	MaxMultiplier    = 5
)

// Multiplier возвращает множитель очков для серии: min(streak/3+1, 5).
func Multiplier(streak int) int {
	if streak < 0 {
		streak = 0
	}

	m := streak/StreakStep + 1
	if m > MaxMultiplier {
		return MaxMultiplier
	}

	return m
}

// Points возвращает очки за верный ответ.
func Points(timeRemaining, multiplier int) int {
	if timeRemaining < 0 {
		timeRemaining = 0
	}

	return (BasePoints + timeRemaining/TimeBonusDivisor) * multiplier
}

// Grade переводит процент верных ответов в оценку.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A+"
	case percentage >= 80:
		return "A"
	case percentage >= 70:
		return "B"
	case percentage >= 60:
		return "C"
	default:
		return "D"
	}
}
