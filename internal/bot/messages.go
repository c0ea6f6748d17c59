package bot

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/letsssgooo/codeduo/internal/domain/models"
	"github.com/letsssgooo/codeduo/internal/leaderboard"
	"github.com/letsssgooo/codeduo/internal/quiz"
)

const msgHelp = `Answer with a letter (A-F). Type "r" to restart, "e" to export results to CSV, "q" to quit.`

const msgUnknownInput = `Unknown input. ` + msgHelp

const msgCompleting = `Quiz Complete! Calculating your results...`

const msgExportUnavailable = `Results are not ready yet.`

const msgGoodbye = `Bye!`

var (
	colorTitle   = color.New(color.FgMagenta, color.Bold)
	colorCorrect = color.New(color.FgGreen, color.Bold)
	colorWrong   = color.New(color.FgRed, color.Bold)
	colorTimer   = color.New(color.FgBlue)
	colorLowTime = color.New(color.FgRed)
	colorMuted   = color.New(color.FgHiBlack)
)

func renderWelcome(title string, questions int) string {
	return fmt.Sprintf("%s\n%d questions. %s", colorTitle.Sprint(title), questions, msgHelp)
}

func renderQuestion(snap quiz.Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\nQuestion %d of %d  %s\n",
		snap.QuestionIdx+1, snap.QuestionCount,
		colorMuted.Sprintf("%d%% Complete", int(math.Round(snap.Progress()))))
	fmt.Fprintf(&sb, "%s  Streak: %d  Multiplier: x%d  Score: %d\n",
		renderTimer(snap), snap.Streak, snap.Multiplier, snap.Score)
	fmt.Fprintf(&sb, "%s\n", colorTitle.Sprint(snap.Question.Text))

	for i, option := range snap.Question.Options {
		fmt.Fprintf(&sb, "  %s) %s\n", quiz.IndexToLetter(i), option)
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func renderTimer(snap quiz.Snapshot) string {
	timer := fmt.Sprintf("⏱ %ds", snap.TimeRemaining)
	if snap.LowTime() {
		return colorLowTime.Sprint(timer)
	}

	return colorTimer.Sprint(timer)
}

// shouldRenderTick — печатать таймер каждые 5 секунд, а при нехватке времени каждую секунду.
func shouldRenderTick(snap quiz.Snapshot) bool {
	return snap.LowTime() || snap.TimeRemaining%5 == 0
}

func renderReveal(snap quiz.Snapshot) string {
	answer := snap.LastAnswer
	if answer == nil {
		return ""
	}

	correct := fmt.Sprintf("%s) %s", quiz.IndexToLetter(answer.Correct), snap.Question.Options[answer.Correct])

	var sb strings.Builder

	switch {
	case answer.IsCorrect:
		sb.WriteString(colorCorrect.Sprintf("✓ Correct! +%d points", answer.Points))
		if snap.Streak > 1 {
			fmt.Fprintf(&sb, "  🔥 %d in a row", snap.Streak)
		}
	case answer.Selected == models.NoSelection:
		sb.WriteString(colorWrong.Sprint("⏰ Time's up!"))
		fmt.Fprintf(&sb, " Correct answer: %s", correct)
	default:
		sb.WriteString(colorWrong.Sprint("✗ Incorrect."))
		fmt.Fprintf(&sb, " Correct answer: %s", correct)
	}

	if snap.Question.Explanation != "" {
		fmt.Fprintf(&sb, "\n%s", colorMuted.Sprint(snap.Question.Explanation))
	}

	return sb.String()
}

func renderResults(
	results *quiz.Results,
	rank int64,
	top []leaderboard.Entry,
	player string,
	shareText string,
) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n", colorTitle.Sprint("Quiz Complete!"))
	fmt.Fprintf(&sb, "Grade: %s  Accuracy: %d%% (%d/%d)\n",
		renderGrade(results.Grade), results.RoundedPercentage(), results.Correct, results.Total)
	fmt.Fprintf(&sb, "Total Points: %d  Max Streak: %d", results.Score, results.MaxStreak)
	if rank > 0 {
		fmt.Fprintf(&sb, "  Your Rank: #%d", rank)
	}
	sb.WriteString("\n")

	if len(top) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", colorTitle.Sprint("Global Leaderboard"))
		for _, e := range top {
			line := fmt.Sprintf("%3d. %-20s %8d points  streak %d", e.Rank, e.Player, e.Score, e.Streak)
			if e.Player == player {
				line = colorCorrect.Sprint(line + "  ← you")
			}
			sb.WriteString(line + "\n")
		}
	}

	fmt.Fprintf(&sb, "\n%s\n%s", shareText, colorMuted.Sprint(`Type "r" to try again or "q" to quit.`))

	return sb.String()
}

func renderGrade(grade string) string {
	switch grade {
	case "A+", "A":
		return colorCorrect.Sprint(grade)
	case "B":
		return colorTimer.Sprint(grade)
	case "C":
		return color.YellowString(grade)
	default:
		return colorWrong.Sprint(grade)
	}
}
