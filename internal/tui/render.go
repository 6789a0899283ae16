package tui

import (
	"fmt"
	"strings"

	"practice-quiz-service/internal/app"
	"practice-quiz-service/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorTitle     = lipgloss.Color("33")
	colorMuted     = lipgloss.Color("242")
	colorCorrect   = lipgloss.Color("42")
	colorIncorrect = lipgloss.Color("196")
	colorMissed    = lipgloss.Color("214")
	colorNotice    = lipgloss.Color("220")
)

// View renders the current question, or the result and review once the
// session is complete.
func (m Model) View() string {
	if m.session.State() == app.StateActive {
		return m.questionView()
	}
	return m.resultView()
}

func (m Model) questionView() string {
	q, _ := m.session.CurrentQuestion()
	progress := m.session.Progress()

	header := fmt.Sprintf("Question %d of %d", progress.Index+1, progress.Total)
	if m.title != "" {
		header = m.title + " | " + header
	}
	clock := m.session.TimeDisplay()
	if m.session.Paused() {
		clock += " (paused)"
	}

	lines := []string{
		stylize(header, m.noColor, colorTitle, true),
		stylize(clock, m.noColor, colorMuted, false),
		"",
		q.Text,
	}
	if q.Multiple {
		lines = append(lines, stylize(fmt.Sprintf("Select %d answers.", len(q.CorrectAnswers)), m.noColor, colorMuted, false))
	}
	lines = append(lines, "")
	for i, option := range q.Options {
		box := "( )"
		if q.Multiple {
			box = "[ ]"
		}
		if m.selected[i] {
			box = strings.Replace(box, " ", "x", 1)
		}
		lines = append(lines, fmt.Sprintf("%s %s. %s", box, domain.OptionLetter(i), option))
	}
	if m.message != "" {
		lines = append(lines, "", stylize(m.message, m.noColor, colorNotice, false))
	}
	lines = append(lines, "", m.help.ShortHelpView(m.keys.ShortHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) resultView() string {
	result, err := m.session.Result()
	if err != nil {
		return err.Error()
	}

	verdict, color := "FAILED", colorIncorrect
	if result.Passed {
		verdict, color = "PASSED", colorCorrect
	}
	lines := []string{
		stylize("Quiz complete", m.noColor, colorTitle, true),
	}
	if m.session.TimedOut() {
		lines = append(lines, stylize("Time is up.", m.noColor, colorNotice, false))
	}
	lines = append(lines,
		fmt.Sprintf("Score: %d / %d (%d%%) %s", result.Score, result.MaxScore, result.Percentage, stylize(verdict, m.noColor, color, true)),
		fmt.Sprintf("Correct: %d  Attempted: %d  Skipped: %d  Total: %d", result.CorrectCount, result.AttemptedCount, result.SkippedCount, result.Total),
	)
	switch {
	case m.finishErr != nil:
		lines = append(lines, stylize("Could not record attempt: "+m.finishErr.Error(), m.noColor, colorIncorrect, false))
	case m.record != nil:
		lines = append(lines, stylize("Attempt "+m.record.ID, m.noColor, colorMuted, false))
	}

	if len(m.review) > 0 {
		lines = append(lines, "", renderReviewEntry(m.review[m.reviewIndex], len(m.review), m.noColor))
	}
	lines = append(lines, "", m.help.ShortHelpView(m.keys.reviewHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderReviewEntry(entry domain.ReviewEntry, total int, noColor bool) string {
	status := stylize("Correct", noColor, colorCorrect, true)
	switch {
	case entry.Skipped:
		status = stylize("Skipped", noColor, colorMissed, true)
	case entry.Verdict == domain.VerdictIncorrect:
		status = stylize("Incorrect", noColor, colorIncorrect, true)
	}

	lines := []string{
		fmt.Sprintf("Review %d of %d: %s", entry.Index+1, total, status),
		entry.Question,
	}
	for _, option := range entry.Options {
		lines = append(lines, renderReviewOption(option, noColor))
	}
	answer := "none"
	if len(entry.UserLetters) > 0 {
		answer = strings.Join(entry.UserLetters, ", ")
	}
	lines = append(lines,
		fmt.Sprintf("Your answer: %s  Correct: %s", answer, strings.Join(entry.CorrectLetters, ", ")),
	)
	if entry.Explanation != "" {
		lines = append(lines, stylize(entry.Explanation, noColor, colorMuted, false))
	}
	return strings.Join(lines, "\n")
}

func renderReviewOption(option domain.ReviewOption, noColor bool) string {
	line := option.Letter + ". " + option.Text
	switch option.Mark {
	case domain.MarkUserCorrect:
		return stylize("✓ "+line, noColor, colorCorrect, false)
	case domain.MarkUserIncorrect:
		return stylize("✗ "+line, noColor, colorIncorrect, false)
	case domain.MarkMissedCorrect:
		return stylize("! "+line, noColor, colorMissed, false)
	default:
		return "  " + line
	}
}

func stylize(text string, noColor bool, color lipgloss.Color, bold bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Bold(bold).Render(text)
}
